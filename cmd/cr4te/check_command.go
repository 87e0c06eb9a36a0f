package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cr4te/internal/pipeline"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate existing cr4te.json files without rebuilding",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			run := *cfg
			if err := applyInputOverride(&run, input); err != nil {
				return err
			}

			results, err := pipeline.Check(cmd.Context(), run.Paths.InputDir, run.MediaRules.GlobalExcludePrefix)
			if err != nil {
				return err
			}
			invalid := pipeline.CountStatus(results, pipeline.CheckInvalid)

			if ctx.jsonOutput() {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				for _, r := range results {
					fmt.Fprintln(out, renderStatusLine(r.Creator, checkStatusKind(r.Status), checkMessage(r), colorize))
				}
				fmt.Fprintf(out, "\n%d valid, %d invalid, %d missing\n",
					pipeline.CountStatus(results, pipeline.CheckValid),
					invalid,
					pipeline.CountStatus(results, pipeline.CheckMissing),
				)
			}
			if invalid > 0 {
				return fmt.Errorf("%d invalid record(s)", invalid)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Input directory containing creator folders")
	return cmd
}

func checkStatusKind(status string) statusKind {
	switch status {
	case pipeline.CheckValid:
		return statusOK
	case pipeline.CheckMissing:
		return statusWarn
	case pipeline.CheckInvalid:
		return statusError
	default:
		return statusInfo
	}
}

func checkMessage(r pipeline.CheckResult) string {
	switch r.Status {
	case pipeline.CheckValid:
		return "valid"
	case pipeline.CheckMissing:
		return "no record; run build-json"
	default:
		return r.Error
	}
}
