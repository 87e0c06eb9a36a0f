package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cr4te/internal/pipeline"
	"cr4te/internal/preflight"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var input string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "clean-json",
		Short: "Delete every creator's cr4te.json",
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
			if err := writePreflight(cmd.ErrOrStderr(), preflight.RunAll(&run)); err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			summary, err := pipeline.Clean(cmd.Context(), run.Paths.InputDir, dryRun, logger)
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, summary)
			}

			out := cmd.OutOrStdout()
			prefix := ""
			if dryRun {
				prefix = "[DRY-RUN] "
			}
			for _, entry := range summary.Entries {
				switch entry.Status {
				case pipeline.CleanFailed:
					fmt.Fprintf(out, "%sFailed: %s (%s)\n", prefix, entry.Path, entry.Error)
				default:
					fmt.Fprintf(out, "%sDeleting: %s\n", prefix, entry.Path)
				}
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Summary:")
			fmt.Fprintf(out, "  Total cr4te.json files found: %d\n", summary.Total)
			fmt.Fprintf(out, "  Deleted: %d\n", summary.Deleted)
			fmt.Fprintf(out, "  Skipped/errors: %d\n", summary.Skipped)
			if dryRun {
				fmt.Fprintln(out, "  (Dry-run mode: no files were deleted)")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Input directory containing creator folders")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List the files that would be deleted without deleting them")
	return cmd
}
