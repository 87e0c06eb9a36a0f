package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cr4te/internal/hashpath"
)

type hashPathResult struct {
	Source string `json:"source"`
	Path   string `json:"path"`
	ToRoot string `json:"to_root"`
}

func newHashPathCommand(ctx *commandContext) *cobra.Command {
	var depth int
	var tag string

	cmd := &cobra.Command{
		Use:         "hash-path <relative-path>...",
		Short:       "Print the content-addressed output path for media paths",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			toRoot, err := hashpath.PathToRoot(depth)
			if err != nil {
				return err
			}
			results := make([]hashPathResult, 0, len(args))
			for _, arg := range args {
				built, err := hashpath.Build(arg, depth)
				if err != nil {
					return err
				}
				if t := strings.TrimSpace(tag); t != "" {
					built = hashpath.Tagged(built, t)
				}
				results = append(results, hashPathResult{Source: arg, Path: built, ToRoot: toRoot})
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, results)
			}
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{r.Source, r.Path, r.ToRoot})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(tableSpec{
				Headers: []string{"Source", "Output", "To root"},
				Rows:    rows,
			}))
			return nil
		},
	}

	cmd.Flags().IntVar(&depth, "depth", hashpath.DefaultDepth, "Number of hash directory levels (1-20)")
	cmd.Flags().StringVar(&tag, "tag", "", "Append _<tag> to the file name, e.g. thumb")
	return cmd
}
