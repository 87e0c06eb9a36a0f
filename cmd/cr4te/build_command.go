package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cr4te/internal/config"
	"cr4te/internal/metrics"
	"cr4te/internal/pipeline"
	"cr4te/internal/preflight"
)

type buildOptions struct {
	input             string
	maxImages         int
	sampleStrategy    string
	autoFindPortraits bool
	metricsFile       string
}

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var opts buildOptions

	cmd := &cobra.Command{
		Use:   "build-json",
		Short: "Scan the input tree and write one cr4te.json per creator",
		Long: `Scan every creator folder under the input directory, merge curated fields
from existing cr4te.json files, resolve collaboration links, validate every
record, and write them. Nothing is written if any record fails validation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			run := *cfg
			if err := applyBuildOverrides(cmd, &run, opts); err != nil {
				return err
			}
			metricsFile := strings.TrimSpace(opts.metricsFile)
			if metricsFile != "" {
				if metricsFile, err = config.ExpandPath(metricsFile); err != nil {
					return fmt.Errorf("resolve metrics file: %w", err)
				}
			}
			if err := writePreflight(cmd.ErrOrStderr(), preflight.RunAll(&run, metricsFile)); err != nil {
				return err
			}

			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			var recorder *metrics.Run
			if metricsFile != "" {
				recorder = metrics.NewRun()
			}
			p, err := pipeline.New(run.Paths.InputDir, run.MediaRules, logger, recorder)
			if err != nil {
				return err
			}
			summary, err := p.Build(cmd.Context())
			if err != nil {
				return err
			}
			if err := recorder.WriteTextfile(metricsFile); err != nil {
				return err
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, summary)
			}
			out := cmd.OutOrStdout()
			if len(summary.Creators) == 0 {
				fmt.Fprintf(out, "No creator folders found in %s\n", summary.Input)
				return nil
			}
			fmt.Fprintln(out, renderBuildSummary(summary))
			fmt.Fprintf(out, "Wrote %d records in %s (%d warnings)\n",
				len(summary.Creators), summary.Duration.Round(time.Millisecond), summary.Warnings)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Input directory containing creator folders")
	cmd.Flags().IntVar(&opts.maxImages, "max-images", 0, "Override media_rules.image_gallery_max")
	cmd.Flags().StringVar(&opts.sampleStrategy, "image-sample-strategy", "", "Override media_rules.image_gallery_sample_strategy (all, head, spread)")
	cmd.Flags().BoolVar(&opts.autoFindPortraits, "auto-find-portraits", false, "Override media_rules.auto_find_portraits")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus textfile metrics to this path")
	return cmd
}

// applyBuildOverrides copies explicitly set flags onto cfg and revalidates it.
func applyBuildOverrides(cmd *cobra.Command, cfg *config.Config, opts buildOptions) error {
	flags := cmd.Flags()
	if err := applyInputOverride(cfg, opts.input); err != nil {
		return err
	}
	if flags.Changed("max-images") {
		cfg.MediaRules.ImageGalleryMax = opts.maxImages
	}
	if flags.Changed("image-sample-strategy") {
		cfg.MediaRules.ImageGallerySampleStrategy = strings.ToLower(strings.TrimSpace(opts.sampleStrategy))
	}
	if flags.Changed("auto-find-portraits") {
		cfg.MediaRules.AutoFindPortraits = opts.autoFindPortraits
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Paths.InputDir) == "" {
		return errors.New("input directory is required (use --input or set paths.input_dir)")
	}
	return nil
}

func applyInputOverride(cfg *config.Config, input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}
	expanded, err := config.ExpandPath(input)
	if err != nil {
		return fmt.Errorf("resolve input directory: %w", err)
	}
	cfg.Paths.InputDir = expanded
	return nil
}

func renderBuildSummary(summary pipeline.Summary) string {
	rows := make([][]string, 0, len(summary.Creators))
	projects := 0
	for _, c := range summary.Creators {
		projects += c.Projects
		rows = append(rows, []string{
			c.Name,
			yesNo(c.IsCollaboration),
			strconv.Itoa(c.Projects),
			strconv.Itoa(c.MediaGroups),
			strconv.Itoa(c.Collaborations),
			portraitLabel(c.Portrait),
		})
	}
	return renderTable(tableSpec{
		Headers: []string{"Creator", "Collab", "Projects", "Groups", "Links", "Portrait"},
		Rows:    rows,
		Footer:  []string{fmt.Sprintf("%d creators", len(summary.Creators)), "", strconv.Itoa(projects)},
		Aligns:  []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
	})
}

func portraitLabel(path string) string {
	if path == "" {
		return "-"
	}
	return path
}
