package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"cr4te/internal/collab"
	"cr4te/internal/config"
	"cr4te/internal/fileutil"
	"cr4te/internal/images"
	"cr4te/internal/logging"
	"cr4te/internal/mediagroup"
	"cr4te/internal/mediatype"
	"cr4te/internal/merge"
	"cr4te/internal/metrics"
	"cr4te/internal/record"
	"cr4te/internal/schema"
)

// Pipeline builds creator records for one input root.
type Pipeline struct {
	input      string
	rules      config.MediaRules
	classifier mediatype.Classifier
	strategy   images.SampleStrategy

	logger    *slog.Logger
	metrics   *metrics.Run
	validator *schema.Validator
	groups    *mediagroup.Builder
	selector  *images.Selector
	merger    *merge.Merger
}

// CreatorSummary describes one record produced by a build.
type CreatorSummary struct {
	Name            string `json:"name"`
	Path            string `json:"path"`
	IsCollaboration bool   `json:"is_collaboration"`
	Projects        int    `json:"projects"`
	MediaGroups     int    `json:"media_groups"`
	Collaborations  int    `json:"collaborations"`
	Portrait        string `json:"portrait"`
}

// Summary reports the outcome of a build.
type Summary struct {
	RunID    string           `json:"run_id"`
	Input    string           `json:"input"`
	Creators []CreatorSummary `json:"creators"`
	Warnings int              `json:"warnings"`
	Duration time.Duration    `json:"duration"`
}

// New validates rules and returns a Pipeline rooted at input. A nil run
// disables metrics.
func New(input string, rules config.MediaRules, logger *slog.Logger, run *metrics.Run) (*Pipeline, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, errors.New("input directory is required")
	}
	abs, err := filepath.Abs(input)
	if err != nil {
		return nil, fmt.Errorf("resolve input directory: %w", err)
	}
	strategy, err := images.ParseSampleStrategy(rules.ImageGallerySampleStrategy)
	if err != nil {
		return nil, fmt.Errorf("media_rules.image_gallery_sample_strategy: %w", err)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "pipeline")

	p := &Pipeline{
		input:      abs,
		rules:      rules,
		classifier: mediatype.NewClassifier(rules.CoverBasename, rules.PortraitBasename, rules.ReadmeFilename),
		strategy:   strategy,
		logger:     logger,
		metrics:    run,
		validator:  schema.New(),
		groups:     mediagroup.NewBuilder(abs, logger),
		selector:   images.NewSelector(abs, logger),
		merger:     merge.NewMerger(rules.CollaborationSeparators, logger),
	}
	p.groups.OnClassified = run.ObserveFile
	return p, nil
}

// Input returns the absolute input root.
func (p *Pipeline) Input() string {
	return p.input
}

// Build scans every creator, merges prior curation, resolves collaborations,
// validates every record, and only then writes cr4te.json files. Any
// validation failure returns a *schema.Error and nothing is written.
func (p *Pipeline) Build(ctx context.Context) (Summary, error) {
	start := time.Now()
	runID := uuid.NewString()
	summary := Summary{RunID: runID, Input: p.input, Creators: []CreatorSummary{}}

	unlock, err := acquireLock(p.input)
	if err != nil {
		return summary, err
	}
	defer func() {
		if err := unlock(); err != nil {
			p.logger.Warn("failed to release build lock", logging.Error(err))
		}
	}()

	ctx = logging.WithWarnObserver(ctx, func(eventType string) {
		summary.Warnings++
		p.metrics.ObserveWarning(eventType)
	})
	logger := p.logger.With(logging.String(logging.FieldRunID, runID))
	logger.Info("build started",
		logging.String(logging.FieldPath, p.input),
		logging.Int("max_search_depth", p.rules.MaxSearchDepth),
		logging.String("sample_strategy", string(p.strategy)),
	)

	dirs, err := p.creatorDirs()
	if err != nil {
		return summary, err
	}

	creators := make([]record.Creator, 0, len(dirs))
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("build interrupted: %w", err)
		}
		creator, err := p.assembleCreator(ctx, logger, dir)
		if err != nil {
			return summary, err
		}
		creators = append(creators, creator)
		p.metrics.ObserveCreator(len(creator.Projects))
	}
	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("build interrupted: %w", err)
	}

	collab.Resolve(creators)

	encoded := make([][]byte, len(creators))
	for i, c := range creators {
		if err := p.validator.Validate(c); err != nil {
			logging.ErrorWithContext(ctx, logger, "creator record failed validation", "schema_invalid",
				logging.String(logging.FieldCreator, c.Name),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "fix the curated field named in the error, then rebuild"),
			)
			return summary, fmt.Errorf("validate %s: %w", c.Name, err)
		}
		data, err := record.Marshal(c)
		if err != nil {
			return summary, fmt.Errorf("encode %s: %w", c.Name, err)
		}
		encoded[i] = data
	}

	for i, c := range creators {
		path := p.recordPath(c.Name)
		if err := fileutil.WriteFileAtomic(path, encoded[i], 0o644); err != nil {
			return summary, fmt.Errorf("write %s: %w", c.Name, err)
		}
		summary.Creators = append(summary.Creators, CreatorSummary{
			Name:            c.Name,
			Path:            path,
			IsCollaboration: c.IsCollaboration,
			Projects:        len(c.Projects),
			MediaGroups:     len(c.MediaGroups),
			Collaborations:  len(c.Collaborations),
			Portrait:        c.Portrait,
		})
	}

	p.metrics.Finish(start)
	summary.Duration = time.Since(start)
	logger.Info("build completed",
		logging.Int("creators", len(summary.Creators)),
		logging.Int("warnings", summary.Warnings),
		logging.Duration("duration", summary.Duration),
	)
	return summary, nil
}

// creatorDirs lists creator folder names in lexical order, skipping files and
// excluded names.
func (p *Pipeline) creatorDirs() ([]string, error) {
	entries, err := os.ReadDir(p.input)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() || p.excluded(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

func (p *Pipeline) excluded(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	prefix := p.rules.GlobalExcludePrefix
	return prefix != "" && strings.HasPrefix(name, prefix)
}

func (p *Pipeline) recordPath(creator string) string {
	return filepath.Join(p.input, creator, record.Filename)
}
