package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"cr4te/internal/logging"
	"cr4te/internal/record"
)

// Clean outcome statuses.
const (
	CleanDeleted     = "deleted"
	CleanWouldDelete = "would_delete"
	CleanFailed      = "failed"
)

// CleanEntry reports what happened to one record file.
type CleanEntry struct {
	Creator string `json:"creator"`
	Path    string `json:"path"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

// CleanSummary totals a clean run.
type CleanSummary struct {
	Total   int          `json:"total"`
	Deleted int          `json:"deleted"`
	Skipped int          `json:"skipped"`
	DryRun  bool         `json:"dry_run"`
	Entries []CleanEntry `json:"entries"`
}

// Clean removes the cr4te.json of every creator folder under input. With
// dryRun nothing is deleted but every file that would be is reported.
// Failures to delete are counted as skipped and do not stop the run.
func Clean(ctx context.Context, input string, dryRun bool, logger *slog.Logger) (CleanSummary, error) {
	summary := CleanSummary{DryRun: dryRun, Entries: []CleanEntry{}}
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "clean")

	if !dryRun {
		unlock, err := acquireLock(input)
		if err != nil {
			return summary, err
		}
		defer func() {
			if err := unlock(); err != nil {
				logger.Warn("failed to release build lock", logging.Error(err))
			}
		}()
	}

	entries, err := os.ReadDir(input)
	if err != nil {
		return summary, fmt.Errorf("read input directory: %w", err)
	}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("clean interrupted: %w", err)
		}
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(input, entry.Name(), record.Filename)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		summary.Total++
		item := CleanEntry{Creator: entry.Name(), Path: path}

		if dryRun {
			item.Status = CleanWouldDelete
			logger.Info("would delete record", logging.String(logging.FieldCreator, entry.Name()))
			summary.Entries = append(summary.Entries, item)
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			item.Status = CleanFailed
			item.Error = err.Error()
			summary.Skipped++
			logging.WarnWithContext(ctx, logger, "could not delete record", "record_delete_failed",
				logging.String(logging.FieldCreator, entry.Name()),
				logging.String(logging.FieldPath, path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check file permissions"),
				logging.String(logging.FieldImpact, "record left in place"),
			)
		} else {
			item.Status = CleanDeleted
			summary.Deleted++
			logger.Info("deleted record", logging.String(logging.FieldCreator, entry.Name()))
		}
		summary.Entries = append(summary.Entries, item)
	}
	return summary, nil
}
