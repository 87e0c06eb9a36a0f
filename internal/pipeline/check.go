package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cr4te/internal/record"
	"cr4te/internal/schema"
)

// Check statuses.
const (
	CheckValid   = "valid"
	CheckInvalid = "invalid"
	CheckMissing = "missing"
)

// CheckResult reports the state of one creator's record file.
type CheckResult struct {
	Creator string `json:"creator"`
	Path    string `json:"path"`
	Status  string `json:"status"`
	Field   string `json:"field,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Check validates the existing record of every creator folder without
// rebuilding anything. excludePrefix hides folders the way a build does.
func Check(ctx context.Context, input, excludePrefix string) ([]CheckResult, error) {
	entries, err := os.ReadDir(input)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}
	validator := schema.New()
	results := []CheckResult{}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return results, fmt.Errorf("check interrupted: %w", err)
		}
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if excludePrefix != "" && strings.HasPrefix(name, excludePrefix) {
			continue
		}
		path := filepath.Join(input, name, record.Filename)
		result := CheckResult{Creator: name, Path: path}

		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			result.Status = CheckMissing
		case err != nil:
			result.Status = CheckInvalid
			result.Error = err.Error()
		default:
			if _, err := validator.ValidateJSON(data); err != nil {
				result.Status = CheckInvalid
				result.Error = err.Error()
				var schemaErr *schema.Error
				if errors.As(err, &schemaErr) {
					result.Field = schemaErr.Field()
				}
			} else {
				result.Status = CheckValid
			}
		}
		results = append(results, result)
	}
	return results, nil
}

// CountStatus returns how many results have status.
func CountStatus(results []CheckResult, status string) int {
	n := 0
	for _, r := range results {
		if r.Status == status {
			n++
		}
	}
	return n
}
