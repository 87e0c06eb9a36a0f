package preflight

import (
	"path/filepath"
	"strings"

	"cr4te/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the path checks that apply to cfg. Extra output files
// (for example a metrics textfile) have their parent directory checked.
func RunAll(cfg *config.Config, outputs ...string) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckDirectoryAccess("Input directory", cfg.Paths.InputDir)}

	if file := strings.TrimSpace(cfg.Logging.File); file != "" {
		results = append(results, CheckDirectoryAccess("Log directory", filepath.Dir(file)))
	}
	for _, out := range outputs {
		if strings.TrimSpace(out) == "" {
			continue
		}
		results = append(results, CheckDirectoryAccess("Output directory", filepath.Dir(out)))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
