package images

import (
	"context"
	"log/slog"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"cr4te/internal/logging"
)

// Selector picks a single image out of a candidate list. Candidate paths are
// slash-separated and relative to Root.
type Selector struct {
	Root   string
	Probe  ProbeFunc
	Logger *slog.Logger
}

// NewSelector returns a Selector probing files under root.
func NewSelector(root string, logger *slog.Logger) *Selector {
	return &Selector{
		Root:   root,
		Probe:  Probe,
		Logger: logging.NewComponentLogger(logger, "images"),
	}
}

// Select returns the best image for basename, or "" when candidates is empty
// or nothing qualifies.
//
// An image whose stem equals basename (case-insensitive) always wins. With
// allowFallback, the first image in base-name order with the fallback
// orientation is chosen next, and finally the first candidate. Images that
// cannot be probed are skipped with a warning.
func (s *Selector) Select(ctx context.Context, candidates []string, basename string, fallback Orientation, allowFallback bool) string {
	if len(candidates) == 0 {
		return ""
	}
	if match, ok := matchBasename(candidates, basename); ok {
		return match
	}
	if !allowFallback {
		return ""
	}

	ordered := slices.Clone(candidates)
	slices.SortStableFunc(ordered, func(a, b string) int {
		if c := strings.Compare(path.Base(a), path.Base(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	probe := s.Probe
	if probe == nil {
		probe = Probe
	}
	logger := s.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	for _, candidate := range ordered {
		dims, err := probe(filepath.Join(s.Root, filepath.FromSlash(candidate)))
		if err != nil {
			logging.WarnWithContext(ctx, logger, "image could not be opened", "image_probe_failed",
				logging.String(logging.FieldPath, candidate),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check that the file is a readable JPEG or PNG"),
				logging.String(logging.FieldImpact, "image skipped for "+string(fallback)+" selection"),
			)
			continue
		}
		if fallback.Matches(dims) {
			logger.Debug("image selected by orientation", logging.Args(append(
				logging.DecisionAttrs(basename, candidate, string(fallback)+" orientation"),
				logging.Int("width", dims.Width),
				logging.Int("height", dims.Height),
			)...)...)
			return candidate
		}
	}
	return candidates[0]
}

func matchBasename(candidates []string, basename string) (string, bool) {
	want := strings.ToLower(strings.TrimSpace(basename))
	if want == "" {
		return "", false
	}
	for _, candidate := range candidates {
		name := path.Base(candidate)
		stem := strings.TrimSuffix(name, path.Ext(name))
		if strings.ToLower(stem) == want {
			return candidate, true
		}
	}
	return "", false
}
