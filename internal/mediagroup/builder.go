// Package mediagroup walks a folder tree and groups classified media files by
// the folder that contains them.
package mediagroup

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"cr4te/internal/images"
	"cr4te/internal/logging"
	"cr4te/internal/mediatype"
	"cr4te/internal/record"
)

// Rules control which files a walk visits and how galleries are capped.
type Rules struct {
	// MaxDepth limits the number of path components below the walk root.
	// Zero means unlimited.
	MaxDepth      int
	ExcludePrefix string
	Classifier    mediatype.Classifier
	GalleryMax    int
	Strategy      images.SampleStrategy
}

// Builder produces media groups with paths relative to InputRoot.
type Builder struct {
	InputRoot string
	Logger    *slog.Logger
	// OnClassified, when set, is called once per file that lands in a group.
	OnClassified func(mediatype.MediaType)
}

// NewBuilder returns a Builder for the given input root.
func NewBuilder(inputRoot string, logger *slog.Logger) *Builder {
	return &Builder{
		InputRoot: filepath.Clean(inputRoot),
		Logger:    logging.NewComponentLogger(logger, "mediagroup"),
	}
}

type groupMap struct {
	order  []string
	groups map[string]*record.MediaGroup
}

func (m *groupMap) get(key string, isRoot bool) *record.MediaGroup {
	if g, ok := m.groups[key]; ok {
		return g
	}
	g, err := record.NewMediaGroup(key, isRoot)
	if err != nil {
		return nil
	}
	m.groups[key] = &g
	m.order = append(m.order, key)
	return &g
}

// Build walks root and returns one group per folder that holds at least one
// classified file, in order of first encounter. A missing root yields no
// groups. A canceled ctx returns its error and no groups.
func (b *Builder) Build(ctx context.Context, root string, rules Rules) ([]record.MediaGroup, error) {
	root = filepath.Clean(root)
	logger := b.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		logger.Debug("media root not found", logging.String(logging.FieldPath, root))
		return []record.MediaGroup{}, nil
	}

	grouped := groupMap{groups: make(map[string]*record.MediaGroup)}
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logging.WarnWithContext(ctx, logger, "could not read media path", "media_walk_failed",
				logging.String(logging.FieldPath, b.relative(path)),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check folder permissions"),
				logging.String(logging.FieldImpact, "entry skipped"),
			)
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		name := d.Name()
		if rules.ExcludePrefix != "" && strings.HasPrefix(name, rules.ExcludePrefix) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		depth := depthBelow(root, path)
		if d.IsDir() {
			if rules.MaxDepth > 0 && depth >= rules.MaxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if rules.MaxDepth > 0 && depth > rules.MaxDepth {
			return nil
		}

		kind := rules.Classifier.Classify(name)
		if kind == mediatype.None {
			return nil
		}

		parent := filepath.Dir(path)
		key := b.relative(parent)
		if key == "" {
			key = filepath.Base(root)
		}
		group := grouped.get(key, parent == root)
		if group == nil {
			return nil
		}
		group.Add(kind, b.relative(path))
		if b.OnClassified != nil {
			b.OnClassified(kind)
		}
		return nil
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if walkErr != nil {
		logging.WarnWithContext(ctx, logger, "media walk stopped early", "media_walk_failed",
			logging.String(logging.FieldPath, b.relative(root)),
			logging.Error(walkErr),
		)
	}

	out := make([]record.MediaGroup, 0, len(grouped.order))
	for _, key := range grouped.order {
		g := grouped.groups[key]
		slices.Sort(g.Videos)
		slices.Sort(g.Tracks)
		slices.Sort(g.Documents)
		slices.Sort(g.Texts)
		g.Images = images.Sample(g.Images, rules.GalleryMax, rules.Strategy)
		out = append(out, *g)
	}
	return out, nil
}

// relative returns path relative to the input root with forward slashes, or
// "" for the input root itself.
func (b *Builder) relative(path string) string {
	rel, err := filepath.Rel(b.InputRoot, path)
	if err != nil || rel == "." {
		return ""
	}
	return filepath.ToSlash(rel)
}

// depthBelow counts the path components of path below root.
func depthBelow(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(filepath.ToSlash(rel), "/") + 1
}
