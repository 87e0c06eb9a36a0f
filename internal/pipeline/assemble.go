package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"cr4te/internal/collab"
	"cr4te/internal/fileutil"
	"cr4te/internal/images"
	"cr4te/internal/logging"
	"cr4te/internal/mediagroup"
	"cr4te/internal/mediatype"
	"cr4te/internal/merge"
	"cr4te/internal/record"
)

// assembleCreator builds the fresh record for one creator folder and merges
// the curation of its previous cr4te.json into it.
func (p *Pipeline) assembleCreator(ctx context.Context, logger *slog.Logger, name string) (record.Creator, error) {
	dir := filepath.Join(p.input, name)
	logger = logger.With(logging.String(logging.FieldCreator, name))
	logger.Info("processing creator")

	creator, err := record.NewCreator(name)
	if err != nil {
		return record.Creator{}, err
	}
	prior := merge.LoadPrior(ctx, p.recordPath(name), logger)

	creator.IsCollaboration = collab.IsCollaboration(name, p.rules.CollaborationSeparators)
	creator.Portrait = p.selector.Select(ctx, p.imagesUnder(ctx, logger, dir),
		p.rules.PortraitBasename, images.Portrait, p.rules.AutoFindPortraits)
	creator.Info = p.readme(ctx, logger, dir)

	if p.rules.MetadataFolderName != "" {
		meta := filepath.Join(dir, p.rules.MetadataFolderName)
		groups, err := p.groups.Build(ctx, meta, p.mediaRules(p.rules.MaxSearchDepth))
		if err != nil {
			return record.Creator{}, fmt.Errorf("scan %s: %w", name, err)
		}
		creator.MediaGroups = append(creator.MediaGroups, groups...)
	}
	rootGroups, err := p.groups.Build(ctx, dir, p.mediaRules(1))
	if err != nil {
		return record.Creator{}, fmt.Errorf("scan %s: %w", name, err)
	}
	creator.MediaGroups = append(creator.MediaGroups, rootGroups...)

	projects, err := p.projectDirs(dir)
	if err != nil {
		logging.WarnWithContext(ctx, logger, "could not list projects", "project_list_failed",
			logging.String(logging.FieldPath, name),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check folder permissions"),
			logging.String(logging.FieldImpact, "creator written without projects"),
		)
	}
	for _, title := range projects {
		project, err := p.assembleProject(ctx, logger, dir, title)
		if err != nil {
			return record.Creator{}, err
		}
		creator.Projects = append(creator.Projects, project)
	}

	if err := ctx.Err(); err != nil {
		return record.Creator{}, err
	}

	p.merger.Creator(ctx, &creator, prior)
	logger.Debug("creator assembled",
		logging.Int("projects", len(creator.Projects)),
		logging.Int("media_groups", len(creator.MediaGroups)),
		logging.Int("media_files", countMediaFiles(creator)),
		logging.String("portrait", creator.Portrait),
	)
	return creator, nil
}

func (p *Pipeline) assembleProject(ctx context.Context, logger *slog.Logger, creatorDir, title string) (record.Project, error) {
	dir := filepath.Join(creatorDir, title)
	project, err := record.NewProject(strings.TrimSpace(title))
	if err != nil {
		return record.Project{}, err
	}
	plog := logger.With(logging.String(logging.FieldProject, project.Title))

	project.Cover = p.selector.Select(ctx, p.imagesUnder(ctx, plog, dir),
		p.rules.CoverBasename, images.Landscape, true)
	project.Info = p.readme(ctx, plog, dir)
	groups, err := p.groups.Build(ctx, dir, p.mediaRules(p.rules.MaxSearchDepth))
	if err != nil {
		return record.Project{}, fmt.Errorf("scan %s: %w", project.Title, err)
	}
	project.MediaGroups = groups
	return project, nil
}

// countMediaFiles totals the files across the creator's own and its projects'
// media groups.
func countMediaFiles(c record.Creator) int {
	total := 0
	for _, g := range c.MediaGroups {
		total += g.Len()
	}
	for _, project := range c.Projects {
		for _, g := range project.MediaGroups {
			total += g.Len()
		}
	}
	return total
}

// projectDirs lists the project folders of a creator in lexical order.
// Excluded names and the metadata folder are skipped.
func (p *Pipeline) projectDirs(creatorDir string) ([]string, error) {
	entries, err := os.ReadDir(creatorDir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || p.excluded(name) {
			continue
		}
		if meta := p.rules.MetadataFolderName; meta != "" && strings.HasPrefix(name, meta) {
			continue
		}
		if strings.TrimSpace(name) == "" {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

func (p *Pipeline) mediaRules(maxDepth int) mediagroup.Rules {
	return mediagroup.Rules{
		MaxDepth:      maxDepth,
		ExcludePrefix: p.rules.GlobalExcludePrefix,
		Classifier:    p.classifier,
		GalleryMax:    p.rules.ImageGalleryMax,
		Strategy:      p.strategy,
	}
}

// imagesUnder returns every image below root as slash-separated paths
// relative to the input root, sorted. Excluded names prune their subtree.
func (p *Pipeline) imagesUnder(ctx context.Context, logger *slog.Logger, root string) []string {
	prefix := p.rules.GlobalExcludePrefix
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			if d != nil && d.IsDir() {
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
		if prefix != "" && strings.HasPrefix(d.Name(), prefix) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if !mediatype.IsImageExtension(strings.ToLower(filepath.Ext(d.Name()))) {
			return nil
		}
		rel, err := filepath.Rel(p.input, path)
		if err != nil {
			return nil
		}
		found = append(found, filepath.ToSlash(rel))
		return nil
	})
	if err != nil && ctx.Err() == nil {
		logging.WarnWithContext(ctx, logger, "could not scan for images", "image_scan_failed",
			logging.String(logging.FieldPath, root),
			logging.Error(err),
			logging.String(logging.FieldImpact, "no portrait or cover selected"),
		)
	}
	slices.Sort(found)
	return found
}

// readme returns the trimmed README text of dir, or "" when there is none.
func (p *Pipeline) readme(ctx context.Context, logger *slog.Logger, dir string) string {
	path, ok := fileutil.FindFold(dir, p.classifier.ReadmeFilename())
	if !ok {
		return ""
	}
	text, err := fileutil.ReadText(path)
	if err != nil {
		logging.WarnWithContext(ctx, logger, "README unreadable", "readme_unreadable",
			logging.String(logging.FieldPath, path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check file permissions and encoding"),
			logging.String(logging.FieldImpact, "info taken from the previous record"),
		)
		return ""
	}
	return text
}
