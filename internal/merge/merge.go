package merge

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"cr4te/internal/collab"
	"cr4te/internal/logging"
	"cr4te/internal/record"
)

const dateLayout = "2006-01-02"

// renameHintThreshold is the minimum similarity for a rename hint.
const renameHintThreshold = 0.5

// Merger applies prior curation to fresh records.
type Merger struct {
	Separators []string
	Logger     *slog.Logger
}

// NewMerger returns a Merger that derives collaboration members with separators.
func NewMerger(separators []string, logger *slog.Logger) *Merger {
	return &Merger{
		Separators: separators,
		Logger:     logging.NewComponentLogger(logger, "merge"),
	}
}

// NormalizeDate accepts yyyy-mm-dd (single-digit month and day allowed) and
// returns the zero-padded form. Empty input returns "" and no error.
func NormalizeDate(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	parsed, err := time.Parse("2006-1-2", trimmed)
	if err != nil {
		return "", err
	}
	return parsed.Format(dateLayout), nil
}

// Creator applies prior curation to fresh in place. Projects and media groups
// are merged as well; fresh.Collaborations is left for the resolver.
func (m *Merger) Creator(ctx context.Context, fresh *record.Creator, prior PriorCreator) {
	logger := m.Logger.With(logging.String(logging.FieldCreator, fresh.Name))

	fresh.IsEnabled = boolOr(prior.IsEnabled, true)
	if prior.IsCollaboration != nil {
		fresh.IsCollaboration = *prior.IsCollaboration
	}
	fresh.BornOrFounded = m.date(ctx, logger, "born_or_founded", prior.BornOrFounded)
	fresh.ActiveSince = m.date(ctx, logger, "active_since", prior.ActiveSince)
	fresh.Nationality = stringOr(prior.Nationality, "")
	fresh.Aliases = listOr(prior.Aliases)
	fresh.FeaturedPortrait = prior.FeaturedPortrait
	if fresh.Info == "" {
		fresh.Info = stringOr(prior.Info, "")
	}
	fresh.Tags = listOr(prior.Tags)
	fresh.ManualCollaborations = listOr(prior.ManualCollaborations)

	switch {
	case !fresh.IsCollaboration:
		fresh.Members = []string{}
	case prior.Members != nil && len(*prior.Members) > 0:
		fresh.Members = slices.Clone(*prior.Members)
	default:
		fresh.Members = collab.SplitMembers(fresh.Name, m.Separators)
	}

	fresh.MediaGroups = MediaGroups(fresh.MediaGroups, prior.MediaGroups)

	priorProjects := make(map[string]PriorProject, len(prior.Projects))
	for _, p := range prior.Projects {
		if p.Title == nil {
			continue
		}
		key := collab.Normalize(*p.Title)
		if _, dup := priorProjects[key]; !dup {
			priorProjects[key] = p
		}
	}
	freshTitles := make([]string, 0, len(fresh.Projects))
	for i := range fresh.Projects {
		project := &fresh.Projects[i]
		freshTitles = append(freshTitles, project.Title)
		key := collab.Normalize(project.Title)
		p, ok := priorProjects[key]
		if ok {
			delete(priorProjects, key)
		}
		m.Project(ctx, logger, project, p)
	}
	m.reportUnmatched(ctx, logger, prior.Projects, priorProjects, freshTitles)
}

// Project applies prior curation to one fresh project in place.
func (m *Merger) Project(ctx context.Context, logger *slog.Logger, fresh *record.Project, prior PriorProject) {
	if logger == nil {
		logger = m.Logger
	}
	logger = logger.With(logging.String(logging.FieldProject, fresh.Title))

	fresh.IsEnabled = boolOr(prior.IsEnabled, true)
	fresh.ReleaseDate = m.date(ctx, logger, "release_date", prior.ReleaseDate)
	fresh.FeaturedCover = prior.FeaturedCover
	if fresh.Info == "" {
		fresh.Info = stringOr(prior.Info, "")
	}
	fresh.Tags = listOr(prior.Tags)
	fresh.MediaGroups = MediaGroups(fresh.MediaGroups, prior.MediaGroups)
}

// MediaGroups copies featured picks from prior groups onto fresh groups with
// the same folder_path. Groups without a prior match get null picks.
func MediaGroups(fresh []record.MediaGroup, prior []PriorMediaGroup) []record.MediaGroup {
	byPath := make(map[string]PriorMediaGroup, len(prior))
	for _, g := range prior {
		if g.FolderPath == nil {
			continue
		}
		if _, dup := byPath[*g.FolderPath]; !dup {
			byPath[*g.FolderPath] = g
		}
	}
	for i := range fresh {
		g := &fresh[i]
		p := byPath[g.FolderPath]
		g.FeaturedVideos = cloneList(p.FeaturedVideos)
		g.FeaturedTracks = cloneList(p.FeaturedTracks)
		g.FeaturedImages = cloneList(p.FeaturedImages)
		g.FeaturedDocuments = cloneList(p.FeaturedDocuments)
		g.FeaturedTexts = cloneList(p.FeaturedTexts)
	}
	return fresh
}

func (m *Merger) date(ctx context.Context, logger *slog.Logger, field string, value *string) string {
	if value == nil {
		return ""
	}
	normalized, err := NormalizeDate(*value)
	if err != nil {
		logging.WarnWithContext(ctx, logger, "invalid date in prior record", "invalid_date",
			logging.String("field", field),
			logging.String("value", *value),
			logging.String(logging.FieldErrorHint, "use yyyy-mm-dd"),
			logging.String(logging.FieldImpact, field+" cleared"),
		)
		return ""
	}
	return normalized
}

// reportUnmatched warns about prior projects whose curation is dropped because
// no fresh project carries their title.
func (m *Merger) reportUnmatched(ctx context.Context, logger *slog.Logger, ordered []PriorProject, unmatched map[string]PriorProject, freshTitles []string) {
	if len(unmatched) == 0 {
		return
	}
	metric := metrics.NewLevenshtein()
	metric.CaseSensitive = false
	for _, p := range ordered {
		if p.Title == nil {
			continue
		}
		if _, ok := unmatched[collab.Normalize(*p.Title)]; !ok {
			continue
		}
		attrs := []logging.Attr{
			logging.String("prior_title", *p.Title),
			logging.String(logging.FieldErrorHint, "restore the folder name or copy the curated fields to the new project"),
			logging.String(logging.FieldImpact, "prior tags, dates, and info for this project are dropped"),
		}
		best, score := "", 0.0
		for _, title := range freshTitles {
			if s := strutil.Similarity(*p.Title, title, metric); s > score {
				best, score = title, s
			}
		}
		if best != "" && score >= renameHintThreshold {
			attrs = append(attrs, logging.String("closest_title", best))
		}
		logging.WarnWithContext(ctx, logger, "prior project no longer exists", "project_curation_dropped", attrs...)
	}
}

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

func stringOr(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return *value
}

func listOr(value *[]string) []string {
	if value == nil || *value == nil {
		return []string{}
	}
	return slices.Clone(*value)
}

func cloneList(value *[]string) *[]string {
	if value == nil {
		return nil
	}
	out := slices.Clone(*value)
	if out == nil {
		out = []string{}
	}
	return &out
}
