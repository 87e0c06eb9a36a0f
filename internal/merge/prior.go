package merge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/mitchellh/mapstructure"

	"cr4te/internal/logging"
)

// PriorMediaGroup carries the curatable fields of a previously written media
// group. Nil pointers mean the key was absent.
type PriorMediaGroup struct {
	FolderPath        *string   `mapstructure:"folder_path"`
	FeaturedVideos    *[]string `mapstructure:"featured_videos"`
	FeaturedTracks    *[]string `mapstructure:"featured_tracks"`
	FeaturedImages    *[]string `mapstructure:"featured_images"`
	FeaturedDocuments *[]string `mapstructure:"featured_documents"`
	FeaturedTexts     *[]string `mapstructure:"featured_texts"`
}

// PriorProject carries the curatable fields of a previously written project.
type PriorProject struct {
	Title         *string           `mapstructure:"title"`
	IsEnabled     *bool             `mapstructure:"is_enabled"`
	ReleaseDate   *string           `mapstructure:"release_date"`
	FeaturedCover *string           `mapstructure:"featured_cover"`
	Info          *string           `mapstructure:"info"`
	Tags          *[]string         `mapstructure:"tags"`
	MediaGroups   []PriorMediaGroup `mapstructure:"media_groups"`
}

// PriorCreator carries the curatable fields of a previously written creator.
type PriorCreator struct {
	Name                 *string           `mapstructure:"name"`
	IsEnabled            *bool             `mapstructure:"is_enabled"`
	IsCollaboration      *bool             `mapstructure:"is_collaboration"`
	BornOrFounded        *string           `mapstructure:"born_or_founded"`
	ActiveSince          *string           `mapstructure:"active_since"`
	Nationality          *string           `mapstructure:"nationality"`
	Aliases              *[]string         `mapstructure:"aliases"`
	FeaturedPortrait     *string           `mapstructure:"featured_portrait"`
	Info                 *string           `mapstructure:"info"`
	Tags                 *[]string         `mapstructure:"tags"`
	Projects             []PriorProject    `mapstructure:"projects"`
	MediaGroups          []PriorMediaGroup `mapstructure:"media_groups"`
	Members              *[]string         `mapstructure:"members"`
	ManualCollaborations *[]string         `mapstructure:"manual_collaborations"`
}

// DecodePrior decodes a generic JSON object into a PriorCreator. Type
// mismatches are coerced where possible; fields that cannot be coerced are
// left absent and reported in the returned error alongside the partial
// result.
func DecodePrior(raw map[string]any) (PriorCreator, error) {
	var prior PriorCreator
	if len(raw) == 0 {
		return prior, nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &prior,
	})
	if err != nil {
		return PriorCreator{}, fmt.Errorf("prior decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return prior, fmt.Errorf("decode prior record: %w", err)
	}
	return prior, nil
}

// LoadPrior reads the record previously written at path. A missing file
// yields an empty prior; unreadable or corrupt files are logged as warnings
// and also yield an empty prior.
func LoadPrior(ctx context.Context, path string, logger *slog.Logger) PriorCreator {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logging.WarnWithContext(ctx, logger, "prior record unreadable", "prior_record_unreadable",
				logging.String(logging.FieldPath, path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check file permissions"),
				logging.String(logging.FieldImpact, "curated fields reset to defaults"),
			)
		}
		return PriorCreator{}
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		logging.WarnWithContext(ctx, logger, "prior record is not valid JSON", "prior_record_corrupt",
			logging.String(logging.FieldPath, path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "fix or delete the file; it is rewritten on this run"),
			logging.String(logging.FieldImpact, "curated fields reset to defaults"),
		)
		return PriorCreator{}
	}

	prior, err := DecodePrior(raw)
	if err != nil {
		logging.WarnWithContext(ctx, logger, "prior record has unexpected field types", "prior_record_corrupt",
			logging.String(logging.FieldPath, path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "fix the listed fields in the JSON file"),
			logging.String(logging.FieldImpact, "listed fields reset to defaults"),
		)
	}
	return prior
}
