// Package record defines the creator metadata document written to each
// creator folder and read back on the next run.
package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"cr4te/internal/mediatype"
)

// Filename is the metadata file written inside every creator folder.
const Filename = "cr4te.json"

// MediaGroup holds the classified files found directly in one folder.
type MediaGroup struct {
	IsRoot            bool      `json:"is_root"`
	Videos            []string  `json:"videos" validate:"required,dive,required"`
	FeaturedVideos    *[]string `json:"featured_videos"`
	Tracks            []string  `json:"tracks" validate:"required,dive,required"`
	FeaturedTracks    *[]string `json:"featured_tracks"`
	Images            []string  `json:"images" validate:"required,dive,required"`
	FeaturedImages    *[]string `json:"featured_images"`
	Documents         []string  `json:"documents" validate:"required,dive,required"`
	FeaturedDocuments *[]string `json:"featured_documents"`
	Texts             []string  `json:"texts" validate:"required,dive,required"`
	FeaturedTexts     *[]string `json:"featured_texts"`
	FolderPath        string    `json:"folder_path" validate:"required"`
}

// Project is one immediate subfolder of a creator.
type Project struct {
	Title         string       `json:"title" validate:"required"`
	IsEnabled     bool         `json:"is_enabled"`
	ReleaseDate   string       `json:"release_date" validate:"omitempty,isodate"`
	Cover         string       `json:"cover"`
	FeaturedCover *string      `json:"featured_cover"`
	Info          string       `json:"info"`
	Tags          []string     `json:"tags" validate:"required"`
	MediaGroups   []MediaGroup `json:"media_groups" validate:"required,unique=FolderPath,dive"`
}

// Creator is the top-level record for one creator folder.
type Creator struct {
	Name                 string       `json:"name" validate:"required"`
	IsEnabled            bool         `json:"is_enabled"`
	IsCollaboration      bool         `json:"is_collaboration"`
	BornOrFounded        string       `json:"born_or_founded" validate:"omitempty,isodate"`
	ActiveSince          string       `json:"active_since" validate:"omitempty,isodate"`
	Nationality          string       `json:"nationality"`
	Aliases              []string     `json:"aliases" validate:"required"`
	Portrait             string       `json:"portrait"`
	FeaturedPortrait     *string      `json:"featured_portrait"`
	Info                 string       `json:"info"`
	Tags                 []string     `json:"tags" validate:"required"`
	Projects             []Project    `json:"projects" validate:"required,unique=Title,dive"`
	MediaGroups          []MediaGroup `json:"media_groups" validate:"required,unique=FolderPath,dive"`
	Members              []string     `json:"members" validate:"required,dive,required"`
	ManualCollaborations []string     `json:"manual_collaborations" validate:"required,dive,required"`
	Collaborations       []string     `json:"collaborations" validate:"required,dive,required"`
}

// ErrEmptyKey is returned when a constructor receives a blank identifying key.
var ErrEmptyKey = errors.New("record key must not be empty")

// NewMediaGroup returns an empty group for folderPath.
func NewMediaGroup(folderPath string, isRoot bool) (MediaGroup, error) {
	if strings.TrimSpace(folderPath) == "" {
		return MediaGroup{}, fmt.Errorf("media group folder_path: %w", ErrEmptyKey)
	}
	return MediaGroup{
		IsRoot:     isRoot,
		Videos:     []string{},
		Tracks:     []string{},
		Images:     []string{},
		Documents:  []string{},
		Texts:      []string{},
		FolderPath: folderPath,
	}, nil
}

// NewProject returns a project with default curatable values.
func NewProject(title string) (Project, error) {
	if strings.TrimSpace(title) == "" {
		return Project{}, fmt.Errorf("project title: %w", ErrEmptyKey)
	}
	return Project{
		Title:       title,
		IsEnabled:   true,
		Tags:        []string{},
		MediaGroups: []MediaGroup{},
	}, nil
}

// NewCreator returns a creator with default curatable values.
func NewCreator(name string) (Creator, error) {
	if strings.TrimSpace(name) == "" {
		return Creator{}, fmt.Errorf("creator name: %w", ErrEmptyKey)
	}
	return Creator{
		Name:                 name,
		IsEnabled:            true,
		Aliases:              []string{},
		Tags:                 []string{},
		Projects:             []Project{},
		MediaGroups:          []MediaGroup{},
		Members:              []string{},
		ManualCollaborations: []string{},
		Collaborations:       []string{},
	}, nil
}

// Add appends path to the list matching kind. None is ignored.
func (g *MediaGroup) Add(kind mediatype.MediaType, path string) {
	switch kind {
	case mediatype.Video:
		g.Videos = append(g.Videos, path)
	case mediatype.Audio:
		g.Tracks = append(g.Tracks, path)
	case mediatype.Image:
		g.Images = append(g.Images, path)
	case mediatype.Document:
		g.Documents = append(g.Documents, path)
	case mediatype.Text:
		g.Texts = append(g.Texts, path)
	}
}

// Len returns the number of files across all lists.
func (g MediaGroup) Len() int {
	return len(g.Videos) + len(g.Tracks) + len(g.Images) + len(g.Documents) + len(g.Texts)
}

// Marshal renders c as indented JSON with a trailing newline. HTML characters
// are written verbatim.
func Marshal(c Creator) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode creator %q: %w", c.Name, err)
	}
	return buf.Bytes(), nil
}
