package mediatype

import (
	"path/filepath"
	"strings"
)

// Classifier maps file names to media types while reserving the cover,
// portrait and README files.
type Classifier struct {
	coverBasename    string
	portraitBasename string
	readmeFilename   string
}

// NewClassifier builds a Classifier for the configured reserved names. The
// comparisons are case-insensitive.
func NewClassifier(coverBasename, portraitBasename, readmeFilename string) Classifier {
	return Classifier{
		coverBasename:    strings.ToLower(strings.TrimSpace(coverBasename)),
		portraitBasename: strings.ToLower(strings.TrimSpace(portraitBasename)),
		readmeFilename:   strings.TrimSpace(readmeFilename),
	}
}

// Classify returns the media type for the file at path. Only the base name is
// inspected.
func (c Classifier) Classify(path string) MediaType {
	name := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(name))
	stem := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))

	kind := ForExtension(ext)
	switch kind {
	case Image:
		if c.IsReservedImage(stem) {
			return None
		}
	case Text:
		if c.IsReadme(name) {
			return None
		}
	}
	return kind
}

// IsReservedImage reports whether a lowercase stem names the cover or portrait image.
func (c Classifier) IsReservedImage(stem string) bool {
	if stem == "" {
		return false
	}
	return stem == c.coverBasename || stem == c.portraitBasename
}

// IsReadme reports whether name is the configured README file.
func (c Classifier) IsReadme(name string) bool {
	return c.readmeFilename != "" && strings.EqualFold(name, c.readmeFilename)
}

// ReadmeFilename returns the configured README file name.
func (c Classifier) ReadmeFilename() string {
	return c.readmeFilename
}
