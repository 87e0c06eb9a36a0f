package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMediaRules()
	return c.normalizeLogging()
}

func (c *Config) normalizePaths() error {
	var err error
	c.Paths.InputDir = strings.TrimSpace(c.Paths.InputDir)
	if c.Paths.InputDir, err = expandPath(c.Paths.InputDir); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeMediaRules() {
	r := &c.MediaRules
	r.GlobalExcludePrefix = strings.TrimSpace(r.GlobalExcludePrefix)
	if r.MaxSearchDepth < 0 {
		r.MaxSearchDepth = 0
	}
	r.MetadataFolderName = strings.TrimSpace(r.MetadataFolderName)
	if r.MetadataFolderName == "" {
		r.MetadataFolderName = defaultMetadataFolderName
	}

	separators := make([]string, 0, len(r.CollaborationSeparators))
	seen := make(map[string]struct{}, len(r.CollaborationSeparators))
	for _, sep := range r.CollaborationSeparators {
		sep = strings.TrimSpace(sep)
		if sep == "" {
			continue
		}
		if _, ok := seen[sep]; ok {
			continue
		}
		seen[sep] = struct{}{}
		separators = append(separators, sep)
	}
	r.CollaborationSeparators = separators

	r.PortraitBasename = strings.TrimSpace(r.PortraitBasename)
	if r.PortraitBasename == "" {
		r.PortraitBasename = defaultPortraitBasename
	}
	r.CoverBasename = strings.TrimSpace(r.CoverBasename)
	if r.CoverBasename == "" {
		r.CoverBasename = defaultCoverBasename
	}
	r.ReadmeFilename = strings.TrimSpace(r.ReadmeFilename)
	if r.ReadmeFilename == "" {
		r.ReadmeFilename = defaultReadmeFilename
	}
	r.ImageGallerySampleStrategy = strings.ToLower(strings.TrimSpace(r.ImageGallerySampleStrategy))
	if r.ImageGallerySampleStrategy == "" {
		r.ImageGallerySampleStrategy = defaultImageGallerySampleStrategy
	}
}

func (c *Config) normalizeLogging() error {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch format {
	case "", "console", "text":
		c.Logging.Format = "console"
	case "json":
		c.Logging.Format = "json"
	default:
		c.Logging.Format = format
	}
	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	if level == "warning" {
		level = "warn"
	}
	c.Logging.Level = level
	var err error
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}
