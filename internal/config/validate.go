package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMediaRules(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateMediaRules() error {
	r := c.MediaRules
	if r.MaxSearchDepth < 0 {
		return errors.New("media_rules.max_search_depth must be >= 0")
	}
	if r.ImageGalleryMax < 0 {
		return errors.New("media_rules.image_gallery_max must be >= 0")
	}
	if !slices.Contains(sampleStrategies, r.ImageGallerySampleStrategy) {
		return fmt.Errorf("media_rules.image_gallery_sample_strategy must be one of %s (got %q)", strings.Join(sampleStrategies, ", "), r.ImageGallerySampleStrategy)
	}
	if r.GlobalExcludePrefix != "" && strings.HasPrefix(r.MetadataFolderName, r.GlobalExcludePrefix) {
		return fmt.Errorf("media_rules.metadata_folder_name %q must not start with global_exclude_prefix %q", r.MetadataFolderName, r.GlobalExcludePrefix)
	}
	if strings.ContainsAny(r.MetadataFolderName, `/\`) {
		return errors.New("media_rules.metadata_folder_name must be a single folder name")
	}
	if strings.EqualFold(r.PortraitBasename, r.CoverBasename) {
		return errors.New("media_rules.portrait_basename and media_rules.cover_basename must differ")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
