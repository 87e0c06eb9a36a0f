package testsupport

import (
	"path/filepath"
	"testing"

	"cr4te/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a default config whose input directory is a unique temp
// directory, then applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.InputDir = filepath.Join(base, "Creators")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithMediaRules mutates the media rules of the test config.
func WithMediaRules(fn func(*config.MediaRules)) ConfigOption {
	return func(b *configBuilder) {
		fn(&b.cfg.MediaRules)
	}
}

// WithGallery sets the image gallery maximum and strategy.
func WithGallery(maxImages int, strategy string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.MediaRules.ImageGalleryMax = maxImages
		b.cfg.MediaRules.ImageGallerySampleStrategy = strategy
	}
}
