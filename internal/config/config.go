package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains input location configuration.
type Paths struct {
	InputDir string `toml:"input_dir" env:"CR4TE_INPUT_DIR"`
}

// MediaRules parameterizes discovery, classification, and image selection.
type MediaRules struct {
	GlobalExcludePrefix        string   `toml:"global_exclude_prefix" env:"CR4TE_GLOBAL_EXCLUDE_PREFIX"`
	MaxSearchDepth             int      `toml:"max_search_depth" env:"CR4TE_MAX_SEARCH_DEPTH"`
	MetadataFolderName         string   `toml:"metadata_folder_name" env:"CR4TE_METADATA_FOLDER_NAME"`
	CollaborationSeparators    []string `toml:"collaboration_separators" env:"CR4TE_COLLABORATION_SEPARATORS" env-separator:"|"`
	PortraitBasename           string   `toml:"portrait_basename" env:"CR4TE_PORTRAIT_BASENAME"`
	CoverBasename              string   `toml:"cover_basename" env:"CR4TE_COVER_BASENAME"`
	ReadmeFilename             string   `toml:"readme_filename" env:"CR4TE_README_FILENAME"`
	ImageGalleryMax            int      `toml:"image_gallery_max" env:"CR4TE_IMAGE_GALLERY_MAX"`
	ImageGallerySampleStrategy string   `toml:"image_gallery_sample_strategy" env:"CR4TE_IMAGE_GALLERY_SAMPLE_STRATEGY"`
	AutoFindPortraits          bool     `toml:"auto_find_portraits" env:"CR4TE_AUTO_FIND_PORTRAITS"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format" env:"CR4TE_LOG_FORMAT"`
	Level  string `toml:"level" env:"CR4TE_LOG_LEVEL"`
	File   string `toml:"file" env:"CR4TE_LOG_FILE"`
}

// Config encapsulates all configuration values for cr4te.
//
// Configuration sections:
//   - Paths: default input directory
//   - MediaRules: discovery and image selection rules for the pipeline
//   - Logging: log format, level, and optional log file
type Config struct {
	Paths      Paths      `toml:"paths"`
	MediaRules MediaRules `toml:"media_rules"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file, then applies
// environment overrides. The returned bool reports whether a file was read.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, "", false, fmt.Errorf("read environment: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the effective configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}
