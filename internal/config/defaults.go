package config

const (
	defaultGlobalExcludePrefix        = "_"
	defaultMaxSearchDepth             = 5
	defaultMetadataFolderName         = "meta"
	defaultPortraitBasename           = "portrait"
	defaultCoverBasename              = "cover"
	defaultReadmeFilename             = "README.md"
	defaultImageGalleryMax            = 20
	defaultImageGallerySampleStrategy = "spread"
	defaultAutoFindPortraits          = false
	defaultLogFormat                  = "console"
	defaultLogLevel                   = "info"
	defaultConfigPath                 = "~/.config/cr4te/config.toml"
	projectConfigName                 = "cr4te.toml"
)

var defaultCollaborationSeparators = []string{"&", ","}

// sampleStrategies lists the accepted image_gallery_sample_strategy values.
var sampleStrategies = []string{"all", "head", "spread"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		MediaRules: MediaRules{
			GlobalExcludePrefix:        defaultGlobalExcludePrefix,
			MaxSearchDepth:             defaultMaxSearchDepth,
			MetadataFolderName:         defaultMetadataFolderName,
			CollaborationSeparators:    append([]string(nil), defaultCollaborationSeparators...),
			PortraitBasename:           defaultPortraitBasename,
			CoverBasename:              defaultCoverBasename,
			ReadmeFilename:             defaultReadmeFilename,
			ImageGalleryMax:            defaultImageGalleryMax,
			ImageGallerySampleStrategy: defaultImageGallerySampleStrategy,
			AutoFindPortraits:          defaultAutoFindPortraits,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
