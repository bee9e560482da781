// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DefaultArchiveName is the download name of the packaged archive.
const DefaultArchiveName = "renamed_pdfs.zip"

// RenameConfig holds settings for a rename run.
type RenameConfig struct {
	// Tag is appended verbatim between the client name and the extension
	// (e.g. "_2025_11_21"). Empty means no tag.
	Tag string `json:"tag" yaml:"tag" mapstructure:"tag"`

	// RosterFile is an optional YAML roster overriding the built-in client list.
	RosterFile string `json:"roster_file,omitempty" yaml:"roster_file,omitempty" mapstructure:"roster_file"`

	// ArchiveName is the filename of the produced ZIP (default renamed_pdfs.zip).
	ArchiveName string `json:"archive_name" yaml:"archive_name" mapstructure:"archive_name"`
}

// IngestConfig controls how input paths are expanded into files.
type IngestConfig struct {
	// Extensions lists the file extensions accepted from directories and
	// ZIP uploads (e.g. ".pdf"). Empty accepts everything.
	Extensions []string `json:"extensions" yaml:"extensions" mapstructure:"extensions"`
}

// PublishConfig selects where the archive is delivered.
type PublishConfig struct {
	// OutputDir is the local directory the archive is written to.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// GCSBucket, when set, uploads the archive to Cloud Storage instead.
	GCSBucket string `json:"gcs_bucket,omitempty" yaml:"gcs_bucket,omitempty" mapstructure:"gcs_bucket"`

	// GCSPrefix is prepended to the object name (e.g. "weekly/").
	GCSPrefix string `json:"gcs_prefix,omitempty" yaml:"gcs_prefix,omitempty" mapstructure:"gcs_prefix"`

	// MaxRetries is the number of upload attempts before giving up (default 4).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// JSON switches the encoder from console to JSON.
	JSON bool `json:"json" yaml:"json" mapstructure:"json"`
}

// Config groups all settings read from the config file, environment and flags.
type Config struct {
	Rename  RenameConfig  `json:"rename" yaml:"rename" mapstructure:"rename"`
	Ingest  IngestConfig  `json:"ingest" yaml:"ingest" mapstructure:"ingest"`
	Publish PublishConfig `json:"publish" yaml:"publish" mapstructure:"publish"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}
