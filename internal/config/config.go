// =============================================================================
// Survey Tables - Configuration Module
// =============================================================================
//
// This module is responsible for the application configuration. Values are
// layered by viper in the following order (highest priority first):
//   1. Command line flags
//   2. Environment variables (SURVEY_TABLES_*)
//   3. Config file (survey-tables.yaml, or the file given by --config)
//   4. Defaults (see SetDefaults)
//
// The resolved values are decoded into the typed Config struct so the rest
// of the application never touches viper directly.
//
// =============================================================================

package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	// DefaultSheet is the name of the worksheet holding the review data.
	// The spelling matches the workbook the reviewers maintain.
	DefaultSheet = "Summerization"

	// DefaultPlaceholder is emitted in the citation cell when a title has no
	// bibliography key.
	DefaultPlaceholder = `\emph{(key-missing)}`

	// DefaultTaxonomyFile is the file name of the taxonomy map report.
	DefaultTaxonomyFile = "table5_taxonomy_map_longtable_cited.tex"

	// DefaultFidelityFile is the file name of the fidelity/system evidence report.
	DefaultFidelityFile = "table7_fidelity_system_evidence.tex"

	// DefaultManifestFile is the file name of the optional run manifest.
	DefaultManifestFile = "manifest.yaml"

	// DefaultLogLevel controls the verbosity of logging.
	DefaultLogLevel = "info"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the global application configuration.
type Config struct {
	// Sheet is the worksheet to read from the workbook.
	Sheet string `mapstructure:"sheet" yaml:"sheet"`

	// Placeholder is the citation cell text used for titles missing from
	// the lookup. It is emitted verbatim, so it may contain LaTeX markup.
	Placeholder string `mapstructure:"placeholder" yaml:"placeholder"`

	// RulesFile is an optional YAML rule table replacing the built-in rules.
	// Empty means the embedded rules are used.
	RulesFile string `mapstructure:"rules_file" yaml:"rules_file,omitempty"`

	// Outputs holds the file names of the emitted artifacts.
	Outputs OutputsConfig `mapstructure:"outputs" yaml:"outputs"`

	// ManifestFile is the file name of the run manifest written when
	// --manifest is set.
	ManifestFile string `mapstructure:"manifest_file" yaml:"manifest_file"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// OutputsConfig holds the artifact file names.
// Names are relative to the output directory.
type OutputsConfig struct {
	Taxonomy string `mapstructure:"taxonomy" yaml:"taxonomy"`
	Fidelity string `mapstructure:"fidelity" yaml:"fidelity"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// SetDefaults registers the default values on a viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("sheet", DefaultSheet)
	v.SetDefault("placeholder", DefaultPlaceholder)
	v.SetDefault("rules_file", "")
	v.SetDefault("outputs.taxonomy", DefaultTaxonomyFile)
	v.SetDefault("outputs.fidelity", DefaultFidelityFile)
	v.SetDefault("manifest_file", DefaultManifestFile)
	v.SetDefault("log_level", DefaultLogLevel)
}

// Default returns a Config populated with the built-in defaults only.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load decodes the resolved viper values into a Config.
//
// PARAMETERS:
//   - v: A viper instance with flags, env and config file already wired.
//
// RETURNS:
//   - A pointer to the validated Config.
//   - An error if decoding or validation fails.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
// Viper defaults cover the normal path; this also protects a Config built
// from an instance that never had SetDefaults called on it.
func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Sheet) == "" {
		cfg.Sheet = DefaultSheet
	}
	if cfg.Placeholder == "" {
		cfg.Placeholder = DefaultPlaceholder
	}
	if cfg.Outputs.Taxonomy == "" {
		cfg.Outputs.Taxonomy = DefaultTaxonomyFile
	}
	if cfg.Outputs.Fidelity == "" {
		cfg.Outputs.Fidelity = DefaultFidelityFile
	}
	if cfg.ManifestFile == "" {
		cfg.ManifestFile = DefaultManifestFile
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
}

// validate validates the configuration.
func validate(cfg *Config) error {
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}

	names := map[string]string{
		"outputs.taxonomy": cfg.Outputs.Taxonomy,
		"outputs.fidelity": cfg.Outputs.Fidelity,
		"manifest_file":    cfg.ManifestFile,
	}
	for key, name := range names {
		// Artifacts always land inside the output directory.
		if filepath.Base(name) != name {
			return fmt.Errorf("%s must be a plain file name, got %q", key, name)
		}
	}

	if cfg.Outputs.Taxonomy == cfg.Outputs.Fidelity {
		return fmt.Errorf("outputs.taxonomy and outputs.fidelity must differ (both %q)", cfg.Outputs.Taxonomy)
	}

	return nil
}
