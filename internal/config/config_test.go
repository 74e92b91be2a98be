package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, "Summerization", cfg.Sheet)
	assert.Equal(t, `\emph{(key-missing)}`, cfg.Placeholder)
	assert.Equal(t, "table5_taxonomy_map_longtable_cited.tex", cfg.Outputs.Taxonomy)
	assert.Equal(t, "table7_fidelity_system_evidence.tex", cfg.Outputs.Fidelity)
	assert.Equal(t, "manifest.yaml", cfg.ManifestFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.RulesFile)
}

func TestDefaultMatchesViperDefaults(t *testing.T) {
	cfg, err := Load(newViper())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey-tables.yaml")
	content := `sheet: Review
placeholder: "\\textbf{??}"
outputs:
  taxonomy: map.tex
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v := newViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "Review", cfg.Sheet)
	assert.Equal(t, `\textbf{??}`, cfg.Placeholder)
	assert.Equal(t, "map.tex", cfg.Outputs.Taxonomy)
	assert.Equal(t, DefaultFidelityFile, cfg.Outputs.Fidelity)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SURVEY_TABLES_SHEET", "FromEnv")

	v := newViper()
	v.SetEnvPrefix("SURVEY_TABLES")
	v.AutomaticEnv()

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "FromEnv", cfg.Sheet)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad log level", "log_level", "loud"},
		{"output with directory", "outputs.taxonomy", "sub/map.tex"},
		{"manifest with directory", "manifest_file", "../manifest.yaml"},
		{"same output names", "outputs.fidelity", DefaultTaxonomyFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			v.Set(tt.key, tt.val)

			_, err := Load(v)
			assert.Error(t, err)
		})
	}
}
