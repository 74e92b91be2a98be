package citation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const placeholder = `\emph{(key-missing)}`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bibmap.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolveHitAndMiss(t *testing.T) {
	l := NewLookup(map[string]string{"Graph Sketching at Scale": " smith2021sketch "}, placeholder)

	assert.Equal(t, `\cite{smith2021sketch}`, l.Resolve("  graph sketching AT scale "))
	assert.Equal(t, placeholder, l.Resolve("Unknown Paper"))
	assert.Equal(t, placeholder, l.Resolve(""))
}

func TestNewLookupSkipsBlank(t *testing.T) {
	l := NewLookup(map[string]string{
		"   ":      "blank-title",
		"No Key":   "  ",
		"Has Both": "k1",
	}, "")

	assert.Equal(t, 1, l.Len())
	assert.Equal(t, placeholder, l.Placeholder())
	assert.Equal(t, placeholder, l.Resolve("No Key"))
}

func TestLoad(t *testing.T) {
	path := writeCSV(t, "Title,BibKey\n"+
		"Graph Sketching at Scale,smith2021sketch\n"+
		",orphan\n"+
		"Keyless Paper,\n"+
		"GRAPH SKETCHING AT SCALE,smith2021b\n")

	l := Load(path, placeholder, nil)

	assert.Equal(t, 1, l.Len())
	// The later duplicate wins.
	assert.Equal(t, `\cite{smith2021b}`, l.Resolve("Graph Sketching at Scale"))
	assert.Equal(t, placeholder, l.Resolve("Keyless Paper"))
}

func TestLoadFallbacks(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"empty path", func(t *testing.T) string { return "" }},
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.csv") }},
		{"empty file", func(t *testing.T) string { return writeCSV(t, "") }},
		{"missing key column", func(t *testing.T) string { return writeCSV(t, "Title,Key\nA,a\n") }},
		{"directory", func(t *testing.T) string { return t.TempDir() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Load(tt.path(t), placeholder, nil)
			assert.Equal(t, 0, l.Len())
			assert.Equal(t, placeholder, l.Resolve("A"))
		})
	}
}
