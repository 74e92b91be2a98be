package csvparser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReader(t *testing.T) {
	input := "\ufeffTitle, BibKey ,Year\n" +
		"\"Graph Sketching, Revisited\",smith2021,2021\n" +
		"\n" +
		"Short Row,doe2020\n"

	data, err := ParseReader(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"Title", "BibKey", "Year"}, data.Headers)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, "Graph Sketching, Revisited", data.Rows[0]["Title"])
	assert.Equal(t, "smith2021", data.Rows[0]["BibKey"])
	assert.Equal(t, "", data.Rows[1]["Year"])
	assert.True(t, data.HasColumn("BibKey"))
	assert.False(t, data.HasColumn("DOI"))
}

func TestParseReaderEmpty(t *testing.T) {
	_, err := ParseReader(strings.NewReader(""))
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bibmap.csv")
	require.NoError(t, os.WriteFile(path, []byte("Title,BibKey\nA,a1\n"), 0o644))

	data, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, path, data.SourceFile)
	require.Len(t, data.Rows, 1)
	assert.Equal(t, "a1", data.Rows[0]["BibKey"])
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
