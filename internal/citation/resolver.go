// Package citation maps publication titles to bibliography keys and renders
// the citation cell of a report row.
package citation

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/ginjaninja78/survey-tables/internal/config"
	"github.com/ginjaninja78/survey-tables/internal/csvparser"
	"go.uber.org/zap"
)

// Column headers expected in the lookup file.
const (
	TitleColumn = "Title"
	KeyColumn   = "BibKey"
)

// Lookup maps normalized titles to citation keys. It is read-only once built.
type Lookup struct {
	keys        map[string]string
	placeholder string
}

// NewLookup builds a Lookup from title -> key pairs. Blank titles or keys are
// skipped and a later duplicate title replaces an earlier one.
func NewLookup(pairs map[string]string, placeholder string) *Lookup {
	l := &Lookup{
		keys:        make(map[string]string, len(pairs)),
		placeholder: placeholder,
	}
	if l.placeholder == "" {
		l.placeholder = config.DefaultPlaceholder
	}
	for title, key := range pairs {
		l.add(title, key)
	}
	return l
}

func (l *Lookup) add(title, key string) {
	t := Normalize(title)
	k := strings.TrimSpace(key)
	if t == "" || k == "" {
		return
	}
	l.keys[t] = k
}

// Load reads a lookup table from a CSV file with Title and BibKey columns.
//
// A missing path, a missing file or an unreadable file all yield an empty
// lookup so that every title resolves to the placeholder. Problems other
// than a plain absence are logged at warn level.
func Load(path, placeholder string, logger *zap.Logger) *Lookup {
	if logger == nil {
		logger = zap.NewNop()
	}

	l := NewLookup(nil, placeholder)
	if strings.TrimSpace(path) == "" {
		logger.Debug("no citation lookup given")
		return l
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		logger.Info("citation lookup not found, using placeholders", zap.String("path", path))
		return l
	}

	data, err := csvparser.Parse(path)
	if err != nil {
		logger.Warn("citation lookup unreadable, using placeholders", zap.String("path", path), zap.Error(err))
		return l
	}

	if !data.HasColumn(TitleColumn) || !data.HasColumn(KeyColumn) {
		logger.Warn("citation lookup lacks required columns, using placeholders",
			zap.String("path", path),
			zap.Strings("columns", data.Headers))
		return l
	}

	for _, row := range data.Rows {
		l.add(row[TitleColumn], row[KeyColumn])
	}

	logger.Debug("loaded citation lookup", zap.String("path", path), zap.Int("keys", l.Len()))
	return l
}

// Normalize trims and lowercases a title for lookup.
func Normalize(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// Key returns the citation key for a title and whether it was found.
func (l *Lookup) Key(title string) (string, bool) {
	k, ok := l.keys[Normalize(title)]
	return k, ok
}

// Resolve returns `\cite{key}` for a known title and the placeholder otherwise.
// The result is LaTeX markup and must not be escaped again.
func (l *Lookup) Resolve(title string) string {
	if k, ok := l.Key(title); ok {
		return fmt.Sprintf(`\cite{%s}`, k)
	}
	return l.placeholder
}

// Placeholder returns the text used for unresolved titles.
func (l *Lookup) Placeholder() string {
	return l.placeholder
}

// Len returns the number of titles in the lookup.
func (l *Lookup) Len() int {
	return len(l.keys)
}
