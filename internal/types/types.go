// =============================================================================
// Survey Tables - Shared Types
// =============================================================================
//
// This package contains the row model shared by the workbook reader, the
// classifiers, the citation resolver and the report renderers. Keeping it
// here avoids import cycles between those packages.
//
// =============================================================================

package types

import "strings"

// =============================================================================
// COLUMN NAMES
// =============================================================================
// These are the exact headers used in the literature review workbook.
// Some of them carry the question text the reviewers filled in, including
// the unicode ellipsis, so they must match byte for byte.

const (
	ColTitle            = "Title"
	ColDetailedSummary  = "Detailed summary"
	ColObjective        = "Objective"
	ColSteps            = "Steps"
	ColCompression      = "Compression function"
	ColEvaluationMethod = "Evaluation method (reconstruction? Down-stream task?…)"
	ColEvaluationProc   = "Evaluation process"
	ColResults          = "Results (model does better with x% than model xyz)"
	ColRelation         = "Relation to Graph Reduction and Compression"
)

// RequiredColumns lists the columns that must be present in the workbook.
// A workbook missing any of these is rejected before any output is written.
var RequiredColumns = []string{
	ColTitle,
	ColDetailedSummary,
	ColEvaluationMethod,
	ColEvaluationProc,
	ColObjective,
}

// =============================================================================
// ROW TYPE
// =============================================================================

// Row represents one surveyed publication read from the workbook.
// A Row is never mutated after it has been loaded.
type Row struct {
	// Number is the 1-based row number in the source sheet.
	// Useful for log context.
	Number int

	// Fields maps column header to cell text.
	Fields map[string]string
}

// NewRow creates a Row from a header -> value map.
func NewRow(number int, fields map[string]string) Row {
	if fields == nil {
		fields = make(map[string]string)
	}
	return Row{Number: number, Fields: fields}
}

// Get returns the text of the named field, or "" if the row has no such field.
func (r Row) Get(field string) string {
	return r.Fields[field]
}

// Title returns the publication title.
func (r Row) Title() string {
	return r.Get(ColTitle)
}

// Blob joins the named fields with single spaces and lowercases the result.
// Absent fields contribute an empty string, so the separators are kept.
func (r Row) Blob(fields []string) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = r.Get(f)
	}
	return strings.ToLower(strings.Join(parts, " "))
}
