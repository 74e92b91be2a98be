// =============================================================================
// Survey Tables - Report Renderers
// =============================================================================
//
// This module defines the two longtable reports. Both share the same
// structure: every row is classified, its citation resolved, and the cells
// handed to the generic longtable writer. A report only differs in its
// boilerplate (caption, label, column layout) and its cell function.
//
// REPORTS:
//   table5 - taxonomy map: citation, representation operator, update regime,
//            fidelity target, learning paradigm, structural flag, system flag
//   table7 - fidelity/system evidence: citation, structural flag and tags,
//            system flag and tags, plus the count of "Yes" flags
//
// =============================================================================

package report

import (
	"fmt"

	"github.com/ginjaninja78/survey-tables/internal/citation"
	"github.com/ginjaninja78/survey-tables/internal/classify"
	"github.com/ginjaninja78/survey-tables/internal/latexwriter"
	"github.com/ginjaninja78/survey-tables/internal/types"
	"go.uber.org/zap"
)

// Report names accepted by --emit.
const (
	Taxonomy = "table5"
	Fidelity = "table7"
	All      = "all"
)

// Evidence flag values.
const (
	FlagYes = "Yes"
	FlagNo  = "No/NR"
)

// Flag renders a presence flag.
func Flag(present bool) string {
	if present {
		return FlagYes
	}
	return FlagNo
}

// =============================================================================
// REPORT DEFINITION
// =============================================================================

// Entry is one classified row, ready to be turned into cells.
type Entry struct {
	Row      types.Row
	Citation string
	Result   classify.Result
}

// Spec defines a report: its boilerplate and how an entry becomes cells.
type Spec struct {
	// Name is the report identifier, e.g. "table5".
	Name string

	// Table is the longtable boilerplate and column layout.
	Table latexwriter.Table

	// Cells returns the unescaped cells of one row, citation first.
	Cells func(Entry) []string

	// Counts, if set, aggregates the report's entries for the console summary.
	Counts func([]Entry) *EvidenceCounts
}

// EvidenceCounts is the aggregate reported with the fidelity table.
type EvidenceCounts struct {
	Structural int `yaml:"structural"`
	System     int `yaml:"system"`
	Total      int `yaml:"total"`
}

// String renders the counts as they appear on the console summary line.
func (c EvidenceCounts) String() string {
	return fmt.Sprintf("structural=%d/%d  system=%d/%d", c.Structural, c.Total, c.System, c.Total)
}

// Map returns the counts keyed by name, for the run manifest.
func (c EvidenceCounts) Map() map[string]int {
	return map[string]int{
		"structural": c.Structural,
		"system":     c.System,
		"total":      c.Total,
	}
}

// TaxonomySpec is the taxonomy map report.
func TaxonomySpec() Spec {
	header := func(h, w string) latexwriter.Column { return latexwriter.Column{Header: h, Width: w} }

	return Spec{
		Name: Taxonomy,
		Table: latexwriter.Table{
			Caption: "Mapping of the corpus to taxonomy axes (A--D) with evidence flags for structural and system metrics. NR = not reported.",
			Label:   "tab:taxonomy-map-long",
			Columns: []latexwriter.Column{
				{Header: "Paper", Width: "0.16", Raw: true},
				header("Representation operator", "0.20"),
				header("Update regime", "0.12"),
				header("Fidelity target", "0.13"),
				header("Learning vs algorithmic", "0.17"),
				header("Struct.?", "0.07"),
				header("System?", "0.07"),
			},
		},
		Cells: func(e Entry) []string {
			return []string{
				e.Citation,
				e.Result.RepresentationOperator,
				e.Result.UpdateRegime,
				e.Result.FidelityTarget,
				e.Result.LearningParadigm,
				Flag(e.Result.HasStructural()),
				Flag(e.Result.HasSystem()),
			}
		},
	}
}

// FidelitySpec is the fidelity/system evidence report.
func FidelitySpec() Spec {
	return Spec{
		Name: Fidelity,
		Table: latexwriter.Table{
			Caption: `Per-paper evidence of \emph{fidelity} and \emph{system} reporting. ` +
				"We mark whether a study reports any explicit structural metric (e.g., homophily/NMI, spectral, TDA, adjacency/type) " +
				"and any system metric (e.g., latency, throughput/FPS, memory/params/FLOPs). NR = not reported.",
			Label: "tab:fidelity-system",
			Columns: []latexwriter.Column{
				{Header: "Paper", Width: "0.20", Raw: true},
				{Header: "Structural?", Width: "0.10"},
				{Header: "Structural metric type(s)", Width: "0.28"},
				{Header: "System?", Width: "0.10"},
				{Header: "System metric type(s)", Width: "0.28"},
			},
		},
		Cells: func(e Entry) []string {
			return []string{
				e.Citation,
				Flag(e.Result.HasStructural()),
				e.Result.Structural(),
				Flag(e.Result.HasSystem()),
				e.Result.System(),
			}
		},
		Counts: func(entries []Entry) *EvidenceCounts {
			c := &EvidenceCounts{Total: len(entries)}
			for _, e := range entries {
				if e.Result.HasStructural() {
					c.Structural++
				}
				if e.Result.HasSystem() {
					c.System++
				}
			}
			return c
		},
	}
}

// Select returns the reports requested by an --emit value, in emission order.
func Select(emit string) ([]Spec, error) {
	switch emit {
	case Taxonomy:
		return []Spec{TaxonomySpec()}, nil
	case Fidelity:
		return []Spec{FidelitySpec()}, nil
	case All, "":
		return []Spec{TaxonomySpec(), FidelitySpec()}, nil
	default:
		return nil, fmt.Errorf("unknown report %q (want %s, %s or %s)", emit, Taxonomy, Fidelity, All)
	}
}

// =============================================================================
// BUILDER
// =============================================================================

// Builder classifies rows and renders reports. It holds only read-only
// state, so one Builder can render any number of reports.
type Builder struct {
	classifier *classify.Classifier
	lookup     *citation.Lookup
	logger     *zap.Logger
}

// NewBuilder creates a Builder. A nil logger discards log output.
func NewBuilder(classifier *classify.Classifier, lookup *citation.Lookup, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		classifier: classifier,
		lookup:     lookup,
		logger:     logger,
	}
}

// Entries classifies the rows and resolves their citations, preserving order.
func (b *Builder) Entries(rows []types.Row) []Entry {
	entries := make([]Entry, len(rows))
	for i, row := range rows {
		cite := b.lookup.Resolve(row.Title())
		if _, ok := b.lookup.Key(row.Title()); !ok {
			b.logger.Debug("no citation key for title",
				zap.Int("row", row.Number),
				zap.String("title", row.Title()))
		}
		entries[i] = Entry{
			Row:      row,
			Citation: cite,
			Result:   b.classifier.Classify(row),
		}
	}
	return entries
}

// Rendered is a report assembled into LaTeX text.
type Rendered struct {
	// Name is the report identifier.
	Name string

	// Text is the complete fragment, written verbatim.
	Text string

	// Rows holds the unescaped cells of each row, in input order.
	Rows [][]string

	// Counts is set for reports that aggregate evidence flags.
	Counts *EvidenceCounts
}

// Render builds one report from the rows.
func (b *Builder) Render(spec Spec, rows []types.Row) Rendered {
	entries := b.Entries(rows)

	cells := make([][]string, len(entries))
	for i, e := range entries {
		cells[i] = spec.Cells(e)
	}

	r := Rendered{
		Name: spec.Name,
		Text: latexwriter.Render(spec.Table, cells),
		Rows: cells,
	}
	if spec.Counts != nil {
		r.Counts = spec.Counts(entries)
	}

	b.logger.Debug("rendered report", zap.String("report", spec.Name), zap.Int("rows", len(cells)))
	return r
}
