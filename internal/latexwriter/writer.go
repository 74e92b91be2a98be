// =============================================================================
// Survey Tables - LaTeX Longtable Writer
// =============================================================================
//
// This module renders a table of cells as a self-contained LaTeX longtable
// fragment. The fragment carries its own size and spacing directives so it
// can be \input{} directly into the paper:
//
//   \begin{footnotesize}
//   \setlength{\tabcolsep}{4pt}
//   \renewcommand{\arraystretch}{1.1}
//   \begin{longtable}{p{0.20\textwidth} p{0.10\textwidth} ...}
//   \caption{...}
//   \label{tab:...}\\
//   \toprule
//   Paper & Structural? & ...\\          <- first page header
//   \midrule
//   \endfirsthead
//   ...                                  <- repeated header, continuation footer
//   \endlastfoot
//
//    \cite{key} & Yes & Spectral \\      <- one line per row
//   \end{longtable}
//   \end{footnotesize}
//
// Cells are escaped unless their column is marked Raw. Column headers and
// the caption are emitted verbatim, so they may contain markup.
//
// =============================================================================

package latexwriter

import (
	"fmt"
	"strings"
)

// =============================================================================
// TABLE DEFINITION
// =============================================================================

// Column describes one longtable column.
type Column struct {
	// Header is the column heading. Emitted verbatim.
	Header string

	// Width is the column width as a fraction of \textwidth, e.g. "0.16".
	Width string

	// Raw disables escaping for the column's cells. Use it for cells that
	// already contain generated markup, such as \cite{...}.
	Raw bool
}

// Table holds the fixed boilerplate of a longtable fragment.
type Table struct {
	// Caption is the table caption. Emitted verbatim.
	Caption string

	// Label is the \label key, e.g. "tab:fidelity-system".
	Label string

	// Columns defines the layout, header and escaping of each column.
	Columns []Column

	// FontSize is the environment wrapping the table.
	// Default: "footnotesize"
	FontSize string

	// ColumnSep is the \tabcolsep length.
	// Default: "4pt"
	ColumnSep string

	// ArrayStretch is the \arraystretch factor.
	// Default: "1.1"
	ArrayStretch string

	// ContinuedText is the footer shown before a page break.
	// Default: `\emph{Continued on next page}`
	ContinuedText string
}

// withDefaults returns a copy of the table with unset options filled in.
func (t Table) withDefaults() Table {
	if t.FontSize == "" {
		t.FontSize = "footnotesize"
	}
	if t.ColumnSep == "" {
		t.ColumnSep = "4pt"
	}
	if t.ArrayStretch == "" {
		t.ArrayStretch = "1.1"
	}
	if t.ContinuedText == "" {
		t.ContinuedText = `\emph{Continued on next page}`
	}
	return t
}

// =============================================================================
// ESCAPING
// =============================================================================

var escaper = strings.NewReplacer(
	"&", `\&`,
	"_", `\_`,
)

// Escape makes a cell safe inside the tabular markup by escaping ampersands
// and underscores. Other characters pass through unchanged.
func Escape(s string) string {
	return escaper.Replace(s)
}

// =============================================================================
// RENDERING
// =============================================================================

// Header renders the boilerplate preceding the first row. The result ends
// with a newline after \endlastfoot.
func (t Table) Header() string {
	t = t.withDefaults()

	widths := make([]string, len(t.Columns))
	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = fmt.Sprintf(`p{%s\textwidth}`, c.Width)
		headers[i] = c.Header
	}
	headerRow := strings.Join(headers, " & ") + `\\`

	var b strings.Builder
	fmt.Fprintf(&b, "\\begin{%s}\n", t.FontSize)
	fmt.Fprintf(&b, "\\setlength{\\tabcolsep}{%s}\n", t.ColumnSep)
	fmt.Fprintf(&b, "\\renewcommand{\\arraystretch}{%s}\n", t.ArrayStretch)
	fmt.Fprintf(&b, "\\begin{longtable}{%s}\n", strings.Join(widths, " "))
	fmt.Fprintf(&b, "\\caption{%s}\n", t.Caption)
	fmt.Fprintf(&b, "\\label{%s}\\\\\n", t.Label)

	// First page header.
	b.WriteString("\\toprule\n")
	b.WriteString(headerRow + "\n")
	b.WriteString("\\midrule\n")
	b.WriteString("\\endfirsthead\n")

	// Header repeated on every following page.
	b.WriteString("\\toprule\n")
	b.WriteString(headerRow + "\n")
	b.WriteString("\\midrule\n")
	b.WriteString("\\endhead\n")

	// Footer before a page break.
	b.WriteString("\\midrule\n")
	fmt.Fprintf(&b, "\\multicolumn{%d}{r}{%s}\\\\\n", len(t.Columns), t.ContinuedText)
	b.WriteString("\\midrule\n")
	b.WriteString("\\endfoot\n")

	// Footer on the last page.
	b.WriteString("\\bottomrule\n")
	b.WriteString("\\endlastfoot\n")

	return b.String()
}

// Footer renders the lines closing the fragment.
func (t Table) Footer() []string {
	t = t.withDefaults()
	return []string{
		`\end{longtable}`,
		fmt.Sprintf(`\end{%s}`, t.FontSize),
	}
}

// Row renders one body line. Cells beyond the column count are dropped and
// missing cells are left empty.
func (t Table) Row(cells []string) string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		if i >= len(cells) {
			continue
		}
		if c.Raw {
			out[i] = cells[i]
		} else {
			out[i] = Escape(cells[i])
		}
	}
	return " " + strings.Join(out, " & ") + ` \\`
}

// Render assembles the complete fragment: header, one line per row, footer.
// Lines are joined with "\n" and the text has no trailing newline.
func Render(t Table, rows [][]string) string {
	lines := make([]string, 0, len(rows)+3)
	lines = append(lines, t.Header())
	for _, cells := range rows {
		lines = append(lines, t.Row(cells))
	}
	lines = append(lines, t.Footer()...)
	return strings.Join(lines, "\n")
}
