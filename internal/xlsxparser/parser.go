// =============================================================================
// Survey Tables - XLSX Workbook Parser
// =============================================================================
//
// This module reads the literature review workbook. The review lives on a
// single named worksheet where the first row holds the column headers and
// every following row describes one surveyed publication:
//
//   | Title           | Detailed summary | Objective | Evaluation process | ... |
//   |-----------------|------------------|-----------|--------------------|-----|
//   | Graph Sketching | count-min sketch | ...       |                    | ... |
//
// Cells are read as their formatted text. Short rows (excelize trims
// trailing empty cells) are padded so every header is present on every row.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/survey-tables/internal/types"
	"github.com/xuri/excelize/v2"
)

// =============================================================================
// SHEET STRUCTURE
// =============================================================================

// Sheet represents the parsed review worksheet.
type Sheet struct {
	// SourceFile is the path to the workbook.
	SourceFile string

	// Name is the worksheet name.
	Name string

	// Headers contains the column headers in sheet order.
	Headers []string

	// Rows contains the data rows in sheet order.
	Rows []types.Row
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads the named worksheet of an XLSX workbook.
//
// PARAMETERS:
//   - workbookPath: The path to the XLSX workbook.
//   - sheetName: The worksheet holding the review data.
//
// RETURNS:
//   - A pointer to the Sheet containing headers and rows.
//   - An error if the workbook cannot be opened or the sheet does not exist.
func Parse(workbookPath, sheetName string) (*Sheet, error) {
	f, err := excelize.OpenFile(workbookPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, fmt.Errorf("workbook has no sheet named %q (sheets: %s)",
			sheetName, strings.Join(f.GetSheetList(), ", "))
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	sheet := &Sheet{
		SourceFile: workbookPath,
		Name:       sheetName,
	}

	if len(rows) == 0 {
		// An empty sheet has no headers; the column check reports it.
		return sheet, nil
	}

	sheet.Headers = cleanHeaders(rows[0])

	for i := 1; i < len(rows); i++ {
		row := rows[i]

		// Skip empty rows.
		if isRowEmpty(row) {
			continue
		}

		sheet.Rows = append(sheet.Rows, parseRow(row, sheet.Headers, i+1))
	}

	return sheet, nil
}

// parseRow converts a raw row into a types.Row keyed by header.
//
// PARAMETERS:
//   - row: The cell values as a slice of strings.
//   - headers: The cleaned column headers.
//   - number: The 1-based sheet row number.
func parseRow(row []string, headers []string, number int) types.Row {
	fields := make(map[string]string, len(headers))

	for j, header := range headers {
		if header == "" {
			continue
		}
		// Keep the first column when a header is duplicated.
		if _, seen := fields[header]; seen {
			continue
		}
		if j < len(row) {
			fields[header] = row[j]
		} else {
			fields[header] = ""
		}
	}

	return types.NewRow(number, fields)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// cleanHeaders trims surrounding whitespace from each header.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, h := range headers {
		cleaned[i] = strings.TrimSpace(h)
	}
	return cleaned
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// SHEET METHODS
// =============================================================================

// HasColumn reports whether the sheet has a column with the given header.
func (s *Sheet) HasColumn(header string) bool {
	for _, h := range s.Headers {
		if h == header {
			return true
		}
	}
	return false
}
