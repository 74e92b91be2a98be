// =============================================================================
// Survey Tables - CSV Parser Module
// =============================================================================
//
// This module parses small delimited text tables, such as the title ->
// bibliography key mapping exported from a reference manager. It handles:
//   - A single header row (a leading UTF-8 byte order mark is stripped)
//   - Ragged rows (short rows are padded, extra cells are ignored)
//   - Quoted fields, including embedded delimiters and newlines
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// =============================================================================
// CSV DATA STRUCTURE
// =============================================================================

// CSVData represents the parsed CSV file.
type CSVData struct {
	// Headers contains the cleaned column headers.
	Headers []string

	// Rows contains the data rows as maps of header -> value.
	Rows []map[string]string

	// SourceFile is the path to the source CSV file, if any.
	SourceFile string
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a comma separated file and returns the parsed data.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//
// RETURNS:
//   - A pointer to the CSVData struct containing the parsed data.
//   - An error if the file cannot be read or parsed.
func Parse(filePath string) (*CSVData, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := ParseReader(bufio.NewReader(file))
	if err != nil {
		return nil, err
	}
	data.SourceFile = filePath

	return data, nil
}

// ParseReader parses CSV content from a reader.
func ParseReader(r io.Reader) (*CSVData, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(allRows) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	data := &CSVData{
		Headers: cleanHeaders(allRows[0]),
	}

	for _, raw := range allRows[1:] {
		if isRowEmpty(raw) {
			continue
		}
		row := make(map[string]string, len(data.Headers))
		for i, header := range data.Headers {
			if header == "" {
				continue
			}
			if i < len(raw) {
				row[header] = raw[i]
			} else {
				row[header] = ""
			}
		}
		data.Rows = append(data.Rows, row)
	}

	return data, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// cleanHeaders trims whitespace and a UTF-8 BOM from the headers.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, h := range headers {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
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

// HasColumn reports whether the data has a column with the given header.
func (d *CSVData) HasColumn(header string) bool {
	for _, h := range d.Headers {
		if h == header {
			return true
		}
	}
	return false
}
