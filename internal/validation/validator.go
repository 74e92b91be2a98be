// =============================================================================
// Survey Tables - Workbook Validation
// =============================================================================
//
// This module checks that the review workbook carries the columns the
// classifiers and renderers depend on. A missing column is the only fatal
// input problem: it is detected before any output is produced and maps to
// exit status 2.
//
// Everything else (blank cells, unmatched titles, rows no rule fires on) is
// an expected gap handled by fallback values further down the pipeline.
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// MissingColumnsError reports required columns absent from the workbook.
type MissingColumnsError struct {
	// Sheet is the worksheet that was checked.
	Sheet string

	// Missing lists the absent columns in required order.
	Missing []string
}

// Error implements the error interface.
func (e *MissingColumnsError) Error() string {
	quoted := make([]string, len(e.Missing))
	for i, c := range e.Missing {
		quoted[i] = fmt.Sprintf("'%s'", c)
	}
	return fmt.Sprintf("Missing required columns in Excel: [%s]", strings.Join(quoted, ", "))
}

// IsMissingColumns reports whether err is, or wraps, a MissingColumnsError.
func IsMissingColumns(err error) bool {
	var mce *MissingColumnsError
	return errors.As(err, &mce)
}

// =============================================================================
// VALIDATION FUNCTIONS
// =============================================================================

// RequireColumns checks that every required column is among the headers.
//
// PARAMETERS:
//   - sheet: The worksheet name, for the error message.
//   - headers: The headers present in the worksheet.
//   - required: The columns that must be present.
//
// RETURNS:
//   - nil if all required columns are present.
//   - A *MissingColumnsError listing the absent columns otherwise.
func RequireColumns(sheet string, headers, required []string) error {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}

	var missing []string
	for _, c := range required {
		if !present[c] {
			missing = append(missing, c)
		}
	}

	if len(missing) > 0 {
		return &MissingColumnsError{Sheet: sheet, Missing: missing}
	}
	return nil
}
