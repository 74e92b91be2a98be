// =============================================================================
// Survey Tables - Main Entry Point
// =============================================================================
//
// USAGE:
//   survey-tables build     - Generate the LaTeX tables from the review workbook
//   survey-tables classify  - Print the per-row classification as YAML
//   survey-tables rules     - Print the keyword rule table as YAML
//   survey-tables version   - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Reading, classification and rendering (not for external import)
//   - pkg/       : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/survey-tables/cmd"
)

func main() {
	cmd.Execute()
}
