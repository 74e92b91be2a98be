// =============================================================================
// Survey Tables - Classify Command
// =============================================================================
//
// This file defines the 'classify' command. It runs the same reading,
// validation and classification as 'build' but prints the per-row result as
// YAML instead of writing LaTeX. It is meant for checking how a rule change
// affects the corpus before regenerating the tables.
//
// COMMAND USAGE:
//   survey-tables classify --excel <workbook> [--bibmap <csv>]
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/ginjaninja78/survey-tables/internal/classify"
	"github.com/ginjaninja78/survey-tables/internal/report"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// classifyWorkbook and classifyLookup hold the flags of the classify command.
var (
	classifyWorkbook string
	classifyLookup   string
)

// classifiedRow is one entry of the classify output.
type classifiedRow struct {
	Row             int    `yaml:"row"`
	Title           string `yaml:"title"`
	Citation        string `yaml:"citation"`
	classify.Result `yaml:",inline"`
}

// classifyCmd represents the 'classify' command.
var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Print the classification of every row as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := report.LoadInput(cfg, classifyWorkbook, classifyLookup, logger)
		if err != nil {
			return err
		}

		builder := report.NewBuilder(input.Classifier, input.Lookup, logger)
		entries := builder.Entries(input.Sheet.Rows)

		out := make([]classifiedRow, len(entries))
		for i, e := range entries {
			out[i] = classifiedRow{
				Row:      e.Row.Number,
				Title:    e.Row.Title(),
				Citation: e.Citation,
				Result:   e.Result,
			}
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("failed to encode classification: %w", err)
		}
		return enc.Close()
	},
}

func init() {
	classifyCmd.Flags().StringVar(&classifyWorkbook, "excel", "", "path to the review workbook (.xlsx)")
	classifyCmd.Flags().StringVar(&classifyLookup, "bibmap", "", "CSV with Title and BibKey columns")
	_ = classifyCmd.MarkFlagRequired("excel")

	rootCmd.AddCommand(classifyCmd)
}
