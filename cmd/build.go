// =============================================================================
// Survey Tables - Build Command
// =============================================================================
//
// This file defines the 'build' command, which generates the LaTeX tables.
//
// COMMAND USAGE:
//   survey-tables build --excel <workbook> --outdir <dir> [flags]
//
// FLAGS:
//   --excel       : Path to the review workbook (required)
//   --bibmap      : Title -> BibKey CSV (optional; titles without a key get a placeholder)
//   --emit        : table5, table7 or all (default all)
//   --outdir      : Output directory, created if absent (required)
//   --manifest    : Also write a YAML manifest of the run
//   --placeholder : Override the text used for titles without a key
//
// CONSOLE OUTPUT (stdout):
//   [emit] <path>  sha256=<first 12 hex chars>
//   [summary] structural=<s>/<n>  system=<y>/<n>     (table7 only)
//
// =============================================================================

package cmd

import (
	"github.com/ginjaninja78/survey-tables/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// buildOpts collects the flags of the build command.
var buildOpts report.Options

// =============================================================================
// BUILD COMMAND DEFINITION
// =============================================================================

// buildCmd represents the 'build' command.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the LaTeX longtable fragments",
	Long: `The build command reads the review worksheet, classifies each paper, resolves
its citation key and writes the requested longtable fragments to the output
directory.

Required columns are checked before anything is written. If any is missing
the command prints the list to stderr and exits with status 2.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("starting build",
			zap.String("excel", buildOpts.Workbook),
			zap.String("bibmap", buildOpts.Lookup),
			zap.String("emit", buildOpts.Emit),
			zap.String("outdir", buildOpts.OutDir))

		_, err := report.Run(cfg, buildOpts, cmd.OutOrStdout(), logger)
		return err
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	flags := buildCmd.Flags()
	flags.StringVar(&buildOpts.Workbook, "excel", "", "path to the review workbook (.xlsx)")
	flags.StringVar(&buildOpts.Lookup, "bibmap", "", "CSV with Title and BibKey columns")
	flags.StringVar(&buildOpts.Emit, "emit", report.All, "which table to write: table5, table7 or all")
	flags.StringVar(&buildOpts.OutDir, "outdir", "", "output directory")
	flags.BoolVar(&buildOpts.Manifest, "manifest", false, "also write a YAML manifest of the run")
	flags.String("placeholder", "", "text used for titles without a citation key")

	_ = buildCmd.MarkFlagRequired("excel")
	_ = buildCmd.MarkFlagRequired("outdir")
	_ = viper.BindPFlag("placeholder", flags.Lookup("placeholder"))

	rootCmd.AddCommand(buildCmd)
}
