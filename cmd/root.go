// =============================================================================
// Survey Tables - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (survey-tables)
//   ├── buildCmd    (survey-tables build)
//   ├── classifyCmd (survey-tables classify)
//   ├── rulesCmd    (survey-tables rules)
//   └── versionCmd  (survey-tables version)
//
// CONFIGURATION:
//   Values are resolved in this order (highest first):
//   1. Command-line flags
//   2. SURVEY_TABLES_* environment variables
//   3. The config file (--config, or ./survey-tables.yaml if present)
//   4. Built-in defaults
//
// OUTPUT CHANNELS:
//   Contract lines ([emit], [summary]) go to stdout. Structured logs go to
//   stderr. A missing-columns failure prints "[error] ..." to stderr and
//   exits with status 2; any other failure exits with status 1.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/survey-tables/internal/config"
	"github.com/ginjaninja78/survey-tables/internal/validation"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Exit codes.
const (
	exitFailure        = 1
	exitMissingColumns = 2
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to an explicit configuration file.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// cfg is the resolved configuration, available to every subcommand.
var cfg *config.Config

// logger is the structured logger, writing to stderr.
var logger = zap.NewNop()

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "survey-tables",
	Short: "Survey Tables - Generate LaTeX evidence tables from a literature review workbook",
	Long: `Survey Tables reads the summarization sheet of a literature-review workbook,
classifies every paper along the survey's taxonomy axes with keyword rules,
and writes two LaTeX longtable fragments ready to be \input into the paper.

Outputs:
  table5 - taxonomy map (representation, update regime, fidelity, learning,
           structural and system evidence flags)
  table7 - fidelity/system evidence with metric types

Example Usage:
  survey-tables build --excel review.xlsx --bibmap bibmap.csv --outdir tables
  survey-tables build --excel review.xlsx --emit table7 --outdir tables
  survey-tables classify --excel review.xlsx
  survey-tables rules > my-rules.yaml`,

	SilenceErrors: true,
	SilenceUsage:  true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}

		logger, err = newLogger(cfg.LogLevel, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug("using config file", zap.String("path", used))
		}
		return nil
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command and exits with the status matching the
// failure, if any. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(reportError(os.Stderr, err))
	}
}

// reportError prints a failure and returns its exit code.
func reportError(w io.Writer, err error) int {
	if validation.IsMissingColumns(err) {
		fmt.Fprintf(w, "[error] %v\n", err)
		return exitMissingColumns
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	return exitFailure
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./survey-tables.yaml if present)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.String("sheet", config.DefaultSheet, "worksheet holding the review rows")
	flags.String("rules", "", "keyword rule table (YAML); the built-in table is used when empty")
	flags.String("log-level", config.DefaultLogLevel, "log level: debug, info, warn or error")

	_ = viper.BindPFlag("sheet", flags.Lookup("sheet"))
	_ = viper.BindPFlag("rules_file", flags.Lookup("rules"))
	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))
}

// initConfig wires the config file and SURVEY_TABLES_* environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("survey-tables")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("SURVEY_TABLES")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	config.SetDefaults(viper.GetViper())
}

// loadConfig reads the config file, if any, and decodes the merged values.
// An explicit --config that cannot be read is an error; a missing default
// file is not.
func loadConfig() (*config.Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return config.Load(viper.GetViper())
}

// newLogger builds the stderr production logger at the configured level.
func newLogger(level string, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, err
		}
		zc.Level = lvl
	}
	return zc.Build()
}
