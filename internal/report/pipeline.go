// =============================================================================
// Survey Tables - Build Pipeline
// =============================================================================
//
// This module orchestrates one run of the tool.
//
// PIPELINE:
//   1. Resolve which reports to emit
//   2. Read the review worksheet from the workbook
//   3. Check the required columns (fatal, nothing is written on failure)
//   4. Load the citation lookup (optional, never fatal)
//   5. Load the classification rules
//   6. For each report: classify rows, render, write, print path and hash
//   7. Optionally write the run manifest
//
// Rows are processed in sheet order and the output is byte-for-byte
// reproducible for identical inputs.
//
// =============================================================================

package report

import (
	"fmt"
	"io"
	"time"

	"github.com/ginjaninja78/survey-tables/internal/citation"
	"github.com/ginjaninja78/survey-tables/internal/classify"
	"github.com/ginjaninja78/survey-tables/internal/config"
	"github.com/ginjaninja78/survey-tables/internal/types"
	"github.com/ginjaninja78/survey-tables/internal/validation"
	"github.com/ginjaninja78/survey-tables/internal/xlsxparser"
	"github.com/ginjaninja78/survey-tables/pkg/utils"
	"go.uber.org/zap"
)

// =============================================================================
// INPUT LOADING
// =============================================================================

// Input holds everything read before rendering.
type Input struct {
	Sheet      *xlsxparser.Sheet
	Lookup     *citation.Lookup
	Classifier *classify.Classifier
}

// LoadInput reads the workbook, checks its columns, and loads the lookup
// and the rule table.
//
// PARAMETERS:
//   - cfg: The resolved configuration.
//   - workbookPath: The review workbook.
//   - lookupPath: The optional title -> key CSV (may be empty).
//   - logger: The logger for soft problems.
//
// RETURNS:
//   - The loaded Input.
//   - A *validation.MissingColumnsError if required columns are absent, or
//     another error if the workbook or rules cannot be read.
func LoadInput(cfg *config.Config, workbookPath, lookupPath string, logger *zap.Logger) (*Input, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	sheet, err := xlsxparser.Parse(workbookPath, cfg.Sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}

	if err := validation.RequireColumns(sheet.Name, sheet.Headers, types.RequiredColumns); err != nil {
		return nil, err
	}

	logger.Info("loaded workbook",
		zap.String("path", workbookPath),
		zap.String("sheet", sheet.Name),
		zap.Int("rows", len(sheet.Rows)))

	rules, err := classify.LoadRuleSet(cfg.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}
	classifier, err := classify.New(rules)
	if err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}

	return &Input{
		Sheet:      sheet,
		Lookup:     citation.Load(lookupPath, cfg.Placeholder, logger),
		Classifier: classifier,
	}, nil
}

// =============================================================================
// RUN
// =============================================================================

// Options selects the inputs and outputs of a build.
type Options struct {
	// Workbook is the path to the review workbook. Required.
	Workbook string

	// Lookup is the path to the title -> key CSV. Optional.
	Lookup string

	// Emit is "table5", "table7" or "all".
	Emit string

	// OutDir is the output directory, created if absent. Required.
	OutDir string

	// Manifest writes the run manifest when true.
	Manifest bool
}

// Emitted is a rendered report together with the file it was written to.
type Emitted struct {
	Rendered
	Artifact utils.Artifact
}

// Result summarizes a build.
type Result struct {
	RunID        string
	Rows         int
	Reports      []Emitted
	ManifestPath string
}

// Run executes the build pipeline. Console lines for each artifact (and the
// evidence summary) are written to stdout.
func Run(cfg *config.Config, opts Options, stdout io.Writer, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	result := &Result{RunID: utils.NewRunID()}
	logger = logger.With(zap.String("run_id", result.RunID))

	specs, err := Select(opts.Emit)
	if err != nil {
		return nil, err
	}

	input, err := LoadInput(cfg, opts.Workbook, opts.Lookup, logger)
	if err != nil {
		return nil, err
	}
	result.Rows = len(input.Sheet.Rows)

	builder := NewBuilder(input.Classifier, input.Lookup, logger)
	fm := utils.NewFileManager(opts.OutDir)

	for _, spec := range specs {
		rendered := builder.Render(spec, input.Sheet.Rows)

		artifact, err := fm.WriteArtifact(OutputFile(cfg, spec.Name), rendered.Text)
		if err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", spec.Name, err)
		}

		fmt.Fprintf(stdout, "[emit] %s  sha256=%s\n", artifact.Path, artifact.ShortHash())
		if rendered.Counts != nil {
			fmt.Fprintf(stdout, "[summary] %s\n", rendered.Counts)
		}

		logger.Info("wrote report",
			zap.String("report", spec.Name),
			zap.String("path", artifact.Path),
			zap.String("sha256", artifact.SHA256))

		result.Reports = append(result.Reports, Emitted{Rendered: rendered, Artifact: artifact})
	}

	if opts.Manifest {
		path, err := fm.WriteManifest(cfg.ManifestFile, buildManifest(cfg, opts, input, result))
		if err != nil {
			return nil, fmt.Errorf("failed to write manifest: %w", err)
		}
		result.ManifestPath = path
		logger.Info("wrote manifest", zap.String("path", path))
	}

	return result, nil
}

// OutputFile returns the configured file name of a report.
func OutputFile(cfg *config.Config, name string) string {
	if name == Fidelity {
		return cfg.Outputs.Fidelity
	}
	return cfg.Outputs.Taxonomy
}

// buildManifest assembles the manifest of a finished run.
func buildManifest(cfg *config.Config, opts Options, input *Input, result *Result) utils.Manifest {
	m := utils.Manifest{
		RunID:       result.RunID,
		GeneratedAt: time.Now().UTC(),
		Workbook:    opts.Workbook,
		Sheet:       cfg.Sheet,
		Lookup:      opts.Lookup,
		LookupKeys:  input.Lookup.Len(),
		Rows:        result.Rows,
	}
	for _, e := range result.Reports {
		mr := utils.ManifestReport{Name: e.Name, Artifact: e.Artifact}
		if e.Counts != nil {
			mr.Counts = e.Counts.Map()
		}
		m.Reports = append(m.Reports, mr)
	}
	return m
}
