// =============================================================================
// Survey Tables - Attribute Classifiers
// =============================================================================
//
// This module applies the rule table to a row. Each axis concatenates its
// source fields into a lowercase blob and tests the ordered rules:
//
//   first mode: the first firing rule wins, even if a later rule would also
//               fire. Stages are exhausted in order before the default.
//   tags mode:  every firing rule contributes its label, in rule order.
//
// Classification is a pure function of the row text. It never fails; absent
// fields are treated as empty text.
//
// =============================================================================

package classify

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/survey-tables/internal/types"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result holds the labels assigned to one row.
type Result struct {
	RepresentationOperator string   `yaml:"representation_operator"`
	UpdateRegime           string   `yaml:"update_regime"`
	FidelityTarget         string   `yaml:"fidelity_target"`
	LearningParadigm       string   `yaml:"learning_paradigm"`
	StructuralTags         []string `yaml:"structural_evidence,flow"`
	SystemTags             []string `yaml:"system_evidence,flow"`
}

// Structural returns the structural evidence tags joined with ", ", or NR.
func (r Result) Structural() string {
	return JoinTags(r.StructuralTags)
}

// System returns the system evidence tags joined with ", ", or NR.
func (r Result) System() string {
	return JoinTags(r.SystemTags)
}

// HasStructural reports whether any structural evidence tag was found.
func (r Result) HasStructural() bool {
	return len(r.StructuralTags) > 0
}

// HasSystem reports whether any system evidence tag was found.
func (r Result) HasSystem() bool {
	return len(r.SystemTags) > 0
}

// JoinTags renders a tag set, using NR for the empty set.
func JoinTags(tags []string) string {
	if len(tags) == 0 {
		return NotReported
	}
	return strings.Join(tags, ", ")
}

// =============================================================================
// CLASSIFIER
// =============================================================================

// Classifier evaluates a validated rule table against rows.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	rules *RuleSet
}

// New creates a Classifier from a rule table, validating it first.
func New(rs *RuleSet) (*Classifier, error) {
	if rs == nil {
		return nil, fmt.Errorf("rule table is nil")
	}
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return &Classifier{rules: rs}, nil
}

// Default creates a Classifier backed by the embedded rule table.
func Default() *Classifier {
	return &Classifier{rules: DefaultRuleSet()}
}

// Rules returns the rule table the classifier evaluates.
func (c *Classifier) Rules() *RuleSet {
	return c.rules
}

// Classify assigns all six axes for a row.
func (c *Classifier) Classify(row types.Row) Result {
	return Result{
		RepresentationOperator: c.Label(AxisRepresentation, row),
		UpdateRegime:           c.Label(AxisUpdateRegime, row),
		FidelityTarget:         c.Label(AxisFidelity, row),
		LearningParadigm:       c.Label(AxisLearning, row),
		StructuralTags:         c.Tags(AxisStructural, row),
		SystemTags:             c.Tags(AxisSystem, row),
	}
}

// Label returns the first-match label of a ModeFirst axis.
// Unknown axes yield NR.
func (c *Classifier) Label(axis string, row types.Row) string {
	a := c.rules.Axis(axis)
	if a == nil {
		return NotReported
	}

	for _, stage := range a.Stages {
		blob := row.Blob(stage.Fields)
		for _, rule := range stage.Rules {
			if rule.matches(blob) {
				return rule.Label
			}
		}
	}
	return a.Default
}

// Tags returns the labels of every firing rule of an axis, in rule order.
// A label is reported once even if several stages or rules produce it.
func (c *Classifier) Tags(axis string, row types.Row) []string {
	a := c.rules.Axis(axis)
	if a == nil {
		return nil
	}

	var tags []string
	seen := make(map[string]bool)
	for _, stage := range a.Stages {
		blob := row.Blob(stage.Fields)
		for _, rule := range stage.Rules {
			if !seen[rule.Label] && rule.matches(blob) {
				seen[rule.Label] = true
				tags = append(tags, rule.Label)
			}
		}
	}
	return tags
}

// matches reports whether any keyword is a substring of the blob.
func (r Rule) matches(blob string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(blob, kw) {
			return true
		}
	}
	return false
}
