// =============================================================================
// Survey Tables - Classification Rule Table
// =============================================================================
//
// This module defines the declarative keyword rules used to classify each
// surveyed publication along the taxonomy axes. The built-in table is
// embedded from rules.yaml; a replacement table with the same layout can be
// supplied at run time.
//
// RULE TABLE STRUCTURE:
//   axes:
//     - name: update_regime
//       mode: first            # or "tags"
//       default: NR            # first mode only
//       stages:
//         - fields: [Evaluation process, Title]
//           rules:
//             - label: Streaming
//               keywords: [stream, online]
//
// =============================================================================

package classify

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

// =============================================================================
// AXIS NAMES AND MODES
// =============================================================================

// Axis names of the built-in table. A replacement table must define all of them.
const (
	AxisRepresentation = "representation_operator"
	AxisUpdateRegime   = "update_regime"
	AxisFidelity       = "fidelity_target"
	AxisLearning       = "learning_paradigm"
	AxisStructural     = "structural_evidence"
	AxisSystem         = "system_evidence"
)

// RequiredAxes lists the axes every rule table must define, with the mode
// each must use.
var RequiredAxes = map[string]string{
	AxisRepresentation: ModeFirst,
	AxisUpdateRegime:   ModeFirst,
	AxisFidelity:       ModeFirst,
	AxisLearning:       ModeFirst,
	AxisStructural:     ModeTags,
	AxisSystem:         ModeTags,
}

const (
	// ModeFirst returns the label of the first firing rule.
	ModeFirst = "first"

	// ModeTags returns the labels of all firing rules.
	ModeTags = "tags"
)

// NotReported is the sentinel for an empty tag set and the default of axes
// with no better fallback.
const NotReported = "NR"

// =============================================================================
// RULE TABLE STRUCTURES
// =============================================================================

// RuleSet is the complete rule table.
type RuleSet struct {
	Axes []Axis `yaml:"axes"`
}

// Axis is one classification dimension.
type Axis struct {
	// Name identifies the axis, e.g. "update_regime".
	Name string `yaml:"name"`

	// Mode is ModeFirst or ModeTags.
	Mode string `yaml:"mode"`

	// Default is returned by a ModeFirst axis when no rule fires.
	Default string `yaml:"default,omitempty"`

	// Stages are evaluated in order. Each stage builds its own blob.
	Stages []Stage `yaml:"stages"`
}

// Stage pairs a set of source fields with the ordered rules tested against them.
type Stage struct {
	Fields []string `yaml:"fields"`
	Rules  []Rule   `yaml:"rules"`
}

// Rule fires when any keyword is a substring of the blob.
type Rule struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords,flow"`
}

// =============================================================================
// LOADING
// =============================================================================

// DefaultRuleSet returns the embedded rule table.
func DefaultRuleSet() *RuleSet {
	rs, err := ParseRuleSet(defaultRules)
	if err != nil {
		// The embedded table is covered by tests; failing here is a build defect.
		panic(fmt.Sprintf("embedded rule table is invalid: %v", err))
	}
	return rs
}

// LoadRuleSet reads a rule table from a YAML file. An empty path returns
// the embedded table.
func LoadRuleSet(path string) (*RuleSet, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultRuleSet(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	rs, err := ParseRuleSet(data)
	if err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}
	return rs, nil
}

// ParseRuleSet decodes and validates a YAML rule table.
func ParseRuleSet(data []byte) (*RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}

	for i := range rs.Axes {
		normalizeAxis(&rs.Axes[i])
	}

	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return &rs, nil
}

// normalizeAxis lowercases keywords so matching against the lowercase blob
// works for hand-edited tables too.
func normalizeAxis(a *Axis) {
	a.Name = strings.TrimSpace(a.Name)
	a.Mode = strings.ToLower(strings.TrimSpace(a.Mode))
	for s := range a.Stages {
		for r := range a.Stages[s].Rules {
			rule := &a.Stages[s].Rules[r]
			for k, kw := range rule.Keywords {
				rule.Keywords[k] = strings.ToLower(kw)
			}
		}
	}
}

// Marshal encodes the rule table as YAML.
func (rs *RuleSet) Marshal() ([]byte, error) {
	return yaml.Marshal(rs)
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the rule table for structural problems.
func (rs *RuleSet) Validate() error {
	seen := make(map[string]bool)

	for i, a := range rs.Axes {
		if a.Name == "" {
			return fmt.Errorf("axis %d has no name", i+1)
		}
		if seen[a.Name] {
			return fmt.Errorf("axis %q is defined twice", a.Name)
		}
		seen[a.Name] = true

		switch a.Mode {
		case ModeFirst:
			if strings.TrimSpace(a.Default) == "" {
				return fmt.Errorf("axis %q: mode %q needs a default label", a.Name, ModeFirst)
			}
		case ModeTags:
		default:
			return fmt.Errorf("axis %q: unknown mode %q", a.Name, a.Mode)
		}

		if len(a.Stages) == 0 {
			return fmt.Errorf("axis %q has no stages", a.Name)
		}

		for s, stage := range a.Stages {
			if len(stage.Fields) == 0 {
				return fmt.Errorf("axis %q stage %d has no fields", a.Name, s+1)
			}
			for r, rule := range stage.Rules {
				if strings.TrimSpace(rule.Label) == "" {
					return fmt.Errorf("axis %q stage %d rule %d has no label", a.Name, s+1, r+1)
				}
				if len(rule.Keywords) == 0 {
					return fmt.Errorf("axis %q rule %q has no keywords", a.Name, rule.Label)
				}
				for _, kw := range rule.Keywords {
					if kw == "" {
						return fmt.Errorf("axis %q rule %q has an empty keyword", a.Name, rule.Label)
					}
				}
			}
		}
	}

	for name, mode := range RequiredAxes {
		a := rs.Axis(name)
		if a == nil {
			return fmt.Errorf("required axis %q is missing", name)
		}
		if a.Mode != mode {
			return fmt.Errorf("axis %q must use mode %q, got %q", name, mode, a.Mode)
		}
	}

	return nil
}

// Axis returns the named axis, or nil if the table does not define it.
func (rs *RuleSet) Axis(name string) *Axis {
	for i := range rs.Axes {
		if rs.Axes[i].Name == name {
			return &rs.Axes[i]
		}
	}
	return nil
}

// Labels returns every value the axis can produce for a single tag or label,
// in first-seen order. Tag axes include NotReported.
func (a *Axis) Labels() []string {
	var labels []string
	seen := make(map[string]bool)
	add := func(l string) {
		if !seen[l] {
			seen[l] = true
			labels = append(labels, l)
		}
	}

	for _, stage := range a.Stages {
		for _, rule := range stage.Rules {
			add(rule.Label)
		}
	}
	if a.Mode == ModeFirst {
		add(a.Default)
	} else {
		add(NotReported)
	}
	return labels
}
