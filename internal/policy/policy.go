package policy

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ripgtxgt/ton-audit-ai/internal/models"
)

// Policy defines enforcement rules for audit results, used for CI gating.
type Policy struct {
	Version string `yaml:"version"`
	Rules   Rules  `yaml:"rules"`
}

// Rules contains all configurable policy rules.
type Rules struct {
	MinScore         *int     `yaml:"min_score,omitempty"`
	MaxCritical      *int     `yaml:"max_critical,omitempty"`
	MaxHigh          *int     `yaml:"max_high,omitempty"`
	MaxFindings      *int     `yaml:"max_findings,omitempty"`
	ForbidCategories []string `yaml:"forbid_categories,omitempty"`
}

// Violation is a single policy failure.
type Violation struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Result holds the outcome of a policy check.
type Result struct {
	Pass       bool        `json:"pass"`
	Violations []Violation `json:"violations"`
}

// LoadFromFile reads a policy file. A missing file is not an error: it
// returns a nil policy, which always passes.
func LoadFromFile(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read policy: %w", err)
	}

	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse policy: %w", err)
	}

	return &p, nil
}

// FindPolicyFile searches for a policy file in the current directory
// and parent directories up to the filesystem root.
func FindPolicyFile() string {
	names := []string{".tonaudit-policy.yaml", ".tonaudit-policy.yml"}

	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range names {
			path := dir + "/" + name
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		parent := dir[:strings.LastIndex(dir, "/")]
		if parent == dir || parent == "" {
			break
		}
		dir = parent
	}

	return ""
}

// Evaluate checks an audit report against the policy rules.
func (p *Policy) Evaluate(report *models.AuditReport) *Result {
	if p == nil {
		return &Result{Pass: true}
	}

	var violations []Violation

	// min_score
	if p.Rules.MinScore != nil {
		if report.Score < *p.Rules.MinScore {
			violations = append(violations, Violation{
				Rule:    "min_score",
				Message: fmt.Sprintf("score %d below minimum %d", report.Score, *p.Rules.MinScore),
			})
		}
	}

	// max_critical
	if p.Rules.MaxCritical != nil {
		count := report.CountBySeverity(models.SeverityCritical)
		if count > *p.Rules.MaxCritical {
			violations = append(violations, Violation{
				Rule:    "max_critical",
				Message: fmt.Sprintf("critical findings %d exceeds limit %d", count, *p.Rules.MaxCritical),
			})
		}
	}

	// max_high
	if p.Rules.MaxHigh != nil {
		count := report.CountBySeverity(models.SeverityHigh)
		if count > *p.Rules.MaxHigh {
			violations = append(violations, Violation{
				Rule:    "max_high",
				Message: fmt.Sprintf("high findings %d exceeds limit %d", count, *p.Rules.MaxHigh),
			})
		}
	}

	// max_findings
	if p.Rules.MaxFindings != nil {
		if len(report.Findings) > *p.Rules.MaxFindings {
			violations = append(violations, Violation{
				Rule:    "max_findings",
				Message: fmt.Sprintf("total findings %d exceeds limit %d", len(report.Findings), *p.Rules.MaxFindings),
			})
		}
	}

	// forbid_categories
	if len(p.Rules.ForbidCategories) > 0 {
		forbidden := make(map[string]bool, len(p.Rules.ForbidCategories))
		for _, c := range p.Rules.ForbidCategories {
			forbidden[c] = true
		}
		for _, f := range report.Findings {
			if forbidden[f.Category] {
				violations = append(violations, Violation{
					Rule:    "forbid_categories",
					Message: fmt.Sprintf("forbidden category %q in finding %s", f.Category, f.ID),
				})
			}
		}
	}

	return &Result{
		Pass:       len(violations) == 0,
		Violations: violations,
	}
}

// EvaluateBatch applies the policy to every report of a batch and merges
// the violations, prefixing each with its contract name.
func (p *Policy) EvaluateBatch(batch *models.BatchReport) *Result {
	if p == nil {
		return &Result{Pass: true}
	}

	var violations []Violation
	for i := range batch.Reports {
		r := &batch.Reports[i]
		res := p.Evaluate(r)
		for _, v := range res.Violations {
			violations = append(violations, Violation{
				Rule:    v.Rule,
				Message: r.ContractName + ": " + v.Message,
			})
		}
	}

	return &Result{
		Pass:       len(violations) == 0,
		Violations: violations,
	}
}
