package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ripgtxgt/ton-audit-ai/internal/models"
)

func intPtr(n int) *int { return &n }

func TestNilPolicyPasses(t *testing.T) {
	var p *Policy
	result := p.Evaluate(&models.AuditReport{Score: 0})
	if !result.Pass {
		t.Error("nil policy must always pass")
	}
}

func TestMinScore(t *testing.T) {
	p := &Policy{Rules: Rules{MinScore: intPtr(60)}}

	if res := p.Evaluate(&models.AuditReport{Score: 75}); !res.Pass {
		t.Error("expected pass for score above minimum")
	}

	res := p.Evaluate(&models.AuditReport{Score: 42})
	if res.Pass {
		t.Fatal("expected violation for score below minimum")
	}
	if res.Violations[0].Rule != "min_score" {
		t.Errorf("expected min_score rule, got %s", res.Violations[0].Rule)
	}
}

func TestSeverityLimits(t *testing.T) {
	p := &Policy{Rules: Rules{MaxCritical: intPtr(0), MaxHigh: intPtr(1)}}

	report := &models.AuditReport{Findings: []models.Finding{
		{ID: "TON-001", Severity: models.SeverityCritical},
		{ID: "TON-002", Severity: models.SeverityHigh},
		{ID: "TON-003", Severity: models.SeverityHigh},
	}}

	res := p.Evaluate(report)
	if res.Pass {
		t.Fatal("expected violations")
	}
	if len(res.Violations) != 2 {
		t.Errorf("expected 2 violations, got %d", len(res.Violations))
	}
}

func TestForbidCategories(t *testing.T) {
	p := &Policy{Rules: Rules{ForbidCategories: []string{"Reentrancy"}}}

	report := &models.AuditReport{Findings: []models.Finding{
		{ID: "TON-001", Category: "Reentrancy"},
		{ID: "TON-002", Category: "Gas"},
	}}

	res := p.Evaluate(report)
	if res.Pass {
		t.Fatal("expected violation for forbidden category")
	}
	if len(res.Violations) != 1 {
		t.Errorf("expected 1 violation, got %d", len(res.Violations))
	}
}

func TestEvaluateBatchPrefixesContract(t *testing.T) {
	p := &Policy{Rules: Rules{MinScore: intPtr(50)}}

	batch := &models.BatchReport{Reports: []models.AuditReport{
		{ContractName: "good", Score: 80},
		{ContractName: "bad", Score: 20},
	}}

	res := p.EvaluateBatch(batch)
	if res.Pass {
		t.Fatal("expected violation")
	}
	if got := res.Violations[0].Message; got[:4] != "bad:" {
		t.Errorf("expected contract prefix, got %q", got)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".tonaudit-policy.yaml")
	content := `version: "1"
rules:
  min_score: 60
  max_critical: 0
  forbid_categories:
    - Reentrancy
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Rules.MinScore == nil || *p.Rules.MinScore != 60 {
		t.Error("expected min_score=60")
	}
	if len(p.Rules.ForbidCategories) != 1 {
		t.Error("expected one forbidden category")
	}
}

func TestLoadMissingFile(t *testing.T) {
	p, err := LoadFromFile("/nonexistent/.tonaudit-policy.yaml")
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if p != nil {
		t.Error("expected nil policy for missing file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("rules: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected error for invalid yaml")
	}
}
