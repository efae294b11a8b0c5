package reporter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ripgtxgt/ton-audit-ai/internal/models"
)

func TestJSONGenerate(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporter(&buf, false)

	if err := r.Generate(sampleReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded models.AuditReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.ContractName != "jetton-minter" {
		t.Errorf("expected contractName round-trip, got %s", decoded.ContractName)
	}
	if len(decoded.Findings) != 2 {
		t.Errorf("expected 2 findings, got %d", len(decoded.Findings))
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("expected trailing newline")
	}
}

func TestJSONPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONReporter(&buf, true).Generate(sampleReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"contractName\"") {
		t.Error("expected indented output")
	}
}

func TestJSONGenerateBatch(t *testing.T) {
	batch := &models.BatchReport{
		TotalContracts: 2,
		Reports:        []models.AuditReport{*sampleReport()},
		Comparison:     models.Comparison{MostVulnerable: "jetton-minter", Safest: "jetton-minter"},
	}

	var buf bytes.Buffer
	if err := NewJSONReporter(&buf, false).GenerateBatch(batch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded models.BatchReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.TotalContracts != 2 {
		t.Errorf("expected totalContracts=2, got %d", decoded.TotalContracts)
	}
}

func TestJSONSummaryOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONReporter(&buf, false).GenerateSummaryOnly(sampleReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var summary map[string]any
	if err := json.Unmarshal(buf.Bytes(), &summary); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if summary["findings"] != float64(2) {
		t.Errorf("expected findings count 2, got %v", summary["findings"])
	}
	if _, hasBodies := summary["gasAnalysis"]; hasBodies {
		t.Error("summary must omit finding and analysis bodies")
	}
}
