package pdf

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ripgtxgt/ton-audit-ai/internal/models"
)

func sampleReport() *models.AuditReport {
	return &models.AuditReport{
		ContractName: "jetton-wallet",
		Language:     models.LanguageFunc,
		LinesOfCode:  240,
		AuditedAt:    time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		OverallRisk:  models.RiskHigh,
		Summary:      "The contract exposes several privileged operations without sender checks.",
		Score:        42,
		GasAnalysis:  "Storage fees dominate; cell packing could be tightened.",
		ArchitectureNotes: "Single-file monolith; consider separating jetton logic " +
			"from governance logic.",
		Findings: []models.Finding{
			{
				ID:             "TON-001",
				Severity:       models.SeverityHigh,
				Category:       "Access Control",
				Title:          "Missing sender check on burn",
				Description:    "Any sender may trigger burn.",
				Location:       "recv_internal, op 0x595f07bc",
				Recommendation: "Verify sender address equals owner.",
				CodeSnippet:    "if (op == op::burn) { ... }",
			},
		},
	}
}

func TestRenderProducesPDF(t *testing.T) {
	data, err := Render(sampleReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output does not start with a PDF header")
	}
	if len(data) < 1000 {
		t.Errorf("suspiciously small document: %d bytes", len(data))
	}
}

func TestRenderEmptyReport(t *testing.T) {
	// Rendering is total over any well-formed report, including one with
	// no findings and empty text fields.
	report := &models.AuditReport{
		ContractName: models.DefaultContractName,
		Language:     models.LanguageUnknown,
	}

	data, err := Render(report)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty document")
	}
}

func TestRenderUnknownSeverity(t *testing.T) {
	report := sampleReport()
	report.Findings[0].Severity = "sev-high"

	if _, err := Render(report); err != nil {
		t.Fatalf("unexpected error for unknown severity: %v", err)
	}
}

func TestEstimateCardHeightGrowsWithDescription(t *testing.T) {
	short := &models.Finding{
		Description:    strings.Repeat("a", 50),
		Recommendation: strings.Repeat("r", 50),
	}
	long := &models.Finding{
		Description:    strings.Repeat("a", 900),
		Recommendation: strings.Repeat("r", 50),
	}

	if estimateCardHeight(long) <= estimateCardHeight(short) {
		t.Error("longer description must estimate strictly taller card")
	}
}

func TestEstimateCardHeightSnippetAndLocation(t *testing.T) {
	base := &models.Finding{Description: "d", Recommendation: "r"}
	withSnippet := &models.Finding{Description: "d", Recommendation: "r", CodeSnippet: "x"}
	withLocation := &models.Finding{Description: "d", Recommendation: "r", Location: "l"}

	if estimateCardHeight(withSnippet) <= estimateCardHeight(base) {
		t.Error("snippet must add a fixed increment")
	}
	if estimateCardHeight(withLocation) <= estimateCardHeight(base) {
		t.Error("location line must add height")
	}
}

func TestEnsureRoomBreaksPage(t *testing.T) {
	d := newDoc()
	d.newPage()
	pagesBefore := d.pdf.PageCount()

	d.y = pageBottom - 10
	d.ensureRoom(100)

	if d.pdf.PageCount() != pagesBefore+1 {
		t.Errorf("expected page break, pages %d -> %d", pagesBefore, d.pdf.PageCount())
	}
	if d.y != pageTop {
		t.Errorf("expected cursor reset to %v, got %v", pageTop, d.y)
	}
}

func TestEnsureRoomKeepsPageWhenFits(t *testing.T) {
	d := newDoc()
	d.newPage()
	pagesBefore := d.pdf.PageCount()

	d.y = pageTop
	d.ensureRoom(100)

	if d.pdf.PageCount() != pagesBefore {
		t.Error("unexpected page break for fitting content")
	}
}

func TestManyFindingsPaginate(t *testing.T) {
	report := sampleReport()
	report.Findings = nil
	for i := 0; i < 30; i++ {
		report.Findings = append(report.Findings, models.Finding{
			ID:             "TON-001",
			Severity:       models.SeverityMedium,
			Category:       "Gas",
			Title:          "Finding",
			Description:    strings.Repeat("long description text ", 20),
			Recommendation: "fix it",
		})
	}

	d := newDoc()
	d.drawCover(report)
	d.drawFindings(report.Findings)

	// Cover + at least three findings pages for 30 sizable cards.
	if d.pdf.PageCount() < 4 {
		t.Errorf("expected pagination, got %d pages", d.pdf.PageCount())
	}
}

func TestRenderWorst(t *testing.T) {
	batch := &models.BatchReport{
		Reports: []models.AuditReport{
			{ContractName: "safe", Score: 90},
			{ContractName: "bad", Score: 15},
		},
	}

	data, err := RenderWorst(batch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty document")
	}
}

func TestRenderWorstEmptyBatch(t *testing.T) {
	if _, err := RenderWorst(&models.BatchReport{}); err == nil {
		t.Error("expected error for empty batch")
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  []string
	}{
		{"empty", "", 10, nil},
		{"single word", "hello", 10, []string{"hello"}},
		{"wraps at width", "aaa bbb ccc", 7, []string{"aaa bbb", "ccc"}},
		{"hard split long word", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"paragraphs", "one\ntwo", 10, []string{"one", "two"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapText(tt.in, tt.width)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("line %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestSeverityColorFallback(t *testing.T) {
	if severityColor("sev-high") != colorMuted {
		t.Error("unknown severity must map to the muted color")
	}
	if severityColor(models.SeverityCritical) == colorMuted {
		t.Error("known severity must have its own color")
	}
}
