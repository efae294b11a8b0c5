package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/ripgtxgt/ton-audit-ai/internal/models"
	"github.com/ripgtxgt/ton-audit-ai/internal/provider"
)

// fakeProvider replays one scripted response per StartStream call, in
// order. A response of "FAIL" aborts that stream mid-flight.
type fakeProvider struct {
	responses []string
	calls     int
	inFlight  int
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) StartStream(_ context.Context, _ string) (provider.Stream, error) {
	if p.inFlight != 0 {
		panic("concurrent model interactions within one batch")
	}
	if p.calls >= len(p.responses) {
		return nil, fmt.Errorf("unexpected call %d", p.calls)
	}
	resp := p.responses[p.calls]
	p.calls++
	p.inFlight++
	return &fakeStream{text: resp, owner: p}, nil
}

type fakeStream struct {
	text  string
	sent  bool
	owner *fakeProvider
}

func (s *fakeStream) Recv() (string, error) {
	if s.text == "FAIL" {
		return "", errors.New("upstream reset")
	}
	if s.sent {
		return "", io.EOF
	}
	s.sent = true
	return s.text, nil
}

func (s *fakeStream) Close() error {
	s.owner.inFlight--
	return nil
}

func payloadWith(score int, categories ...string) string {
	findings := ""
	for i, c := range categories {
		if i > 0 {
			findings += ","
		}
		findings += fmt.Sprintf(`{"severity":"high","category":"%s","title":"t","description":"d","recommendation":"r"}`, c)
	}
	return fmt.Sprintf(`{"overallRisk":"high","score":%d,"summary":"s","findings":[%s]}`, score, findings)
}

func TestAuditOne(t *testing.T) {
	p := &fakeProvider{responses: []string{
		"analysis follows " + payloadWith(42, "Access Control"),
	}}

	var fragments int
	auditor := New(p, func(string) { fragments++ })

	report, err := auditor.AuditOne(context.Background(), Contract{
		Filename: "wallet.fc",
		Source:   ";; hi\n() recv_internal() impure {}\n",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.ContractName != "wallet" {
		t.Errorf("expected contractName=wallet, got %s", report.ContractName)
	}
	if report.Language != models.LanguageFunc {
		t.Errorf("expected language=func, got %s", report.Language)
	}
	if report.Score != 42 {
		t.Errorf("expected score=42, got %d", report.Score)
	}
	if report.Findings[0].ID != "TON-001" {
		t.Errorf("expected TON-001, got %s", report.Findings[0].ID)
	}
	if fragments == 0 {
		t.Error("expected progress observer to fire")
	}
}

func TestRunPartialFailure(t *testing.T) {
	// Item 2 of 3 fails extraction; the batch still succeeds with 2
	// reports and totalContracts=3.
	p := &fakeProvider{responses: []string{
		payloadWith(70),
		"no json here at all",
		payloadWith(30),
	}}
	auditor := New(p, nil)

	contracts := []Contract{
		{Filename: "a.fc", Source: "a"},
		{Filename: "b.fc", Source: "b"},
		{Filename: "c.fc", Source: "c"},
	}

	batch, failures, err := auditor.Run(context.Background(), contracts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batch.Reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(batch.Reports))
	}
	if batch.TotalContracts != 3 {
		t.Errorf("expected totalContracts=3, got %d", batch.TotalContracts)
	}
	if len(failures) != 1 || failures[0].Filename != "b.fc" {
		t.Errorf("expected one failure for b.fc, got %v", failures)
	}
	// Reports stay in input order, independent of score.
	if batch.Reports[0].ContractName != "a" || batch.Reports[1].ContractName != "c" {
		t.Errorf("reports out of input order: %v", batch.Reports)
	}
}

func TestRunAllFail(t *testing.T) {
	p := &fakeProvider{responses: []string{"FAIL", "no json"}}
	auditor := New(p, nil)

	_, failures, err := auditor.Run(context.Background(), []Contract{
		{Filename: "a.fc"}, {Filename: "b.fc"},
	})

	var exhausted *BatchExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected BatchExhaustedError, got %v", err)
	}
	if exhausted.Attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", exhausted.Attempts)
	}
	if len(failures) != 2 {
		t.Errorf("expected 2 recorded failures, got %d", len(failures))
	}
}

func TestRunSequential(t *testing.T) {
	// The fake provider panics if a second stream starts before the
	// first closes.
	p := &fakeProvider{responses: []string{
		payloadWith(10), payloadWith(20), payloadWith(30),
	}}
	auditor := New(p, nil)

	_, _, err := auditor.Run(context.Background(), []Contract{
		{Filename: "a.fc"}, {Filename: "b.fc"}, {Filename: "c.fc"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCompareRanking(t *testing.T) {
	reports := []models.AuditReport{
		{ContractName: "mid", Score: 55},
		{ContractName: "safe", Score: 90},
		{ContractName: "bad", Score: 12},
	}

	c := Compare(reports)

	wantOrder := []string{"bad", "mid", "safe"}
	for i, name := range wantOrder {
		if c.RiskRanking[i].ContractName != name {
			t.Errorf("rank %d: expected %s, got %s", i, name, c.RiskRanking[i].ContractName)
		}
	}
	if c.MostVulnerable != "bad" {
		t.Errorf("expected mostVulnerable=bad, got %s", c.MostVulnerable)
	}
	if c.Safest != "safe" {
		t.Errorf("expected safest=safe, got %s", c.Safest)
	}
}

func TestCompareCounts(t *testing.T) {
	reports := []models.AuditReport{
		{ContractName: "a", Findings: []models.Finding{
			{Severity: models.SeverityCritical, Category: "Reentrancy"},
			{Severity: models.SeverityHigh, Category: "Access Control"},
		}},
		{ContractName: "b", Findings: []models.Finding{
			{Severity: models.SeverityHigh, Category: "Access Control"},
		}},
	}

	c := Compare(reports)

	if c.TotalFindings != 3 {
		t.Errorf("expected 3 findings, got %d", c.TotalFindings)
	}
	if c.CriticalCount != 1 {
		t.Errorf("expected 1 critical, got %d", c.CriticalCount)
	}
	if c.HighCount != 2 {
		t.Errorf("expected 2 high, got %d", c.HighCount)
	}
}

func TestCompareCommonCategories(t *testing.T) {
	mk := func(cats ...string) models.AuditReport {
		var fs []models.Finding
		for _, c := range cats {
			fs = append(fs, models.Finding{Category: c})
		}
		return models.AuditReport{Findings: fs}
	}

	reports := []models.AuditReport{
		mk("A", "B", "C", "D", "E", "F"),
		mk("B", "C", "B"),
		mk("C"),
	}

	c := Compare(reports)

	// B and C both occur 3 times; the tie breaks toward first-seen
	// order (B before C). The 1-count tail keeps first-seen order too.
	want := []string{"B", "C", "A", "D", "E"}
	if len(c.CommonCategories) != 5 {
		t.Fatalf("expected 5 categories, got %d", len(c.CommonCategories))
	}
	for i, cat := range want {
		if c.CommonCategories[i] != cat {
			t.Errorf("category %d: expected %s, got %s", i, cat, c.CommonCategories[i])
		}
	}
}

func TestCompareEmpty(t *testing.T) {
	c := Compare(nil)
	if c.MostVulnerable != "n/a" || c.Safest != "n/a" {
		t.Errorf("expected placeholders, got %s / %s", c.MostVulnerable, c.Safest)
	}
	if len(c.RiskRanking) != 0 {
		t.Errorf("expected empty ranking")
	}
}
