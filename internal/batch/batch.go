// Package batch drives the audit pipeline over one or more contracts.
// Batch processing is strictly sequential: one model interaction must
// fully complete before the next begins, bounding concurrent load on the
// upstream endpoint to a single in-flight audit.
package batch

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ripgtxgt/ton-audit-ai/internal/assemble"
	"github.com/ripgtxgt/ton-audit-ai/internal/extract"
	"github.com/ripgtxgt/ton-audit-ai/internal/language"
	"github.com/ripgtxgt/ton-audit-ai/internal/models"
	"github.com/ripgtxgt/ton-audit-ai/internal/provider"
	"github.com/ripgtxgt/ton-audit-ai/internal/stream"
)

// rankingPlaceholder stands in for mostVulnerable/safest when the
// ranking is empty.
const rankingPlaceholder = "n/a"

// commonCategoryLimit caps the cross-contract category list.
const commonCategoryLimit = 5

// Contract is one (filename, source) pair to audit.
type Contract struct {
	Filename string
	Source   string
}

// ItemFailure records a per-contract failure within a batch. A failing
// contract contributes no report but does not abort the batch.
type ItemFailure struct {
	Filename string
	Err      error
}

// BatchExhaustedError means every contract in the batch failed. It is
// distinct from partial failure, which still yields a BatchReport.
type BatchExhaustedError struct {
	Attempts int
	Failures []ItemFailure
}

func (e *BatchExhaustedError) Error() string {
	return fmt.Sprintf("all %d contract(s) failed to audit", e.Attempts)
}

// Auditor runs the full single-contract pipeline: stream collection,
// payload extraction and repair, and report assembly.
type Auditor struct {
	provider provider.Provider
	observe  stream.Observer
}

// New creates an Auditor over the given provider. The observer may be
// nil; it receives each streamed fragment for progress display.
func New(p provider.Provider, observe stream.Observer) *Auditor {
	return &Auditor{provider: p, observe: observe}
}

// AuditOne audits a single contract end to end.
func (a *Auditor) AuditOne(ctx context.Context, c Contract) (models.AuditReport, error) {
	lang := language.Detect(c.Filename, c.Source)
	prompt := provider.AuditPrompt(c.Source, lang)

	s, err := a.provider.StartStream(ctx, prompt)
	if err != nil {
		return models.AuditReport{}, fmt.Errorf("start audit stream: %w", err)
	}
	defer func() { _ = s.Close() }()

	buffer, err := stream.Collect(s, a.observe)
	if err != nil {
		return models.AuditReport{}, err
	}

	payload, err := extract.Parse(buffer)
	if err != nil {
		return models.AuditReport{}, err
	}

	return assemble.Report(payload, assemble.Input{
		Source:   c.Source,
		Filename: c.Filename,
		Language: lang,
	}), nil
}

// Run audits each contract in input order, one at a time. Per-item
// failures are isolated and returned alongside the batch report;
// TotalContracts always reflects the attempt count so callers can detect
// the success/attempt gap. Only when every item fails does the batch
// operation itself fail.
func (a *Auditor) Run(ctx context.Context, contracts []Contract) (*models.BatchReport, []ItemFailure, error) {
	var reports []models.AuditReport
	var failures []ItemFailure

	for _, c := range contracts {
		report, err := a.AuditOne(ctx, c)
		if err != nil {
			failures = append(failures, ItemFailure{Filename: c.Filename, Err: err})
			continue
		}
		reports = append(reports, report)
	}

	if len(reports) == 0 {
		return nil, failures, &BatchExhaustedError{Attempts: len(contracts), Failures: failures}
	}

	batch := &models.BatchReport{
		AuditedAt:      time.Now(),
		TotalContracts: len(contracts),
		Reports:        reports,
		Comparison:     Compare(reports),
	}
	return batch, failures, nil
}

// Compare computes cross-contract ranking and statistics over the
// successful reports of a batch.
func Compare(reports []models.AuditReport) models.Comparison {
	ranking := make([]models.RankedSummary, 0, len(reports))
	totalFindings := 0
	criticalCount := 0
	highCount := 0

	for _, r := range reports {
		ranking = append(ranking, models.RankedSummary{
			ContractName: r.ContractName,
			Score:        r.Score,
			OverallRisk:  r.OverallRisk,
			FindingCount: len(r.Findings),
		})
		totalFindings += len(r.Findings)
		criticalCount += r.CountBySeverity(models.SeverityCritical)
		highCount += r.CountBySeverity(models.SeverityHigh)
	}

	// Ascending by score: most vulnerable first. Stable so equal scores
	// keep input order.
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Score < ranking[j].Score
	})

	comparison := models.Comparison{
		RiskRanking:      ranking,
		TotalFindings:    totalFindings,
		CriticalCount:    criticalCount,
		HighCount:        highCount,
		MostVulnerable:   rankingPlaceholder,
		Safest:           rankingPlaceholder,
		CommonCategories: commonCategories(reports),
	}
	if len(ranking) > 0 {
		comparison.MostVulnerable = ranking[0].ContractName
		comparison.Safest = ranking[len(ranking)-1].ContractName
	}
	return comparison
}

// commonCategories returns the top categories by frequency across all
// findings of all reports, ties broken by first-seen order.
func commonCategories(reports []models.AuditReport) []string {
	counts := make(map[string]int)
	var order []string

	for _, r := range reports {
		for _, f := range r.Findings {
			if f.Category == "" {
				continue
			}
			if _, seen := counts[f.Category]; !seen {
				order = append(order, f.Category)
			}
			counts[f.Category]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > commonCategoryLimit {
		order = order[:commonCategoryLimit]
	}
	return order
}
