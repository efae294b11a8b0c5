// Package assemble maps a repaired payload into the canonical report
// model. Every operation is pure and total: missing or odd-shaped fields
// get defaults, never errors.
package assemble

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ripgtxgt/ton-audit-ai/internal/extract"
	"github.com/ripgtxgt/ton-audit-ai/internal/models"
)

const (
	// findingIDPrefix plus a zero-padded sequence number forms each
	// finding ID: TON-001, TON-002, ... in payload order.
	findingIDPrefix = "TON-"

	// defaultScore substitutes for an absent or non-numeric score.
	defaultScore = 50

	// snippetMaxLen caps code snippets to a single displayable line.
	snippetMaxLen = 120
)

// Input carries the trustworthy facts about the audited contract. These
// always win over anything the model claims.
type Input struct {
	Source   string
	Filename string
	Language models.Language
}

// Report builds an AuditReport from a repaired payload and the original
// input. ContractName, Language, LinesOfCode and AuditedAt come from the
// input alone so they stay correct even if the model hallucinates.
func Report(payload *extract.Payload, in Input) models.AuditReport {
	report := models.AuditReport{
		ContractName:      ContractName(in.Filename),
		Language:          in.Language,
		LinesOfCode:       CountLines(in.Source),
		AuditedAt:         time.Now(),
		OverallRisk:       defaultString(payload.OverallRisk, models.RiskMedium),
		Summary:           payload.Summary,
		Findings:          assembleFindings(payload.Findings),
		GasAnalysis:       payload.GasAnalysis,
		ArchitectureNotes: payload.ArchitectureNotes,
		Score:             clampScore(payload.Score),
	}
	return report
}

// assembleFindings assigns sequential IDs in payload order. Severity and
// category pass through as given; display layers map unknown severities
// to a muted style rather than rejecting the finding.
func assembleFindings(payloads []extract.FindingPayload) []models.Finding {
	findings := make([]models.Finding, 0, len(payloads))
	for i, p := range payloads {
		findings = append(findings, models.Finding{
			ID:             fmt.Sprintf("%s%03d", findingIDPrefix, i+1),
			Severity:       p.Severity,
			Category:       p.Category,
			Title:          p.Title,
			Description:    p.Description,
			Location:       p.Location,
			Recommendation: p.Recommendation,
			CodeSnippet:    normalizeSnippet(p.CodeSnippet),
		})
	}
	return findings
}

// normalizeSnippet flattens a snippet to one line of at most 120 chars.
func normalizeSnippet(snippet string) string {
	if snippet == "" {
		return ""
	}
	flat := strings.Join(strings.Fields(snippet), " ")
	if len(flat) > snippetMaxLen {
		flat = flat[:snippetMaxLen]
	}
	return flat
}

// clampScore interprets the untyped score value: numbers are truncated to
// integers and clamped into [0, 100]; anything else yields the default.
func clampScore(value any) int {
	num, ok := value.(float64)
	if !ok {
		return defaultScore
	}

	score := int(num)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ContractName derives the contract name from a filename by stripping the
// last extension. An empty filename maps to a fixed placeholder.
func ContractName(filename string) string {
	if filename == "" {
		return models.DefaultContractName
	}
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// CountLines counts non-blank lines of the input source. It is computed
// here, independently of the model's output.
func CountLines(source string) int {
	n := 0
	for _, line := range strings.Split(source, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
