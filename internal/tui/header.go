package tui

import (
	"fmt"
	"strings"

	"github.com/ripgtxgt/ton-audit-ai/internal/models"
)

// headerHeight is the number of terminal lines the header occupies.
const headerHeight = 5

// renderHeader produces the header string from the audit report.
func renderHeader(report *models.AuditReport, width int) string {
	var b strings.Builder

	// Line 1: contract, risk and score
	riskText := riskStyle(report.OverallRisk).Render(
		fmt.Sprintf("%s (%d/100)", strings.ToUpper(report.OverallRisk), report.Score),
	)
	b.WriteString(fmt.Sprintf("TON Audit  %s  Risk: %s", report.ContractName, riskText))
	b.WriteString("\n")

	// Line 2: input metadata
	b.WriteString(fmt.Sprintf("Language: %s  Lines: %d  Audited: %s",
		report.Language, report.LinesOfCode, report.AuditedAt.Format("2006-01-02 15:04")))
	b.WriteString("\n")

	// Line 3: severity breakdown
	sevParts := make([]string, 0, 5)
	for _, sev := range models.Severities() {
		if count := report.CountBySeverity(sev); count > 0 {
			label := fmt.Sprintf("%s:%d", strings.ToUpper(sev[:1]), count)
			sevParts = append(sevParts, severityStyle(sev).Render(label))
		}
	}
	if len(sevParts) > 0 {
		b.WriteString(strings.Join(sevParts, "  "))
	} else {
		b.WriteString("No findings")
	}

	return styleHeader.Width(width).Render(b.String())
}
