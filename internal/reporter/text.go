package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/ripgtxgt/ton-audit-ai/internal/models"
)

// defaultWidth is used when the writer is not a terminal.
const defaultWidth = 72

// Severity styles shared with the TUI's color scheme.
var (
	styleCritical = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
	styleHigh     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8800")).Bold(true)
	styleMedium   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00"))
	styleLow      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	styleInfo     = lipgloss.NewStyle().Foreground(lipgloss.Color("#00AAFF"))
	styleMuted    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	styleHeading  = lipgloss.NewStyle().Bold(true)
)

// severityStyle returns the style for a severity; unknown values render
// muted rather than failing.
func severityStyle(severity string) lipgloss.Style {
	switch severity {
	case models.SeverityCritical:
		return styleCritical
	case models.SeverityHigh:
		return styleHigh
	case models.SeverityMedium:
		return styleMedium
	case models.SeverityLow:
		return styleLow
	case models.SeverityInfo:
		return styleInfo
	default:
		return styleMuted
	}
}

// TextReporter generates human-readable text reports.
type TextReporter struct {
	writer io.Writer
	width  int
}

// NewTextReporter creates a text reporter, sizing separators to the
// terminal when the writer is one.
func NewTextReporter(writer io.Writer) *TextReporter {
	width := defaultWidth
	if f, ok := writer.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 20 {
			width = w
		}
	}
	return &TextReporter{writer: writer, width: width}
}

// Generate creates a text report for a single audit.
func (r *TextReporter) Generate(report *models.AuditReport) error {
	r.printHeader("TON Security Audit")

	r.printf("Contract:  %s\n", report.ContractName)
	r.printf("Language:  %s\n", strings.ToUpper(string(report.Language)))
	r.printf("Lines:     %d\n", report.LinesOfCode)
	r.printf("Audited:   %s\n\n", report.AuditedAt.Format(time.RFC1123))

	riskLabel := severityStyle(report.OverallRisk).Render(strings.ToUpper(report.OverallRisk))
	r.printf("Overall Risk: %s    Score: %d/100\n\n", riskLabel, report.Score)

	if report.Summary != "" {
		r.printf("%s\n%s\n\n", styleHeading.Render("Summary"), report.Summary)
	}

	r.printSeverityBreakdown(report)
	r.printFindings(report.Findings)

	if report.GasAnalysis != "" {
		r.printf("%s\n%s\n\n", styleHeading.Render("Gas Analysis"), report.GasAnalysis)
	}
	if report.ArchitectureNotes != "" {
		r.printf("%s\n%s\n\n", styleHeading.Render("Architecture Notes"), report.ArchitectureNotes)
	}

	return nil
}

// GenerateBatch creates a text report for a batch with comparison stats.
func (r *TextReporter) GenerateBatch(batch *models.BatchReport) error {
	r.printHeader("TON Security Audit - Batch")

	r.printf("Contracts audited: %d/%d\n", len(batch.Reports), batch.TotalContracts)
	r.printf("Audited:           %s\n\n", batch.AuditedAt.Format(time.RFC1123))

	c := batch.Comparison
	r.printf("%s\n", styleHeading.Render("Risk Ranking (most vulnerable first)"))
	for i, entry := range c.RiskRanking {
		riskLabel := severityStyle(entry.OverallRisk).Render(strings.ToUpper(entry.OverallRisk))
		r.printf("  %d. %-24s score %3d  %s  (%d findings)\n",
			i+1, entry.ContractName, entry.Score, riskLabel, entry.FindingCount)
	}
	r.printf("\n")

	r.printf("Total findings: %d (%s %d, %s %d)\n",
		c.TotalFindings,
		styleCritical.Render("critical"), c.CriticalCount,
		styleHigh.Render("high"), c.HighCount)
	r.printf("Most vulnerable: %s\n", c.MostVulnerable)
	r.printf("Safest:          %s\n", c.Safest)

	if len(c.CommonCategories) > 0 {
		r.printf("Common issues:   %s\n", strings.Join(c.CommonCategories, ", "))
	}
	r.printf("\n")

	for i := range batch.Reports {
		report := &batch.Reports[i]
		r.printSeparator()
		r.printf("%s (score %d)\n\n", styleHeading.Render(report.ContractName), report.Score)
		r.printFindings(report.Findings)
	}

	return nil
}

func (r *TextReporter) printSeverityBreakdown(report *models.AuditReport) {
	counts := report.SeverityCounts()
	parts := make([]string, 0, 5)
	for _, sev := range models.Severities() {
		label := fmt.Sprintf("%s:%d", strings.ToUpper(sev), counts[sev])
		parts = append(parts, severityStyle(sev).Render(label))
	}
	r.printf("%s\n\n", strings.Join(parts, "  "))
}

func (r *TextReporter) printFindings(findings []models.Finding) {
	if len(findings) == 0 {
		r.printf("%s\n\n", styleMuted.Render("No findings reported."))
		return
	}

	for _, f := range findings {
		sevLabel := severityStyle(f.Severity).Render(fmt.Sprintf("[%s]", strings.ToUpper(f.Severity)))
		r.printf("%s %s %s: %s\n", f.ID, sevLabel, f.Category, f.Title)
		if f.Location != "" {
			r.printf("  Location: %s\n", f.Location)
		}
		r.printf("  %s\n", f.Description)
		if f.CodeSnippet != "" {
			r.printf("  > %s\n", f.CodeSnippet)
		}
		r.printf("  Fix: %s\n\n", f.Recommendation)
	}
}

func (r *TextReporter) printHeader(title string) {
	r.printSeparator()
	r.printf("%s\n", styleHeading.Render(title))
	r.printSeparator()
	r.printf("\n")
}

func (r *TextReporter) printSeparator() {
	r.printf("%s\n", strings.Repeat("-", r.width))
}

func (r *TextReporter) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.writer, format, args...)
}
