package tui

import (
	"fmt"
	"strings"

	"github.com/ripgtxgt/ton-audit-ai/internal/models"
)

// detailHeight is the fixed number of lines for the detail panel.
const detailHeight = 7

// renderDetail produces the detail view for a selected finding.
func renderDetail(f *models.Finding, width int) string {
	if f == nil {
		return styleDetailPanel.Width(width).Render("No finding selected")
	}

	var b strings.Builder

	sevStyled := severityStyle(f.Severity).Render(severityLabel(f.Severity))
	b.WriteString(fmt.Sprintf("%s  %s  %s\n", f.ID, sevStyled, f.Title))
	if f.Location != "" {
		b.WriteString(fmt.Sprintf("Location: %s\n", f.Location))
	}
	b.WriteString(f.Description)
	b.WriteString("\n")

	if f.Recommendation != "" {
		b.WriteString(fmt.Sprintf("Fix: %s\n", f.Recommendation))
	}
	if f.CodeSnippet != "" {
		b.WriteString(styleSnippet.Render(truncate(f.CodeSnippet, width-6)))
	}

	return styleDetailPanel.Width(width).Render(b.String())
}
