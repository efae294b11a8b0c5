package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/ripgtxgt/ton-audit-ai/internal/models"
)

var tableColumns = []table.Column{
	{Title: "ID", Width: 8},
	{Title: "Severity", Width: 14},
	{Title: "Category", Width: 16},
	{Title: "Title", Width: 44},
}

// buildRows converts audit findings to table rows.
func buildRows(findings []models.Finding) []table.Row {
	rows := make([]table.Row, 0, len(findings))
	for _, f := range findings {
		rows = append(rows, table.Row{
			f.ID,
			severityLabel(f.Severity),
			truncate(f.Category, tableColumns[2].Width),
			truncate(f.Title, tableColumns[3].Width),
		})
	}
	return rows
}

// severityLabel uppercases recognized levels and passes anything else
// through as the model wrote it.
func severityLabel(s string) string {
	switch s {
	case models.SeverityCritical, models.SeverityHigh,
		models.SeverityMedium, models.SeverityLow, models.SeverityInfo:
		return strings.ToUpper(s)
	default:
		return s
	}
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(s) <= maxLen {
		return s
	}
	const ellipsis = "..."
	if maxLen <= len(ellipsis) {
		return s[:maxLen]
	}
	return s[:maxLen-len(ellipsis)] + ellipsis
}

// newTable creates a bubbles table with standard columns and styling.
func newTable(rows []table.Row, height int) table.Model {
	t := table.New(
		table.WithColumns(tableColumns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(colorAccent).
		Bold(false)
	t.SetStyles(s)

	return t
}
