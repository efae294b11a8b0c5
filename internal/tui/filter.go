package tui

import (
	"sort"
	"strings"

	"github.com/ripgtxgt/ton-audit-ai/internal/models"
)

// filterState holds current active filters.
type filterState struct {
	Severity   string
	SearchText string
}

// sortField enumerates columns that can be sorted.
type sortField int

const (
	sortBySeverity sortField = iota
	sortByID
	sortByCategory
	sortByTitle
)

// sortFieldCount is the total number of sortable columns.
const sortFieldCount = 4

// applyFilters returns findings matching all active filters.
func applyFilters(findings []models.Finding, f filterState) []models.Finding {
	result := make([]models.Finding, 0, len(findings))
	searchLower := strings.ToLower(f.SearchText)

	for _, finding := range findings {
		if f.Severity != "" && finding.Severity != f.Severity {
			continue
		}
		if searchLower != "" && !matchesSearch(finding, searchLower) {
			continue
		}
		result = append(result, finding)
	}
	return result
}

func matchesSearch(f models.Finding, searchLower string) bool {
	return strings.Contains(strings.ToLower(f.ID), searchLower) ||
		strings.Contains(strings.ToLower(f.Severity), searchLower) ||
		strings.Contains(strings.ToLower(f.Category), searchLower) ||
		strings.Contains(strings.ToLower(f.Title), searchLower) ||
		strings.Contains(strings.ToLower(f.Description), searchLower) ||
		strings.Contains(strings.ToLower(f.Location), searchLower)
}

// sortFindings sorts a slice of findings in place by the given field.
// ID order doubles as assembly order, so sortByID restores the order
// the findings arrived in.
func sortFindings(findings []models.Finding, field sortField) {
	sort.SliceStable(findings, func(i, j int) bool {
		switch field {
		case sortBySeverity:
			return models.SeverityRank(findings[i].Severity) < models.SeverityRank(findings[j].Severity)
		case sortByID:
			return findings[i].ID < findings[j].ID
		case sortByCategory:
			return findings[i].Category < findings[j].Category
		case sortByTitle:
			return findings[i].Title < findings[j].Title
		default:
			return false
		}
	})
}

// uniqueSeverities returns deduplicated severities present in the
// findings, known levels first in rank order, free-form ones after.
func uniqueSeverities(findings []models.Finding) []string {
	seen := make(map[string]bool)
	var severities []string
	for _, f := range findings {
		if !seen[f.Severity] {
			seen[f.Severity] = true
			severities = append(severities, f.Severity)
		}
	}
	sort.SliceStable(severities, func(i, j int) bool {
		ri, rj := models.SeverityRank(severities[i]), models.SeverityRank(severities[j])
		if ri != rj {
			return ri < rj
		}
		return severities[i] < severities[j]
	})
	return severities
}

// sortFieldName returns a human-readable name for the sort field.
func sortFieldName(f sortField) string {
	switch f {
	case sortBySeverity:
		return "severity"
	case sortByID:
		return "id"
	case sortByCategory:
		return "category"
	case sortByTitle:
		return "title"
	default:
		return "unknown"
	}
}
