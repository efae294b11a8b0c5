package models

import "time"

// Severity levels as emitted by the model for individual findings.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
	SeverityInfo     = "info"
)

// Risk levels for the overall contract assessment.
const (
	RiskCritical = "critical"
	RiskHigh     = "high"
	RiskMedium   = "medium"
	RiskLow      = "low"
	RiskClean    = "clean"
)

// Language classifies the audited contract source.
type Language string

const (
	LanguageFunc    Language = "func"
	LanguageTact    Language = "tact"
	LanguageUnknown Language = "unknown"
)

// DefaultContractName is used when no filename accompanies the source.
const DefaultContractName = "contract"

// severityOrder ranks severities for display, most urgent first.
var severityOrder = map[string]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityMedium:   2,
	SeverityLow:      3,
	SeverityInfo:     4,
}

// SeverityRank returns the display rank of a severity, most urgent first.
// Unrecognized severities rank after info so they sort last but are kept.
func SeverityRank(severity string) int {
	if rank, ok := severityOrder[severity]; ok {
		return rank
	}
	return len(severityOrder)
}

// Severities lists all known severities in display order.
func Severities() []string {
	return []string{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo}
}

// RiskFromScore maps a 0-100 score to a risk level using the same
// thresholds the renderer uses for badge colors.
func RiskFromScore(score int) string {
	switch {
	case score >= 80:
		return RiskLow
	case score >= 60:
		return RiskMedium
	case score >= 40:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// Finding is one discrete issue reported for an audited contract.
// The ID is assigned during assembly, never by the model.
type Finding struct {
	ID             string `json:"id"`
	Severity       string `json:"severity"`
	Category       string `json:"category"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Location       string `json:"location,omitempty"`
	Recommendation string `json:"recommendation"`
	CodeSnippet    string `json:"codeSnippet,omitempty"`
}

// AuditReport is the canonical result of auditing a single contract.
// ContractName, Language, LinesOfCode and AuditedAt are derived from the
// input, never from the model's output.
type AuditReport struct {
	ContractName      string    `json:"contractName"`
	Language          Language  `json:"language"`
	LinesOfCode       int       `json:"linesOfCode"`
	AuditedAt         time.Time `json:"auditedAt"`
	OverallRisk       string    `json:"overallRisk"`
	Summary           string    `json:"summary"`
	Findings          []Finding `json:"findings"`
	GasAnalysis       string    `json:"gasAnalysis"`
	ArchitectureNotes string    `json:"architectureNotes"`
	Score             int       `json:"score"`
}

// SeverityCounts tallies findings by severity for all known levels.
func (r *AuditReport) SeverityCounts() map[string]int {
	counts := make(map[string]int, len(severityOrder))
	for _, sev := range Severities() {
		counts[sev] = 0
	}
	for _, f := range r.Findings {
		counts[f.Severity]++
	}
	return counts
}

// CountBySeverity returns the number of findings at the given severity.
func (r *AuditReport) CountBySeverity(severity string) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == severity {
			n++
		}
	}
	return n
}

// RankedSummary is one entry of the batch risk ranking.
type RankedSummary struct {
	ContractName string `json:"contractName"`
	Score        int    `json:"score"`
	OverallRisk  string `json:"overallRisk"`
	FindingCount int    `json:"findingCount"`
}

// Comparison holds cross-contract statistics for a batch.
type Comparison struct {
	RiskRanking      []RankedSummary `json:"riskRanking"`
	TotalFindings    int             `json:"totalFindings"`
	CriticalCount    int             `json:"criticalCount"`
	HighCount        int             `json:"highCount"`
	MostVulnerable   string          `json:"mostVulnerable"`
	Safest           string          `json:"safest"`
	CommonCategories []string        `json:"commonCategories"`
}

// BatchReport aggregates the results of auditing 2-10 contracts as one
// logical operation. Reports stay in input order regardless of score;
// TotalContracts counts attempts, not successes.
type BatchReport struct {
	AuditedAt      time.Time     `json:"auditedAt"`
	TotalContracts int           `json:"totalContracts"`
	Reports        []AuditReport `json:"reports"`
	Comparison     Comparison    `json:"comparison"`
}

// WorstReport returns the lowest-scoring report of the batch, or nil if
// the batch holds no successful reports.
func (b *BatchReport) WorstReport() *AuditReport {
	var worst *AuditReport
	for i := range b.Reports {
		if worst == nil || b.Reports[i].Score < worst.Score {
			worst = &b.Reports[i]
		}
	}
	return worst
}
