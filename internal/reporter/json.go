package reporter

import (
	"encoding/json"
	"io"
	"time"

	"github.com/ripgtxgt/ton-audit-ai/internal/models"
)

// JSONReporter generates machine-readable JSON reports.
type JSONReporter struct {
	writer io.Writer
	pretty bool
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(writer io.Writer, pretty bool) *JSONReporter {
	return &JSONReporter{
		writer: writer,
		pretty: pretty,
	}
}

// Generate writes a full audit report as JSON.
func (r *JSONReporter) Generate(report *models.AuditReport) error {
	return r.write(report)
}

// GenerateBatch writes a full batch report as JSON.
func (r *JSONReporter) GenerateBatch(batch *models.BatchReport) error {
	return r.write(batch)
}

// GenerateSummaryOnly writes a compact summary without finding bodies.
func (r *JSONReporter) GenerateSummaryOnly(report *models.AuditReport) error {
	summary := struct {
		ContractName string         `json:"contractName"`
		AuditedAt    string         `json:"auditedAt"`
		OverallRisk  string         `json:"overallRisk"`
		Score        int            `json:"score"`
		Findings     int            `json:"findings"`
		BySeverity   map[string]int `json:"bySeverity"`
	}{
		ContractName: report.ContractName,
		AuditedAt:    report.AuditedAt.Format(time.RFC3339),
		OverallRisk:  report.OverallRisk,
		Score:        report.Score,
		Findings:     len(report.Findings),
		BySeverity:   report.SeverityCounts(),
	}

	return r.write(summary)
}

func (r *JSONReporter) write(v any) error {
	var data []byte
	var err error

	if r.pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	if _, err := r.writer.Write(data); err != nil {
		return err
	}

	// Trailing newline for terminal output
	_, err = r.writer.Write([]byte("\n"))
	return err
}
