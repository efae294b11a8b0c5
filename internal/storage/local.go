// Package storage writes audit artifacts to a local output directory.
// The audit pipeline itself is stateless; this is the file transport
// the CLI hands finished reports and rendered documents to.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ripgtxgt/ton-audit-ai/internal/models"
)

const timestampLayout = "2006-01-02T15-04-05"

// LocalStorage writes artifacts under a base directory.
type LocalStorage struct {
	baseDir string
}

// NewLocal creates a new local storage instance.
func NewLocal(baseDir string) *LocalStorage {
	return &LocalStorage{
		baseDir: baseDir,
	}
}

// EnsureDirectoryExists creates the reports directory if needed.
func (s *LocalStorage) EnsureDirectoryExists() error {
	if err := os.MkdirAll(filepath.Join(s.baseDir, "reports"), 0o755); err != nil {
		return fmt.Errorf("failed to create reports directory: %w", err)
	}
	return nil
}

// SaveReport stores an audit report as JSON and returns its path.
func (s *LocalStorage) SaveReport(report *models.AuditReport) (string, error) {
	if err := s.EnsureDirectoryExists(); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s-%s.json",
		report.AuditedAt.Format(timestampLayout), report.ContractName)
	path := filepath.Join(s.baseDir, "reports", filename)

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return path, nil
}

// SaveBatchReport stores a batch report as JSON and returns its path.
func (s *LocalStorage) SaveBatchReport(batch *models.BatchReport) (string, error) {
	if err := s.EnsureDirectoryExists(); err != nil {
		return "", err
	}

	filename := batch.AuditedAt.Format(timestampLayout) + "-batch.json"
	path := filepath.Join(s.baseDir, "reports", filename)

	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal batch report: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write batch report: %w", err)
	}

	return path, nil
}

// SavePDF stores a rendered document and returns its path.
func (s *LocalStorage) SavePDF(name string, data []byte) (string, error) {
	if err := s.EnsureDirectoryExists(); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s-%s.pdf",
		time.Now().Format(timestampLayout), name)
	path := filepath.Join(s.baseDir, "reports", filename)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write pdf: %w", err)
	}

	return path, nil
}

// LoadReport reads a stored audit report from an explicit path.
func (s *LocalStorage) LoadReport(path string) (*models.AuditReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	var report models.AuditReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// LatestReportPath returns the most recently written single-contract
// report, relying on the sortable timestamp prefix.
func (s *LocalStorage) LatestReportPath() (string, error) {
	reportsDir := filepath.Join(s.baseDir, "reports")

	entries, err := os.ReadDir(reportsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("no reports found")
		}
		return "", fmt.Errorf("failed to read reports directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		if strings.HasSuffix(name, "-batch.json") {
			continue
		}
		names = append(names, name)
	}

	if len(names) == 0 {
		return "", fmt.Errorf("no reports found")
	}

	sort.Strings(names)
	return filepath.Join(reportsDir, names[len(names)-1]), nil
}
