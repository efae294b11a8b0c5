package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ripgtxgt/ton-audit-ai/internal/batch"
	"github.com/ripgtxgt/ton-audit-ai/internal/models"
	"github.com/ripgtxgt/ton-audit-ai/internal/pdf"
	"github.com/ripgtxgt/ton-audit-ai/internal/policy"
	"github.com/ripgtxgt/ton-audit-ai/internal/provider"
	"github.com/ripgtxgt/ton-audit-ai/internal/reporter"
	"github.com/ripgtxgt/ton-audit-ai/internal/storage"
)

var (
	// Audit command flags
	auditFormat     string
	auditPDF        bool
	auditSave       bool
	auditPolicyFile string
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit <contract-file>",
	Short: "Audit a single TON smart contract",
	Long: `Audit a single FunC or Tact contract and print a structured
security report.

The contract source is streamed through the configured AI provider,
the response is parsed and repaired if needed, and the result is
assembled into a report with stable finding IDs and a 0-100 score.

Example:
  tonaudit audit wallet.fc
  tonaudit audit pool.tact --format json
  tonaudit audit wallet.fc --pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().StringVarP(&auditFormat, "format", "f", "",
		"output format: text, json or both (default from config)")
	auditCmd.Flags().BoolVar(&auditPDF, "pdf", false,
		"also render the report as a PDF document")
	auditCmd.Flags().BoolVar(&auditSave, "save", true,
		"save the report JSON to the output directory")
	auditCmd.Flags().StringVar(&auditPolicyFile, "policy", "",
		"policy file (default: nearest .tonaudit-policy.yaml)")
}

func runAudit(cmd *cobra.Command, args []string) error {
	if auditFormat != "" {
		cfg.Format = auditFormat
	}
	if err := cfg.Validate(); err != nil {
		return &InputError{Message: err.Error()}
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		return &InputError{Message: fmt.Sprintf("cannot read contract: %v", err)}
	}

	auditor, err := newAuditor()
	if err != nil {
		return err
	}

	logVerbose("Auditing %s via %s", args[0], cfg.Provider)

	report, err := auditor.AuditOne(context.Background(), batch.Contract{
		Filename: filepath.Base(args[0]),
		Source:   string(source),
	})
	if cfg.Verbose {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		logError("Audit failed: %v", err)
		return err
	}

	if err := emitReport(&report); err != nil {
		return err
	}

	if auditSave || auditPDF {
		store, err := outputStore()
		if err != nil {
			return err
		}
		if auditSave {
			path, err := store.SaveReport(&report)
			if err != nil {
				return err
			}
			logVerbose("Report saved to %s", path)
		}
		if auditPDF {
			data, err := pdf.Render(&report)
			if err != nil {
				return err
			}
			path, err := store.SavePDF(report.ContractName, data)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "PDF written to %s\n", path)
		}
	}

	return checkPolicy(auditPolicyFile, func(p *policy.Policy) *policy.Result {
		return p.Evaluate(&report)
	})
}

// newAuditor builds the audit pipeline from the active configuration.
func newAuditor() (*batch.Auditor, error) {
	p, err := provider.New(cfg.Provider, provider.Options{
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.APIURL,
		Model:     cfg.Model,
		MaxTokens: cfg.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	var observe func(string)
	if cfg.Verbose {
		observe = func(string) { fmt.Fprint(os.Stderr, ".") }
	}
	return batch.New(p, observe), nil
}

// outputStore opens local storage rooted at the configured output dir.
func outputStore() (*storage.LocalStorage, error) {
	dir, err := cfg.GetOutputPath()
	if err != nil {
		return nil, err
	}
	return storage.NewLocal(dir), nil
}

// emitReport writes the report in the configured format(s).
func emitReport(report *models.AuditReport) error {
	switch cfg.Format {
	case "json":
		return reporter.NewJSONReporter(os.Stdout, true).Generate(report)
	case "both":
		if err := reporter.NewTextReporter(os.Stdout).Generate(report); err != nil {
			return err
		}
		return reporter.NewJSONReporter(os.Stdout, true).Generate(report)
	default:
		return reporter.NewTextReporter(os.Stdout).Generate(report)
	}
}

// checkPolicy loads the active policy and applies eval to it. A missing
// policy always passes.
func checkPolicy(path string, eval func(*policy.Policy) *policy.Result) error {
	if path == "" {
		path = policy.FindPolicyFile()
	}
	if path == "" {
		return nil
	}

	pol, err := policy.LoadFromFile(path)
	if err != nil {
		return err
	}
	if pol == nil {
		return nil
	}

	logVerbose("Applying policy from %s", path)
	result := eval(pol)
	if result.Pass {
		return nil
	}

	for _, v := range result.Violations {
		logError("policy %s: %s", v.Rule, v.Message)
	}
	return &PolicyError{Violations: len(result.Violations)}
}
