package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ripgtxgt/ton-audit-ai/internal/batch"
	"github.com/ripgtxgt/ton-audit-ai/internal/models"
	"github.com/ripgtxgt/ton-audit-ai/internal/pdf"
	"github.com/ripgtxgt/ton-audit-ai/internal/policy"
	"github.com/ripgtxgt/ton-audit-ai/internal/reporter"
)

// Batch size limits. Contracts are audited strictly one at a time, so
// the ceiling bounds total wall-clock time per invocation.
const (
	batchMinContracts = 2
	batchMaxContracts = 10
)

var (
	// Batch command flags
	batchFormat     string
	batchPDF        bool
	batchSave       bool
	batchPolicyFile string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <contract-file>...",
	Short: "Audit 2-10 contracts and compare them",
	Long: `Audit several contracts sequentially and produce a combined report
with a risk ranking and cross-contract statistics.

Contracts that fail to audit are reported and skipped; the batch only
fails outright when every contract fails.

Example:
  tonaudit batch wallet.fc nft.tact pool.fc
  tonaudit batch contracts/*.fc --format json --pdf`,
	Args: cobra.RangeArgs(batchMinContracts, batchMaxContracts),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchFormat, "format", "f", "",
		"output format: text, json or both (default from config)")
	batchCmd.Flags().BoolVar(&batchPDF, "pdf", false,
		"render the worst-scoring report as a PDF document")
	batchCmd.Flags().BoolVar(&batchSave, "save", true,
		"save the batch report JSON to the output directory")
	batchCmd.Flags().StringVar(&batchPolicyFile, "policy", "",
		"policy file (default: nearest .tonaudit-policy.yaml)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	if batchFormat != "" {
		cfg.Format = batchFormat
	}
	if err := cfg.Validate(); err != nil {
		return &InputError{Message: err.Error()}
	}

	contracts := make([]batch.Contract, 0, len(args))
	for _, arg := range args {
		source, err := os.ReadFile(arg)
		if err != nil {
			return &InputError{Message: fmt.Sprintf("cannot read contract: %v", err)}
		}
		contracts = append(contracts, batch.Contract{
			Filename: filepath.Base(arg),
			Source:   string(source),
		})
	}

	auditor, err := newAuditor()
	if err != nil {
		return err
	}

	logVerbose("Auditing %d contracts via %s", len(contracts), cfg.Provider)

	report, failures, err := auditor.Run(context.Background(), contracts)
	if cfg.Verbose {
		fmt.Fprintln(os.Stderr)
	}
	for _, f := range failures {
		logError("%s: %v", f.Filename, f.Err)
	}
	if err != nil {
		var exhausted *batch.BatchExhaustedError
		if errors.As(err, &exhausted) {
			logError("All %d contracts failed", exhausted.Attempts)
		}
		return err
	}

	if err := emitBatchReport(report); err != nil {
		return err
	}

	if batchSave || batchPDF {
		store, err := outputStore()
		if err != nil {
			return err
		}
		if batchSave {
			path, err := store.SaveBatchReport(report)
			if err != nil {
				return err
			}
			logVerbose("Batch report saved to %s", path)
		}
		if batchPDF {
			data, err := pdf.RenderWorst(report)
			if err != nil {
				return err
			}
			worst := report.WorstReport()
			path, err := store.SavePDF(worst.ContractName, data)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "PDF written to %s\n", path)
		}
	}

	return checkPolicy(batchPolicyFile, func(p *policy.Policy) *policy.Result {
		return p.EvaluateBatch(report)
	})
}

// emitBatchReport writes the batch report in the configured format(s).
func emitBatchReport(report *models.BatchReport) error {
	switch cfg.Format {
	case "json":
		return reporter.NewJSONReporter(os.Stdout, true).GenerateBatch(report)
	case "both":
		if err := reporter.NewTextReporter(os.Stdout).GenerateBatch(report); err != nil {
			return err
		}
		return reporter.NewJSONReporter(os.Stdout, true).GenerateBatch(report)
	default:
		return reporter.NewTextReporter(os.Stdout).GenerateBatch(report)
	}
}
