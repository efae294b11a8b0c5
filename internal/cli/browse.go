package cli

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ripgtxgt/ton-audit-ai/internal/tui"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse [report-file]",
	Short: "Browse a saved audit report interactively",
	Long: `Open a saved audit report in an interactive findings browser with
search, severity filtering and sorting.

Without an argument the most recent report from the output directory
is opened.

Example:
  tonaudit browse
  tonaudit browse .tonaudit/reports/2026-03-01T10-00-00-wallet.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return &InputError{Message: "browse requires an interactive terminal"}
	}

	store, err := outputStore()
	if err != nil {
		return err
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		path, err = store.LatestReportPath()
		if err != nil {
			return &InputError{Message: "no saved reports; run 'tonaudit audit' first"}
		}
	}

	logVerbose("Loading report from %s", path)

	report, err := store.LoadReport(path)
	if err != nil {
		return &InputError{Message: err.Error()}
	}

	return tui.Run(report)
}
