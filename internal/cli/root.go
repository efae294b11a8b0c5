package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ripgtxgt/ton-audit-ai/internal/config"
)

const (
	// Exit codes
	ExitOK           = 0 // Success
	ExitPolicyFail   = 1 // Audit result violates the active policy
	ExitInvalidInput = 2 // Bad arguments or unreadable contract source
	ExitRuntimeError = 3 // Provider, I/O, or runtime error
)

var (
	// Global config instance
	cfg *config.Config

	// Global flags
	configFile string
	verbose    bool
	debug      bool

	version = "dev"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tonaudit",
	Short: "TON Audit - AI security auditor for TON smart contracts",
	Long: `TON Audit streams a FunC or Tact contract through an AI model and turns
the raw response into a structured security report.

It provides:
- Single-contract audits with severity-ranked findings
- Batch audits of 2-10 contracts with cross-contract comparison
- PDF report rendering
- Policy gates with CI-friendly exit codes

Quick start:
  tonaudit audit contract.fc
  tonaudit batch wallet.fc nft.tact pool.fc

Other commands:
  tonaudit browse
  tonaudit config init`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration
		var err error
		cfg, err = config.LoadFromFile(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Override config with flags if provided
		if verbose {
			cfg.Verbose = true
		}
		if debug {
			cfg.Debug = true
		}

		return nil
	},
}

// SetVersion sets the version string shown by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		os.Exit(HandleError(err))
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ~/.tonaudit.yaml or ./tonaudit.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"debug mode (very verbose)")

	// Add subcommands
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tonaudit %s\n", version)
		fmt.Println("AI security auditor for TON smart contracts")
	},
}

// HandleError determines the appropriate exit code for an error
func HandleError(err error) int {
	if err == nil {
		return ExitOK
	}

	switch err.(type) {
	case *InputError:
		return ExitInvalidInput
	case *PolicyError:
		return ExitPolicyFail
	default:
		return ExitRuntimeError
	}
}

// InputError represents bad arguments or unreadable input.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// PolicyError means the audit completed but the report violates policy.
type PolicyError struct {
	Violations int
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("policy check failed with %d violation(s)", e.Violations)
}

// logVerbose prints a message if verbose mode is enabled
func logVerbose(format string, args ...interface{}) {
	if cfg != nil && cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[INFO] "+format+"\n", args...)
	}
}

// logDebug prints a message if debug mode is enabled
func logDebug(format string, args ...interface{}) {
	if cfg != nil && cfg.Debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// logError prints an error message
func logError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "[ERROR] "+format+"\n", args...)
}
