package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ripgtxgt/ton-audit-ai/internal/config"
)

// configCmd groups configuration helpers
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tonaudit configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample config file to ./tonaudit.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		const path = "tonaudit.yaml"
		if _, err := os.Stat(path); err == nil {
			return &InputError{Message: path + " already exists"}
		}
		if err := os.WriteFile(path, []byte(config.GenerateSampleConfig()), 0o644); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Never echo credentials.
		shown := *cfg
		if shown.APIKey != "" {
			shown.APIKey = "****"
		}
		out, err := yaml.Marshal(&shown)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
