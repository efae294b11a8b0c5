package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for tonaudit.
type Config struct {
	// Provider selects the upstream model transport (openai, openrouter).
	Provider string `mapstructure:"provider"`

	// APIKey authenticates against the selected provider
	// (also TONAUDIT_API_KEY).
	APIKey string `mapstructure:"api_key"`

	// APIURL overrides the provider's default endpoint.
	APIURL string `mapstructure:"api_url"`

	// Model is the model identifier sent with each request.
	Model string `mapstructure:"model"`

	// MaxTokens bounds the model's response length (0 = provider default).
	MaxTokens int `mapstructure:"max_tokens"`

	// Output format (text, json, both)
	Format string `mapstructure:"format"`

	// OutputDir is where reports and rendered documents are written.
	OutputDir string `mapstructure:"output_dir"`

	// Verbose output
	Verbose bool `mapstructure:"verbose"`

	// Debug mode
	Debug bool `mapstructure:"debug"`
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Provider:  "openai",
		MaxTokens: 4096,
		Format:    "text",
		OutputDir: ".tonaudit",
		Verbose:   false,
		Debug:     false,
	}
}

// Load loads configuration with the following precedence (lowest to highest):
// 1. Default values
// 2. Config file (~/.tonaudit.yaml or ./tonaudit.yaml)
// 3. Environment variables (TONAUDIT_*)
// 4. CLI flags (handled by caller)
func Load() (*Config, error) {
	return LoadFromFile("")
}

// LoadFromFile loads configuration from a specific file path.
// If path is empty, it searches for config in standard locations.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("provider", defaults.Provider)
	v.SetDefault("api_key", "")
	v.SetDefault("api_url", "")
	v.SetDefault("model", "")
	v.SetDefault("max_tokens", defaults.MaxTokens)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("debug", defaults.Debug)

	v.SetConfigName("tonaudit")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Search for config in standard locations
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}

		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			v.AddConfigPath(filepath.Join(xdgConfig, "tonaudit"))
		}
	}

	v.SetEnvPrefix("TONAUDIT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	validProviders := map[string]bool{
		"openai":     true,
		"openrouter": true,
	}
	if !validProviders[c.Provider] {
		return fmt.Errorf("invalid provider: %s (must be openai or openrouter)", c.Provider)
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
		"both": true,
	}
	if !validFormats[c.Format] {
		return fmt.Errorf("invalid format: %s (must be text, json, or both)", c.Format)
	}

	if c.MaxTokens < 0 {
		return fmt.Errorf("max_tokens cannot be negative")
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}

	return nil
}

// GetOutputPath returns the absolute path to the output directory.
func (c *Config) GetOutputPath() (string, error) {
	if len(c.OutputDir) >= 2 && c.OutputDir[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, c.OutputDir[2:]), nil
	}

	absPath, err := filepath.Abs(c.OutputDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	return absPath, nil
}

// GenerateSampleConfig generates a sample configuration file content.
func GenerateSampleConfig() string {
	return `# tonaudit Configuration
# Save this file as ~/.tonaudit.yaml or ./tonaudit.yaml

# Model transport: openai or openrouter
provider: openai

# API key for the selected provider
# Can also be set via TONAUDIT_API_KEY env var
# api_key: sk-your-key-here

# Override the provider endpoint (self-hosted gateways, testing)
# api_url: https://api.openai.com/v1

# Model identifier (empty = provider default)
# model: gpt-4o

# Response length cap
max_tokens: 4096

# Output format: text, json, or both
format: text

# Directory for stored reports and rendered PDFs
output_dir: .tonaudit

# Enable verbose output
verbose: false

# Enable debug mode
debug: false
`
}
