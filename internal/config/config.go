// Package config loads and manages halcyon configuration.
// Source priority (highest to lowest):
// 1. Command-line flags (applied in the cmd layer)
// 2. Environment variables (GEMINI_API_KEY, HALCYON_MODEL, ...)
// 3. Config file path specified via --config flag
// 4. ~/.config/halcyon/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultModel is the default Gemini model identifier.
	DefaultModel = "gemini-2.5-flash-preview-04-17"

	// DefaultThinkingBudget is the deliberation budget used when none is
	// configured. Range is 0 to MaxThinkingBudget.
	DefaultThinkingBudget = 256

	// MaxThinkingBudget is the documented upper end of the budget range.
	MaxThinkingBudget = 24000
)

// Config is the complete configuration for halcyon.
type Config struct {
	// APIKey is the Gemini credential. Missing or invalid = fatal before
	// the interactive loop starts.
	APIKey string `yaml:"api_key"`

	// Model overrides the default Gemini model.
	Model string `yaml:"model"`

	// ThinkingBudget caps the model's internal deliberation (0-24000).
	ThinkingBudget int `yaml:"thinking_budget"`

	// SystemPrompt is an optional session-level instruction.
	SystemPrompt string `yaml:"system_prompt"`

	// Verbose enables tool-call logging.
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Model:          DefaultModel,
		ThinkingBudget: DefaultThinkingBudget,
	}
}

// DefaultPath returns ~/.config/halcyon/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "halcyon", "config.yaml")
}

// Load reads the config file and merges environment variable overrides.
// A missing file is not an error; defaults apply.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath == "" {
		configPath = DefaultPath()
	}
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
			}
		}
	}

	applyEnvOverrides(cfg)
	cfg.ThinkingBudget = clampBudget(cfg.ThinkingBudget)
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return cfg, nil
}

// Save writes the config to ~/.config/halcyon/config.yaml with restrictive
// permissions (the file holds the API key).
func Save(cfg *Config) (string, error) {
	path := DefaultPath()
	if path == "" {
		return "", fmt.Errorf("cannot determine home directory")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("HALCYON_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("HALCYON_THINKING_BUDGET"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ThinkingBudget = n
		}
	}
}

// clampBudget forces n into [0, MaxThinkingBudget].
func clampBudget(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxThinkingBudget {
		return MaxThinkingBudget
	}
	return n
}
