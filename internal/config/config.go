// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/veriqai/veriq-tui/internal/model"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete veriq-tui configuration.
type Config struct {
	// DataDir is where chat history, settings, and session records live.
	// Default: ~/.veriq
	DataDir string `toml:"data_dir"`

	// Providers holds per-provider fallback keys and endpoint overrides.
	Providers ProvidersConfig `toml:"providers"`

	// Admin holds admin login configuration.
	Admin AdminConfig `toml:"admin"`

	// UI holds presentation options.
	UI UIConfig `toml:"ui"`
}

// ProvidersConfig contains fallback API keys and base URLs for the two
// provider APIs. The fallback keys are consulted only when the user has not
// set a key in Settings.
type ProvidersConfig struct {
	// OpenAIKey is the fallback key for the OpenAI-compatible provider.
	OpenAIKey string `toml:"openai_key"`
	// OpenAIBaseURL overrides the OpenAI-compatible endpoint.
	OpenAIBaseURL string `toml:"openai_base_url"`

	// GeminiKey is the fallback key for the Gemini-compatible provider.
	GeminiKey string `toml:"gemini_key"`
	// GeminiBaseURL overrides the Gemini-compatible endpoint.
	GeminiBaseURL string `toml:"gemini_base_url"`
}

// AdminConfig contains admin login configuration.
type AdminConfig struct {
	// TOTPSecret, when set, requires a valid TOTP code at login in addition
	// to the credential pair. Empty means credentials only.
	TOTPSecret string `toml:"totp_secret"`
}

// UIConfig contains presentation options.
type UIConfig struct {
	// Theme selects the color theme: "dark" (default) or "light".
	Theme string `toml:"theme"`
	// ShowSidebar controls whether the chat list starts visible.
	ShowSidebar bool `toml:"show_sidebar"`
}

// =============================================================================
// DEFAULTS AND PATHS
// =============================================================================

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		UI: UIConfig{
			Theme:       "dark",
			ShowSidebar: true,
		},
	}
}

func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".veriq"
	}
	return filepath.Join(homeDir, ".veriq")
}

// Path returns the location of the TOML config file.
func Path() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".veriq", "config.toml"), nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads the configuration from disk, applies environment overrides, and
// falls back to defaults when no file exists. A file that exists but does
// not parse is an error; silently ignoring it would mask typos.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		return cfg, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath reads the configuration from a specific file.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.setDefaults()
	return cfg, nil
}

// Save writes the configuration to its default location with owner-only
// permissions, since it may carry API keys.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveToPath(cfg, path)
}

// SaveToPath writes the configuration to a specific file.
func SaveToPath(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "# veriq-tui configuration file")
	fmt.Fprintln(file, "")

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies VERIQ_* environment variables on top of file
// values.
//
// Supported variables:
//   - VERIQ_DATA_DIR: overrides data_dir
//   - VERIQ_OPENAI_KEY: overrides providers.openai_key
//   - VERIQ_OPENAI_BASE_URL: overrides providers.openai_base_url
//   - VERIQ_GEMINI_KEY: overrides providers.gemini_key
//   - VERIQ_GEMINI_BASE_URL: overrides providers.gemini_base_url
//   - VERIQ_TOTP_SECRET: overrides admin.totp_secret
func (c *Config) ApplyEnvOverrides() {
	if dir := os.Getenv("VERIQ_DATA_DIR"); dir != "" {
		c.DataDir = dir
	}
	if key := os.Getenv("VERIQ_OPENAI_KEY"); key != "" {
		c.Providers.OpenAIKey = key
	}
	if url := os.Getenv("VERIQ_OPENAI_BASE_URL"); url != "" {
		c.Providers.OpenAIBaseURL = url
	}
	if key := os.Getenv("VERIQ_GEMINI_KEY"); key != "" {
		c.Providers.GeminiKey = key
	}
	if url := os.Getenv("VERIQ_GEMINI_BASE_URL"); url != "" {
		c.Providers.GeminiBaseURL = url
	}
	if secret := os.Getenv("VERIQ_TOTP_SECRET"); secret != "" {
		c.Admin.TOTPSecret = secret
	}
}

func (c *Config) setDefaults() {
	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}
	if c.UI.Theme == "" {
		c.UI.Theme = "dark"
	}
}

// =============================================================================
// KEY RESOLUTION
// =============================================================================

// FallbackKey returns the configured fallback API key for a provider, or
// empty when none is set.
func (c *Config) FallbackKey(kind model.ProviderKind) string {
	switch kind {
	case model.ProviderOpenAI:
		return c.Providers.OpenAIKey
	case model.ProviderGemini:
		return c.Providers.GeminiKey
	default:
		return ""
	}
}

// BaseURL returns the configured endpoint override for a provider, or empty
// to use the provider's default endpoint.
func (c *Config) BaseURL(kind model.ProviderKind) string {
	switch kind {
	case model.ProviderOpenAI:
		return c.Providers.OpenAIBaseURL
	case model.ProviderGemini:
		return c.Providers.GeminiBaseURL
	default:
		return ""
	}
}
