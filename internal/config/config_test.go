// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/veriqai/veriq-tui/internal/model"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.DataDir == "" {
		t.Error("Expected non-empty DataDir")
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("Theme = %q, want %q", cfg.UI.Theme, "dark")
	}
	if cfg.Providers.OpenAIKey != "" || cfg.Providers.GeminiKey != "" {
		t.Error("Expected no fallback keys by default")
	}
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFromPath on missing file failed: %v", err)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("Expected defaults for missing file, got theme %q", cfg.UI.Theme)
	}
}

func TestLoadFromPath_ParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
data_dir = "/tmp/veriq-test"

[providers]
openai_key = "sk-fallback"
gemini_base_url = "http://localhost:9090"

[admin]
totp_secret = "JBSWY3DPEHPK3PXP"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.DataDir != "/tmp/veriq-test" {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, "/tmp/veriq-test")
	}
	if cfg.Providers.OpenAIKey != "sk-fallback" {
		t.Errorf("OpenAIKey = %q, want %q", cfg.Providers.OpenAIKey, "sk-fallback")
	}
	if cfg.Providers.GeminiBaseURL != "http://localhost:9090" {
		t.Errorf("GeminiBaseURL = %q", cfg.Providers.GeminiBaseURL)
	}
	if cfg.Admin.TOTPSecret != "JBSWY3DPEHPK3PXP" {
		t.Errorf("TOTPSecret = %q", cfg.Admin.TOTPSecret)
	}
}

func TestLoadFromPath_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Error("Expected error for invalid TOML")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("VERIQ_OPENAI_KEY", "sk-env")
	t.Setenv("VERIQ_DATA_DIR", "/tmp/env-dir")

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
data_dir = "/tmp/file-dir"

[providers]
openai_key = "sk-file"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	// Environment wins over the file.
	if cfg.Providers.OpenAIKey != "sk-env" {
		t.Errorf("OpenAIKey = %q, want env value", cfg.Providers.OpenAIKey)
	}
	if cfg.DataDir != "/tmp/env-dir" {
		t.Errorf("DataDir = %q, want env value", cfg.DataDir)
	}
}

func TestSaveToPath_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Providers.GeminiKey = "g-key"
	cfg.UI.ShowSidebar = false

	if err := SaveToPath(cfg, path); err != nil {
		t.Fatalf("SaveToPath failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if loaded.Providers.GeminiKey != "g-key" {
		t.Errorf("GeminiKey = %q, want %q", loaded.Providers.GeminiKey, "g-key")
	}
	if loaded.UI.ShowSidebar {
		t.Error("ShowSidebar = true, want false")
	}
}

func TestFallbackKey(t *testing.T) {
	cfg := Default()
	cfg.Providers.OpenAIKey = "a"
	cfg.Providers.GeminiKey = "b"

	if got := cfg.FallbackKey(model.ProviderOpenAI); got != "a" {
		t.Errorf("FallbackKey(openai) = %q, want %q", got, "a")
	}
	if got := cfg.FallbackKey(model.ProviderGemini); got != "b" {
		t.Errorf("FallbackKey(gemini) = %q, want %q", got, "b")
	}
	if got := cfg.FallbackKey("mystery"); got != "" {
		t.Errorf("FallbackKey(mystery) = %q, want empty", got)
	}
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`data_dir = "/tmp/a"`), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	reloaded := make(chan *Config, 1)
	w, err := NewWatcher(path, func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	if err := w.Watch(); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	if err := os.WriteFile(path, []byte(`data_dir = "/tmp/b"`), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.DataDir != "/tmp/b" {
			t.Errorf("reloaded DataDir = %q, want %q", cfg.DataDir, "/tmp/b")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for config reload")
	}
}
