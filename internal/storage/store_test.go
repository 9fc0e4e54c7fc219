// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/veriqai/veriq-tui/internal/model"
)

// =============================================================================
// HISTORY TESTS
// =============================================================================

func TestLoadHistory_Empty(t *testing.T) {
	store := New(t.TempDir())

	chats := store.LoadHistory()
	if chats == nil {
		t.Fatal("Expected non-nil slice")
	}
	if len(chats) != 0 {
		t.Errorf("Chats = %d, want 0", len(chats))
	}
}

func TestLoadHistory_CorruptData(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "history.json"), []byte("{not json"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	store := New(dir)
	chats := store.LoadHistory()
	if len(chats) != 0 {
		t.Errorf("Chats = %d, want 0 for corrupt data", len(chats))
	}
}

func TestHistory_RoundTrip(t *testing.T) {
	store := New(t.TempDir())

	chat := model.NewChat()
	chat.Append(model.NewUserMessage("Hi"))
	chat.Append(model.NewAssistantMessage("Hello!"))

	store.SaveHistory([]*model.Chat{chat})

	loaded := store.LoadHistory()
	if len(loaded) != 1 {
		t.Fatalf("Loaded %d chats, want 1", len(loaded))
	}
	if loaded[0].ID != chat.ID {
		t.Errorf("ID = %q, want %q", loaded[0].ID, chat.ID)
	}
	if loaded[0].Title != "Hi" {
		t.Errorf("Title = %q, want %q", loaded[0].Title, "Hi")
	}
	if len(loaded[0].Messages) != 2 {
		t.Fatalf("Messages = %d, want 2", len(loaded[0].Messages))
	}
	if loaded[0].Messages[1].Role != model.RoleAssistant {
		t.Errorf("Role = %q, want assistant", loaded[0].Messages[1].Role)
	}
}

// =============================================================================
// SETTINGS TESTS
// =============================================================================

func TestLoadSettings_Defaults(t *testing.T) {
	store := New(t.TempDir())

	s := store.LoadSettings()
	if s != model.DefaultSettings() {
		t.Errorf("Settings = %+v, want defaults", s)
	}
}

func TestLoadSettings_CorruptData(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "settings.json"), []byte("[]"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	store := New(dir)
	if s := store.LoadSettings(); s != model.DefaultSettings() {
		t.Errorf("Settings = %+v, want defaults for corrupt data", s)
	}
}

func TestSettings_RoundTrip(t *testing.T) {
	store := New(t.TempDir())

	want := model.Settings{
		Provider: model.ProviderGemini,
		APIKey:   "g-secret",
		Model:    "gemini-pro",
	}
	store.SaveSettings(want)

	if got := store.LoadSettings(); got != want {
		t.Errorf("Settings = %+v, want %+v", got, want)
	}
}

func TestSaveSettings_FilePermissions(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	store.SaveSettings(model.DefaultSettings())

	info, err := os.Stat(filepath.Join(dir, "settings.json"))
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("settings file mode = %v, want 0600", info.Mode().Perm())
	}
}

// =============================================================================
// SESSION TESTS
// =============================================================================

func TestSession_RoundTrip(t *testing.T) {
	store := New(t.TempDir())

	if store.LoadSession() != nil {
		t.Error("Expected nil session before save")
	}

	session := &model.Session{Email: "openaimh@gmail.com", Role: model.RoleAdmin, Name: "OpenAI MH"}
	store.SaveSession(session)

	loaded := store.LoadSession()
	if loaded == nil {
		t.Fatal("Expected session after save")
	}
	if *loaded != *session {
		t.Errorf("Session = %+v, want %+v", loaded, session)
	}

	store.ClearSession()
	if store.LoadSession() != nil {
		t.Error("Expected nil session after clear")
	}
}

func TestClearSession_Idempotent(t *testing.T) {
	store := New(t.TempDir())
	store.ClearSession()
	store.ClearSession()
}

// =============================================================================
// INDEPENDENCE
// =============================================================================

func TestRecords_Independent(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)

	// Corrupting history must not affect settings.
	if err := os.WriteFile(filepath.Join(dir, "history.json"), []byte("garbage"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	want := model.Settings{Provider: model.ProviderOpenAI, APIKey: "k", Model: "gpt-4o"}
	store.SaveSettings(want)

	if len(store.LoadHistory()) != 0 {
		t.Error("Expected empty history")
	}
	if got := store.LoadSettings(); got != want {
		t.Errorf("Settings = %+v, want %+v", got, want)
	}
}
