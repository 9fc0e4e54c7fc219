// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/veriqai/veriq-tui/internal/chat"
	"github.com/veriqai/veriq-tui/internal/config"
	"github.com/veriqai/veriq-tui/internal/model"
	"github.com/veriqai/veriq-tui/internal/session"
	"github.com/veriqai/veriq-tui/internal/storage"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	st := storage.New(cfg.DataDir)
	sessions := session.NewStore(st)
	mgr := chat.NewManager(st, cfg)
	return New(cfg, st, sessions, mgr, nil)
}

func TestLoadingRendersNothing(t *testing.T) {
	app := newTestApp(t)
	if got := app.View(); got != "" {
		t.Errorf("loading view should be empty, got %q", got)
	}
}

func TestHydrateWithoutSessionShowsLogin(t *testing.T) {
	app := newTestApp(t)
	app.Update(hydratedMsg{})
	if app.screen != screenLogin {
		t.Errorf("screen = %d, want login", app.screen)
	}
	if app.View() == "" {
		t.Error("login view should render")
	}
}

func TestHydrateWithStoredSessionSkipsLogin(t *testing.T) {
	app := newTestApp(t)
	app.store.SaveSession(&model.Session{Email: "openaimh@gmail.com", Role: model.RoleAdmin, Name: "OpenAI MH"})
	app.sessions.Hydrate()
	app.Update(hydratedMsg{})
	if app.screen != screenChat {
		t.Errorf("screen = %d, want chat", app.screen)
	}
}

func TestLoginSubmitValidCredentials(t *testing.T) {
	app := newTestApp(t)
	app.Update(hydratedMsg{})

	app.emailInput.SetValue("openaimh@gmail.com")
	app.passwordInput.SetValue("admin123")
	app.submitLogin()

	if app.screen != screenChat {
		t.Errorf("screen = %d, want chat after valid login", app.screen)
	}
	if app.loginFailed {
		t.Error("loginFailed should be false")
	}
}

func TestLoginSubmitInvalidCredentials(t *testing.T) {
	app := newTestApp(t)
	app.Update(hydratedMsg{})

	app.emailInput.SetValue("openaimh@gmail.com")
	app.passwordInput.SetValue("wrong")
	app.submitLogin()

	if app.screen != screenLogin {
		t.Errorf("screen = %d, want login after failed attempt", app.screen)
	}
	if !app.loginFailed {
		t.Error("loginFailed should be set")
	}
	if app.passwordInput.Value() != "" {
		t.Error("password field should clear on failure")
	}
}

func TestNewChatShortcut(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	before := len(app.mgr.Chats())
	app.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	if got := len(app.mgr.Chats()); got != before+1 {
		t.Errorf("chats = %d, want %d", got, before+1)
	}
}

func TestCycleChat(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	first := app.mgr.NewChat()
	second := app.mgr.NewChat()
	if app.mgr.Active().ID != second.ID {
		t.Fatal("newest chat should be active")
	}

	app.cycleChat(1)
	if app.mgr.Active().ID == second.ID {
		t.Error("cycle should move to a different chat")
	}
	_ = first
}

func TestToggleProviderResetsModel(t *testing.T) {
	app := newTestApp(t)
	app.login(t)
	app.enterSettings()

	if app.modelInput.Value() != "gpt-3.5-turbo" {
		t.Fatalf("model = %q", app.modelInput.Value())
	}
	app.toggleProvider()
	if app.modelInput.Value() != "gemini-pro" {
		t.Errorf("model = %q, want gemini-pro after switching provider", app.modelInput.Value())
	}
	if app.settingsProvider() != model.ProviderGemini {
		t.Errorf("provider = %q", app.settingsProvider())
	}

	// The toggle is form state only; nothing is committed yet.
	if got := app.mgr.Settings().Provider; got != model.ProviderOpenAI {
		t.Errorf("committed provider = %q, want openai before save", got)
	}
}

func TestSettingsEscDiscardsEdits(t *testing.T) {
	app := newTestApp(t)
	app.login(t)
	app.enterSettings()

	app.toggleProvider()
	app.keyInput.SetValue("sk-draft")
	app.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if app.screen != screenChat {
		t.Fatalf("screen = %d, want chat after Esc", app.screen)
	}
	s := app.mgr.Settings()
	if s.Provider != model.ProviderOpenAI || s.Model != "gpt-3.5-turbo" || s.APIKey != "" {
		t.Errorf("settings = %+v, want untouched defaults after cancel", s)
	}
	if got := app.store.LoadSettings(); got != s {
		t.Errorf("persisted settings = %+v, diverge from in-memory %+v", got, s)
	}
}

func TestSettingsSaveCommitsWholesale(t *testing.T) {
	app := newTestApp(t)
	app.login(t)
	app.enterSettings()

	app.toggleProvider()
	app.keyInput.SetValue("AIza-test")
	app.saveSettings()

	want := model.Settings{Provider: model.ProviderGemini, APIKey: "AIza-test", Model: "gemini-pro"}
	if got := app.mgr.Settings(); got != want {
		t.Errorf("settings = %+v, want %+v", got, want)
	}
	if got := app.store.LoadSettings(); got != want {
		t.Errorf("persisted settings = %+v, want %+v", got, want)
	}
}

func TestLogoutReturnsToLogin(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	if app.screen != screenLogin {
		t.Errorf("screen = %d, want login after logout", app.screen)
	}
	if app.sessions.Current() != nil {
		t.Error("session should be cleared")
	}
}

// login drives the app through a successful admin login.
func (a *App) login(t *testing.T) {
	t.Helper()
	a.Update(hydratedMsg{})
	a.emailInput.SetValue("openaimh@gmail.com")
	a.passwordInput.SetValue("admin123")
	a.submitLogin()
	if a.screen != screenChat {
		t.Fatal("login failed in test setup")
	}
}
