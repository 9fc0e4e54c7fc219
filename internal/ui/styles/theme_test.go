// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewThemeDark(t *testing.T) {
	theme := NewTheme("dark")
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}
	if !theme.IsDark {
		t.Error("dark theme should report IsDark")
	}
}

func TestNewThemeLight(t *testing.T) {
	theme := NewTheme("light")
	if theme.IsDark {
		t.Error("light theme should not report IsDark")
	}
}

func TestThemeStylesInitialized(t *testing.T) {
	theme := NewTheme("dark")

	// Styles must render without panicking and the accented ones must
	// not be zero-valued.
	_ = theme.Header.Render("header")
	_ = theme.UserBubble.Render("user")
	_ = theme.AssistantBubble.Render("assistant")
	_ = theme.ErrorText.Render("error")
	_ = theme.LoginBox.Render("login")
	_ = theme.StatusBar.Render("status")

	if !theme.HeaderTitle.GetBold() {
		t.Error("HeaderTitle should be bold")
	}
	if !theme.ErrorText.GetBold() {
		t.Error("ErrorText should be bold")
	}
}

func TestSetSize(t *testing.T) {
	theme := NewTheme("dark")
	theme.SetSize(120, 40)
	if theme.Width != 120 || theme.Height != 40 {
		t.Errorf("size = %dx%d", theme.Width, theme.Height)
	}
}
