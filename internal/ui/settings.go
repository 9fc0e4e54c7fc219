// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// settings.go - Provider settings form screen.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/veriqai/veriq-tui/internal/model"
)

// Settings form fields, top to bottom.
const (
	fieldProvider = iota
	fieldAPIKey
	fieldModel
	settingsFieldCount
)

// enterSettings copies the current settings into form state. Nothing
// touches the persisted record until the form is saved.
func (a *App) enterSettings() {
	s := a.mgr.Settings()
	a.settingsKind = s.Provider
	a.keyInput.SetValue(s.APIKey)
	a.modelInput.SetValue(s.Model)
	a.settingsField = fieldProvider
	a.keyInput.Blur()
	a.modelInput.Blur()
	a.screen = screenSettings
}

func (a *App) settingsProvider() model.ProviderKind {
	return a.settingsKind
}

func (a *App) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a.updateSettingsInputs(msg)
	}

	if key.Matches(keyMsg, a.keyMap.Back) {
		a.enterChat()
		return a, nil
	}

	switch keyMsg.String() {
	case "tab", "down":
		a.focusSettingsField((a.settingsField + 1) % settingsFieldCount)
		return a, nil

	case "shift+tab", "up":
		a.focusSettingsField((a.settingsField - 1 + settingsFieldCount) % settingsFieldCount)
		return a, nil

	case "left", "right", " ":
		if a.settingsField == fieldProvider {
			a.toggleProvider()
			return a, nil
		}

	case "enter":
		if a.settingsField < settingsFieldCount-1 {
			a.focusSettingsField(a.settingsField + 1)
			return a, nil
		}
		a.saveSettings()
		a.enterChat()
		return a, nil
	}

	return a.updateSettingsInputs(msg)
}

func (a *App) focusSettingsField(i int) {
	a.settingsField = i
	a.keyInput.Blur()
	a.modelInput.Blur()
	switch i {
	case fieldAPIKey:
		a.keyInput.Focus()
	case fieldModel:
		a.modelInput.Focus()
	}
}

func (a *App) updateSettingsInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.settingsField {
	case fieldAPIKey:
		a.keyInput, cmd = a.keyInput.Update(msg)
	case fieldModel:
		a.modelInput, cmd = a.modelInput.Update(msg)
	}
	return a, cmd
}

// toggleProvider flips the form's provider choice. A model name from the
// other provider's family resets to the new provider's default. Only form
// state changes; the record is committed on save.
func (a *App) toggleProvider() {
	next := model.ProviderOpenAI
	if a.settingsKind == model.ProviderOpenAI {
		next = model.ProviderGemini
	}
	a.settingsKind = next
	if !next.OwnsModel(a.modelInput.Value()) {
		a.modelInput.SetValue(model.DefaultModelFor(next))
	}
}

// saveSettings commits the whole form as one settings record.
func (a *App) saveSettings() {
	a.mgr.UpdateSettings(model.Settings{
		Provider: a.settingsKind,
		APIKey:   strings.TrimSpace(a.keyInput.Value()),
		Model:    strings.TrimSpace(a.modelInput.Value()),
	})
}

func (a *App) viewSettings() string {
	var b strings.Builder

	b.WriteString(a.theme.HeaderTitle.Render("Settings"))
	b.WriteString("\n\n")

	providerStyle := a.theme.FormFieldInactive
	if a.settingsField == fieldProvider {
		providerStyle = a.theme.FormFieldActive
	}
	b.WriteString(a.theme.FormLabel.Render("Provider"))
	b.WriteString(providerStyle.Render("< " + a.settingsProvider().DisplayName() + " >"))
	b.WriteString("\n\n")

	b.WriteString(a.theme.FormLabel.Render("API key"))
	b.WriteString(a.keyInput.View())
	b.WriteString("\n\n")

	b.WriteString(a.theme.FormLabel.Render("Model"))
	b.WriteString(a.modelInput.View())
	b.WriteString("\n\n")

	b.WriteString(a.theme.ShortcutDesc.Render("Tab next field, Enter save, Esc cancel"))

	box := a.theme.FormBox.Render(b.String())
	if a.width == 0 || a.height == 0 {
		return box
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, box)
}
