// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// stats.go - Admin statistics screen.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a *App) updateStats(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	if key.Matches(keyMsg, a.keyMap.Back) {
		a.enterChat()
		return a, nil
	}
	switch keyMsg.String() {
	case "q", "enter":
		a.enterChat()
	case "r":
		return a, a.loadStatsCmd()
	}
	return a, nil
}

func (a *App) viewStats() string {
	var b strings.Builder

	b.WriteString(a.theme.HeaderTitle.Render("Statistics"))
	b.WriteString("\n\n")

	row := func(label string, value string) {
		b.WriteString(a.theme.StatsLabel.Render(label))
		b.WriteString(a.theme.StatsValue.Render(value))
		b.WriteString("\n")
	}

	row("Provider", string(a.stats.Provider))
	row("Model", a.stats.Model)
	row("Chats", fmt.Sprintf("%d", a.stats.TotalChats))
	row("Messages", fmt.Sprintf("%d", a.stats.TotalMessages))
	row("  from you", fmt.Sprintf("%d", a.stats.UserMessages))
	row("  from assistant", fmt.Sprintf("%d", a.stats.AssistantMessages))

	if len(a.usageTotals) > 0 {
		b.WriteString("\n")
		b.WriteString(a.theme.MessageLabel.Render("API usage"))
		b.WriteString("\n")
		for _, t := range a.usageTotals {
			row(string(t.Provider), fmt.Sprintf("%d requests, %d failures", t.Requests, t.Failures))
		}
	}

	b.WriteString("\n")
	b.WriteString(a.theme.ShortcutDesc.Render("r refresh, Esc back"))

	box := a.theme.StatsBox.Render(b.String())
	if a.width == 0 || a.height == 0 {
		return box
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, box)
}
