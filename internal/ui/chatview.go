// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chatview.go - Main chat screen: sidebar, transcript, input, status bar.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/veriqai/veriq-tui/internal/model"
	"github.com/veriqai/veriq-tui/internal/util"
)

// errorPrefix marks assistant messages that report a failed request.
const errorPrefix = "**Error:** "

func (a *App) updateChat(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(keyMsg, a.keyMap.Submit):
		content := strings.TrimSpace(a.input.Value())
		if content == "" || a.mgr.IsResponding() {
			return a, nil
		}
		a.input.SetValue("")
		a.errLine = ""
		return a, tea.Batch(a.sendCmd(content), a.spinner.Tick)

	case key.Matches(keyMsg, a.keyMap.NewChat):
		a.mgr.NewChat()
		a.refreshViewport()
		return a, nil

	case key.Matches(keyMsg, a.keyMap.NextChat):
		a.cycleChat(1)
		return a, nil

	case key.Matches(keyMsg, a.keyMap.PrevChat):
		a.cycleChat(-1)
		return a, nil

	case key.Matches(keyMsg, a.keyMap.Delete):
		if active := a.mgr.Active(); active != nil {
			a.mgr.Delete(active.ID)
			a.refreshViewport()
		}
		return a, nil

	case key.Matches(keyMsg, a.keyMap.Sidebar):
		a.sidebar = !a.sidebar
		a.resize(a.width, a.height)
		return a, nil

	case key.Matches(keyMsg, a.keyMap.Settings):
		a.enterSettings()
		return a, nil

	case key.Matches(keyMsg, a.keyMap.Stats):
		if current := a.sessions.Current(); current != nil && current.Role == model.RoleAdmin {
			a.screen = screenStats
			return a, a.loadStatsCmd()
		}
		return a, nil

	case key.Matches(keyMsg, a.keyMap.Logout):
		a.sessions.Logout()
		a.passwordInput.SetValue("")
		a.totpInput.SetValue("")
		a.loginFailed = false
		a.focusLoginField(0)
		a.screen = screenLogin
		return a, nil

	case key.Matches(keyMsg, a.keyMap.Up),
		key.Matches(keyMsg, a.keyMap.Down),
		key.Matches(keyMsg, a.keyMap.PageUp),
		key.Matches(keyMsg, a.keyMap.PageDown):
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// cycleChat moves the active chat forward or backward through the list.
func (a *App) cycleChat(delta int) {
	chats := a.mgr.Chats()
	if len(chats) == 0 {
		return
	}
	active := a.mgr.Active()
	idx := 0
	if active != nil {
		for i, c := range chats {
			if c.ID == active.ID {
				idx = i
				break
			}
		}
	}
	idx = (idx + delta + len(chats)) % len(chats)
	a.mgr.Select(chats[idx].ID)
	a.refreshViewport()
}

// refreshViewport rebuilds the transcript from the active chat and
// scrolls to the newest message.
func (a *App) refreshViewport() {
	active := a.mgr.Active()
	if active == nil {
		a.viewport.SetContent(a.theme.SidebarHint.Render("No chat selected. Ctrl+N starts one."))
		return
	}

	var b strings.Builder
	for i, msg := range active.Messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(a.renderMessage(msg))
	}
	if active.IsEmpty() {
		b.WriteString(a.theme.SidebarHint.Render("Send a message to start the conversation."))
	}

	a.viewport.SetContent(b.String())
	a.viewport.GotoBottom()
}

func (a *App) renderMessage(msg model.Message) string {
	label := a.theme.MessageLabel.Render(msg.Role.DisplayName())

	switch {
	case msg.Role == model.RoleUser:
		return label + "\n" + a.theme.UserBubble.Render(msg.Content)

	case strings.HasPrefix(msg.Content, errorPrefix):
		body := strings.TrimPrefix(msg.Content, errorPrefix)
		return label + "\n" + a.theme.ErrorText.Render("Error: ") + body

	default:
		return label + "\n" + a.theme.AssistantBubble.Render(a.markdown.Render(msg.Content))
	}
}

// =============================================================================
// RENDERING
// =============================================================================

func (a *App) viewChat() string {
	header := a.viewHeader()
	body := a.viewport.View()
	if a.sidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, a.viewSidebar(), body)
	}
	input := a.theme.InputContainer.Render(a.input.View())
	status := a.viewStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, header, body, input, status)
}

func (a *App) viewHeader() string {
	settings := a.mgr.Settings()
	title := "No chat"
	if active := a.mgr.Active(); active != nil {
		title = active.Title
	}

	left := a.theme.HeaderBrand.Render("veriq") + "  " + a.theme.HeaderTitle.Render(title)
	right := fmt.Sprintf("%s / %s", settings.Provider.DisplayName(), settings.Model)
	gap := a.width - lipgloss.Width(left) - len(right) - 2
	if gap < 1 {
		gap = 1
	}
	return a.theme.Header.Width(a.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (a *App) viewSidebar() string {
	chats := a.mgr.Chats()
	active := a.mgr.Active()

	var b strings.Builder
	b.WriteString(a.theme.MessageLabel.Render("Chats"))
	b.WriteString("\n")
	if len(chats) == 0 {
		b.WriteString(a.theme.SidebarHint.Render("(none)"))
	}
	for _, c := range chats {
		title := util.TruncateWidth(c.Title, sidebarWidth-4)
		style := a.theme.SidebarItem
		if active != nil && c.ID == active.ID {
			style = a.theme.SidebarItemActive
		}
		b.WriteString(style.Render(title))
		b.WriteString("\n")
		if last, ok := c.LastMessage(); ok {
			b.WriteString(a.theme.SidebarHint.Render(last.Preview(sidebarWidth - 6)))
			b.WriteString("\n")
		}
	}

	return a.theme.Sidebar.
		Width(sidebarWidth).
		Height(a.viewport.Height).
		Render(b.String())
}

func (a *App) viewStatusBar() string {
	var left string
	if a.mgr.IsResponding() {
		left = a.theme.StatusBusy.Render(a.spinner.View()) + a.theme.ThinkingText.Render(" thinking...")
	} else if a.errLine != "" {
		left = a.theme.ErrorText.Render(a.errLine)
	} else {
		left = a.theme.StatusReady.Render("ready")
	}

	shortcuts := [][2]string{
		{"C-n", "new"}, {"C-up/down", "switch"}, {"C-x", "delete"}, {"C-s", "settings"},
	}
	if current := a.sessions.Current(); current != nil && current.Role == model.RoleAdmin {
		shortcuts = append(shortcuts, [2]string{"C-g", "stats"})
	}
	shortcuts = append(shortcuts, [2]string{"C-l", "logout"}, [2]string{"C-c", "quit"})

	parts := make([]string, len(shortcuts))
	for i, s := range shortcuts {
		parts[i] = a.theme.ShortcutKey.Render(s[0]) + a.theme.ShortcutDesc.Render(" "+s[1])
	}
	right := strings.Join(parts, "  ")

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return a.theme.StatusBar.Width(a.width).Render(left + strings.Repeat(" ", gap) + right)
}
