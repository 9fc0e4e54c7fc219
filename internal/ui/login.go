// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// login.go - Login form screen.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// loginFieldCount returns how many inputs the form shows. The TOTP field
// appears only when a secret is configured.
func (a *App) loginFieldCount() int {
	if a.totpRequired() {
		return 3
	}
	return 2
}

func (a *App) totpRequired() bool {
	return a.cfg.Admin.TOTPSecret != ""
}

func (a *App) loginInput(i int) *textinput.Model {
	switch i {
	case 0:
		return &a.emailInput
	case 1:
		return &a.passwordInput
	default:
		return &a.totpInput
	}
}

func (a *App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a.updateLoginInputs(msg)
	}

	switch keyMsg.String() {
	case "tab", "down":
		a.focusLoginField((a.loginField + 1) % a.loginFieldCount())
		return a, nil

	case "shift+tab", "up":
		a.focusLoginField((a.loginField - 1 + a.loginFieldCount()) % a.loginFieldCount())
		return a, nil

	case "enter":
		if a.loginField < a.loginFieldCount()-1 {
			a.focusLoginField(a.loginField + 1)
			return a, nil
		}
		return a.submitLogin()
	}

	return a.updateLoginInputs(msg)
}

func (a *App) focusLoginField(i int) {
	a.loginField = i
	for f := 0; f < a.loginFieldCount(); f++ {
		if f == i {
			a.loginInput(f).Focus()
		} else {
			a.loginInput(f).Blur()
		}
	}
}

func (a *App) updateLoginInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for f := 0; f < a.loginFieldCount(); f++ {
		in := a.loginInput(f)
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

func (a *App) submitLogin() (tea.Model, tea.Cmd) {
	email := strings.TrimSpace(a.emailInput.Value())
	password := a.passwordInput.Value()

	var ok bool
	if a.totpRequired() {
		ok = a.sessions.LoginTOTP(email, password, strings.TrimSpace(a.totpInput.Value()))
	} else {
		ok = a.sessions.Login(email, password)
	}

	if !ok {
		a.loginFailed = true
		a.passwordInput.SetValue("")
		a.totpInput.SetValue("")
		a.focusLoginField(1)
		return a, nil
	}

	a.loginFailed = false
	a.enterChat()
	return a, a.spinner.Tick
}

func (a *App) viewLogin() string {
	var b strings.Builder

	b.WriteString(a.theme.LoginTitle.Render("veriq"))
	b.WriteString("\n\n")

	b.WriteString(a.theme.LoginLabel.Render("Email"))
	b.WriteString("\n")
	b.WriteString(a.emailInput.View())
	b.WriteString("\n\n")

	b.WriteString(a.theme.LoginLabel.Render("Password"))
	b.WriteString("\n")
	b.WriteString(a.passwordInput.View())
	b.WriteString("\n")

	if a.totpRequired() {
		b.WriteString("\n")
		b.WriteString(a.theme.LoginLabel.Render("TOTP code"))
		b.WriteString("\n")
		b.WriteString(a.totpInput.View())
		b.WriteString("\n")
	}

	if a.loginFailed {
		b.WriteString("\n")
		b.WriteString(a.theme.LoginError.Render("Invalid email or password"))
		b.WriteString("\n")
	}

	box := a.theme.LoginBox.Render(b.String())
	if a.width == 0 || a.height == 0 {
		return box
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, box)
}
