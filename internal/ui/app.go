// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// app.go - Top-level Bubble Tea model for the veriq TUI.
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/veriqai/veriq-tui/internal/admin"
	"github.com/veriqai/veriq-tui/internal/chat"
	"github.com/veriqai/veriq-tui/internal/config"
	"github.com/veriqai/veriq-tui/internal/model"
	"github.com/veriqai/veriq-tui/internal/session"
	"github.com/veriqai/veriq-tui/internal/storage"
	"github.com/veriqai/veriq-tui/internal/ui/styles"
)

// =============================================================================
// SCREENS
// =============================================================================

// screen identifies which view the application is showing.
type screen int

const (
	screenLoading screen = iota // Session hydration in flight
	screenLogin                 // Login form
	screenChat                  // Main chat view
	screenSettings              // Provider settings form
	screenStats                 // Admin statistics
)

// =============================================================================
// MESSAGES
// =============================================================================

// hydratedMsg signals that persisted session state has been read.
type hydratedMsg struct{}

// sendDoneMsg signals that a send round-trip has finished. Provider
// failures surface inline in the conversation, so err here is only a
// pre-flight rejection.
type sendDoneMsg struct{ err error }

// statsLoadedMsg carries freshly collected statistics.
type statsLoadedMsg struct {
	stats  admin.Stats
	totals []admin.UsageTotals
}

// =============================================================================
// APP MODEL
// =============================================================================

// App is the Bubble Tea model for the whole application.
type App struct {
	screen screen
	theme  *styles.Theme
	keyMap KeyMap

	cfg      *config.Config
	store    *storage.Store
	sessions *session.Store
	mgr      *chat.Manager
	usage    *admin.UsageLog

	width  int
	height int

	// Chat view
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	markdown *markdownRenderer
	sidebar  bool
	errLine  string

	// Login form
	emailInput    textinput.Model
	passwordInput textinput.Model
	totpInput     textinput.Model
	loginField    int
	loginFailed   bool

	// Settings form. settingsKind holds the provider choice until the
	// form is saved; Esc discards it with the rest of the edits.
	settingsField int
	settingsKind  model.ProviderKind
	keyInput      textinput.Model
	modelInput    textinput.Model

	// Statistics
	stats       admin.Stats
	usageTotals []admin.UsageTotals
}

// New builds the application model. usage may be nil when the usage log
// could not be opened.
func New(cfg *config.Config, st *storage.Store, sessions *session.Store, mgr *chat.Manager, usage *admin.UsageLog) *App {
	theme := styles.NewTheme(cfg.UI.Theme)

	input := textinput.New()
	input.Placeholder = "Type a message..."
	input.Prompt = "> "
	input.PromptStyle = theme.InputPrompt
	input.PlaceholderStyle = theme.InputPlaceholder
	input.CharLimit = 0
	input.Focus()

	email := textinput.New()
	email.Placeholder = "email"
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	totpCode := textinput.New()
	totpCode.Placeholder = "123456"
	totpCode.CharLimit = 6

	keyInput := textinput.New()
	keyInput.Placeholder = "API key"
	keyInput.EchoMode = textinput.EchoPassword
	keyInput.EchoCharacter = '*'

	modelInput := textinput.New()
	modelInput.Placeholder = "model name"

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	return &App{
		screen:        screenLoading,
		theme:         theme,
		keyMap:        DefaultKeyMap(),
		cfg:           cfg,
		store:         st,
		sessions:      sessions,
		mgr:           mgr,
		usage:         usage,
		viewport:      viewport.New(80, 20),
		input:         input,
		spinner:       sp,
		markdown:      newMarkdownRenderer(76, theme.IsDark),
		sidebar:       cfg.UI.ShowSidebar,
		emailInput:    email,
		passwordInput: password,
		totpInput:     totpCode,
		keyInput:      keyInput,
		modelInput:    modelInput,
	}
}

// Init hydrates the persisted session off the Bubble Tea loop.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			a.sessions.Hydrate()
			return hydratedMsg{}
		},
		textinput.Blink,
	)
}

// Update routes messages to the active screen.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case hydratedMsg:
		if a.sessions.Current() != nil {
			a.enterChat()
		} else {
			a.screen = screenLogin
		}
		return a, nil

	case sendDoneMsg:
		if msg.err != nil {
			a.errLine = msg.err.Error()
		}
		a.refreshViewport()
		return a, nil

	case statsLoadedMsg:
		a.stats = msg.stats
		a.usageTotals = msg.totals
		return a, nil

	case spinner.TickMsg:
		if !a.mgr.IsResponding() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		// The in-flight user message is already persisted; keep the
		// transcript current while waiting on the provider.
		a.refreshViewport()
		return a, cmd

	case tea.KeyMsg:
		if key.Matches(msg, a.keyMap.Quit) {
			return a, tea.Quit
		}
	}

	switch a.screen {
	case screenLoading:
		return a, nil
	case screenLogin:
		return a.updateLogin(msg)
	case screenChat:
		return a.updateChat(msg)
	case screenSettings:
		return a.updateSettings(msg)
	case screenStats:
		return a.updateStats(msg)
	}
	return a, nil
}

// View renders the active screen. Nothing renders while the persisted
// session is still being read, so the login form never flashes for a
// user who is already signed in.
func (a *App) View() string {
	switch a.screen {
	case screenLoading:
		return ""
	case screenLogin:
		return a.viewLogin()
	case screenChat:
		return a.viewChat()
	case screenSettings:
		return a.viewSettings()
	case screenStats:
		return a.viewStats()
	}
	return ""
}

// =============================================================================
// LAYOUT
// =============================================================================

// sidebarWidth is the fixed width of the chat list column.
const sidebarWidth = 24

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height
	a.theme.SetSize(width, height)

	vpWidth := width
	if a.sidebar {
		vpWidth -= sidebarWidth
	}
	if vpWidth < 20 {
		vpWidth = 20
	}
	// Header, input and status rows eat four lines.
	vpHeight := height - 4
	if vpHeight < 3 {
		vpHeight = 3
	}
	a.viewport.Width = vpWidth
	a.viewport.Height = vpHeight
	a.input.Width = width - 4
	a.markdown = newMarkdownRenderer(vpWidth-4, a.theme.IsDark)
	a.refreshViewport()
}

// enterChat switches to the chat screen and syncs the viewport.
func (a *App) enterChat() {
	a.screen = screenChat
	a.errLine = ""
	a.input.Focus()
	a.refreshViewport()
}

// sendCmd runs a full send round-trip off the update loop.
func (a *App) sendCmd(content string) tea.Cmd {
	return func() tea.Msg {
		err := a.mgr.Send(context.Background(), content)
		return sendDoneMsg{err: err}
	}
}

// loadStatsCmd collects conversation and usage statistics.
func (a *App) loadStatsCmd() tea.Cmd {
	return func() tea.Msg {
		msg := statsLoadedMsg{stats: admin.Collect(a.store)}
		if a.usage != nil {
			if totals, err := a.usage.Totals(); err == nil {
				msg.totals = totals
			}
		}
		return msg
	}
}
