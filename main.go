// veriq TUI - A terminal chat client for OpenAI and Gemini compatible APIs.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/veriqai/veriq-tui/internal/admin"
	"github.com/veriqai/veriq-tui/internal/chat"
	"github.com/veriqai/veriq-tui/internal/cli"
	"github.com/veriqai/veriq-tui/internal/config"
	"github.com/veriqai/veriq-tui/internal/session"
	"github.com/veriqai/veriq-tui/internal/storage"
	"github.com/veriqai/veriq-tui/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI()

	case cli.CmdAsk:
		deps := buildDeps()
		defer deps.close()
		os.Exit(cli.HandleAsk(deps.manager, args.Query))

	case cli.CmdChat:
		deps := buildDeps()
		defer deps.close()
		os.Exit(cli.HandleChat(deps.manager))

	case cli.CmdConfig:
		os.Exit(cli.HandleConfig(args))

	case cli.CmdStatus:
		deps := buildDeps()
		defer deps.close()
		os.Exit(cli.HandleStatus(deps.store, deps.sessions, deps.usage))

	case cli.CmdVersion:
		cli.HandleVersion()

	case cli.CmdHelp:
		cli.HandleHelp()

	default:
		runTUI()
	}
}

// =============================================================================
// DEPENDENCY WIRING
// =============================================================================

// deps bundles the application services shared by the TUI and the CLI
// commands.
type deps struct {
	cfg      *config.Config
	store    *storage.Store
	sessions *session.Store
	manager  *chat.Manager
	usage    *admin.UsageLog
}

func (d *deps) close() {
	if d.usage != nil {
		d.usage.Close()
	}
}

// buildDeps loads configuration and constructs the service graph. A
// broken config is fatal; a broken usage log is not.
func buildDeps() *deps {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	st := storage.New(cfg.DataDir)
	sessions := session.NewStore(st).WithTOTPSecret(cfg.Admin.TOTPSecret)
	manager := chat.NewManager(st, cfg)

	usage, err := admin.OpenUsageLog(filepath.Join(cfg.DataDir, "usage.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: usage log unavailable: %v\n", err)
		usage = nil
	} else {
		manager.WithRecorder(usage)
	}

	return &deps{
		cfg:      cfg,
		store:    st,
		sessions: sessions,
		manager:  manager,
		usage:    usage,
	}
}

// =============================================================================
// TUI
// =============================================================================

// runTUI starts the full-screen interface.
func runTUI() {
	d := buildDeps()
	defer d.close()

	// Pick up config file edits while running. Endpoint and fallback-key
	// changes apply on the next send.
	if path, err := config.Path(); err == nil {
		watcher, werr := config.NewWatcher(path, func(next *config.Config) {
			d.manager.ReloadConfig(next)
		})
		if werr == nil {
			if werr = watcher.Watch(); werr == nil {
				defer watcher.Close()
			}
		}
	}

	app := ui.New(d.cfg, d.store, d.sessions, d.manager, d.usage)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running veriq: %v\n", err)
		os.Exit(1)
	}
}
