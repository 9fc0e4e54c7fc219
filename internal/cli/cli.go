// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing for veriq.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdConfig
	CmdStatus
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Query is the one-shot question for ask.
	Query string

	// ConfigKey/ConfigVal select a config field for get/set.
	ConfigKey string
	ConfigVal string

	// Subcommand is the first positional argument after the command.
	Subcommand string

	// Raw args remaining after parsing.
	Raw []string
}

// Parse reads os.Args and returns the command to run. No arguments means
// the TUI.
func Parse() (Command, Args) {
	args := os.Args[1:]
	var parsed Args

	if len(args) == 0 {
		return CmdTUI, parsed
	}

	cmd := strings.ToLower(args[0])
	remaining := args[1:]
	parsed.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsed

	case "ask":
		parsed.Query = strings.Join(remaining, " ")
		return CmdAsk, parsed

	case "chat":
		return CmdChat, parsed

	case "config":
		if len(remaining) > 0 {
			parsed.Subcommand = remaining[0]
		}
		if len(remaining) > 1 {
			parsed.ConfigKey = remaining[1]
		}
		if len(remaining) > 2 {
			parsed.ConfigVal = remaining[2]
		}
		return CmdConfig, parsed

	case "status", "stats":
		return CmdStatus, parsed

	case "version", "--version", "-v":
		return CmdVersion, parsed

	case "help", "--help", "-h":
		return CmdHelp, parsed

	default:
		// Unknown word: treat the whole line as an ask query.
		parsed.Query = strings.Join(args, " ")
		return CmdAsk, parsed
	}
}

// HandleVersion prints version information.
func HandleVersion() {
	fmt.Printf("veriq %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}

// HandleHelp prints usage.
func HandleHelp() {
	fmt.Print(`veriq - terminal chat client for OpenAI and Gemini compatible APIs

Usage:
  veriq                 Start the full-screen TUI
  veriq ask <question>  Ask a one-shot question and print the answer
  veriq chat            Start an interactive chat session in the terminal
  veriq config show     Show the current configuration
  veriq config set <key> <value>
                        Set a configuration value
  veriq status          Show stored-conversation statistics (admin login required)
  veriq version         Print version information

Configuration lives in ~/.veriq/config.toml; chat history and settings in
the data directory (default ~/.veriq). Environment overrides use the
VERIQ_* prefix, e.g. VERIQ_OPENAI_KEY.
`)
}
