// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive terminal chat REPL.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/veriqai/veriq-tui/internal/chat"
	"github.com/veriqai/veriq-tui/internal/model"
)

// chatTimeout bounds a single turn in the REPL.
const chatTimeout = 2 * time.Minute

// HandleChat runs an interactive line-based chat session. Each line is
// sent as a user message; replies print inline. Slash commands control
// the session.
func HandleChat(mgr *chat.Manager) int {
	if !IsTTY() {
		fmt.Fprintln(os.Stderr, "Error: chat requires an interactive terminal (use 'veriq ask' for piped input)")
		return 1
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if mgr.Active() == nil {
		mgr.NewChat()
	}

	settings := mgr.Settings()
	fmt.Printf("veriq chat (%s, %s). Type /help for commands, /quit to exit.\n",
		settings.Provider.DisplayName(), settings.Model)

	for {
		input, err := line.Prompt("> ")
		if err != nil {
			// Ctrl-C or Ctrl-D ends the session.
			fmt.Println()
			return 0
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			if done := handleChatCommand(mgr, input); done {
				return 0
			}
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), chatTimeout)
		err = mgr.Send(ctx, input)
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		if reply, ok := lastAssistantMessage(mgr); ok {
			fmt.Println(renderOutput(reply))
		}
	}
}

// handleChatCommand processes a slash command. Returns true when the
// session should end.
func handleChatCommand(mgr *chat.Manager, input string) bool {
	fields := strings.Fields(input)
	switch fields[0] {
	case "/quit", "/exit", "/q":
		return true

	case "/new":
		c := mgr.NewChat()
		fmt.Printf("Started %s\n", c.Title)

	case "/list":
		for i, c := range mgr.Chats() {
			marker := " "
			if active := mgr.Active(); active != nil && active.ID == c.ID {
				marker = "*"
			}
			fmt.Printf("%s %2d. %s (%d messages)\n", marker, i+1, c.Title, c.MessageCount())
		}

	case "/history":
		active := mgr.Active()
		if active == nil {
			fmt.Println("No active chat")
			break
		}
		for _, msg := range active.Messages {
			fmt.Printf("[%s] %s\n", msg.Role.DisplayName(), msg.Content)
		}

	case "/model":
		if len(fields) < 2 {
			fmt.Printf("Model: %s\n", mgr.Settings().Model)
			break
		}
		s := mgr.Settings()
		s.Model = fields[1]
		mgr.UpdateSettings(s)
		fmt.Printf("Model set to %s\n", fields[1])

	case "/provider":
		if len(fields) < 2 {
			fmt.Printf("Provider: %s\n", mgr.Settings().Provider)
			break
		}
		kind := model.ProviderKind(strings.ToLower(fields[1]))
		if !kind.Valid() {
			fmt.Printf("Unknown provider %q (openai or google)\n", fields[1])
			break
		}
		s := mgr.Settings()
		s.Provider = kind
		mgr.UpdateSettings(s)
		fmt.Printf("Provider set to %s\n", kind.DisplayName())

	case "/help":
		fmt.Print(`Commands:
  /new             Start a new chat
  /list            List chats
  /history         Show the active chat's messages
  /model [name]    Show or set the model
  /provider [name] Show or set the provider (openai, google)
  /quit            Exit
`)

	default:
		fmt.Printf("Unknown command %s (try /help)\n", fields[0])
	}
	return false
}
