// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot question handling.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/veriqai/veriq-tui/internal/chat"
	"github.com/veriqai/veriq-tui/internal/model"
)

// askTimeout bounds a one-shot request.
const askTimeout = 2 * time.Minute

// HandleAsk sends a single question through a fresh conversation and
// prints the reply to stdout. Exit code 1 on failure.
func HandleAsk(mgr *chat.Manager, query string) int {
	query = strings.TrimSpace(query)
	if query == "" {
		fmt.Fprintln(os.Stderr, "Error: no question provided")
		fmt.Fprintln(os.Stderr, "Usage: veriq ask <question>")
		return 1
	}

	mgr.NewChat()

	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	if err := mgr.Send(ctx, query); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	reply, ok := lastAssistantMessage(mgr)
	if !ok {
		fmt.Fprintln(os.Stderr, "Error: no response received")
		return 1
	}
	fmt.Println(renderOutput(reply))
	return 0
}

// lastAssistantMessage returns the assistant reply that closed the active
// chat's latest turn.
func lastAssistantMessage(mgr *chat.Manager) (string, bool) {
	active := mgr.Active()
	if active == nil {
		return "", false
	}
	last, ok := active.LastMessage()
	if !ok || last.Role != model.RoleAssistant {
		return "", false
	}
	return last.Content, true
}

// renderOutput renders markdown for interactive terminals and passes
// content through unchanged for pipes and dumb terminals.
func renderOutput(content string) string {
	if !IsStdoutTTY() || ColorProfile() == termenv.Ascii {
		return content
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(TerminalWidth()),
	)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}
