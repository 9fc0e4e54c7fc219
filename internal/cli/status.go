// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - 'veriq status' admin statistics handler.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/veriqai/veriq-tui/internal/admin"
	"github.com/veriqai/veriq-tui/internal/session"
	"github.com/veriqai/veriq-tui/internal/storage"
)

// HandleStatus prints stored-conversation statistics after an admin
// login. When a usage log is available its per-provider totals print too.
func HandleStatus(st *storage.Store, sessions *session.Store, usage *admin.UsageLog) int {
	sessions.Hydrate()

	if sessions.Current() == nil {
		if !IsTTY() {
			fmt.Fprintln(os.Stderr, "Error: status requires an admin login (run from a terminal)")
			return 1
		}
		if !promptLogin(sessions) {
			fmt.Fprintln(os.Stderr, "Error: invalid credentials")
			return 1
		}
	}

	current := sessions.Current()
	fmt.Printf("Logged in as %s (%s)\n\n", current.Name, current.Email)

	stats := admin.Collect(st)
	fmt.Printf("Provider:           %s\n", stats.Provider)
	fmt.Printf("Model:              %s\n", stats.Model)
	fmt.Printf("Chats:              %d\n", stats.TotalChats)
	fmt.Printf("Messages:           %d\n", stats.TotalMessages)
	fmt.Printf("  from you:         %d\n", stats.UserMessages)
	fmt.Printf("  from assistant:   %d\n", stats.AssistantMessages)

	if usage == nil {
		return 0
	}
	totals, err := usage.Totals()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: usage log unavailable: %v\n", err)
		return 0
	}
	if len(totals) > 0 {
		fmt.Println("\nAPI usage:")
		for _, t := range totals {
			fmt.Printf("  %-10s %d requests, %d failures\n", t.Provider, t.Requests, t.Failures)
		}
	}
	return 0
}

// promptLogin reads credentials from the terminal and attempts a login.
// A TOTP code is requested only when one is required.
func promptLogin(sessions *session.Store) bool {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	email = strings.TrimSpace(email)

	fmt.Print("Password: ")
	passBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return false
	}

	if sessions.Login(email, string(passBytes)) {
		return true
	}

	// Retry with a TOTP code in case one is configured.
	fmt.Print("TOTP code (blank if none): ")
	code, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}
	return sessions.LoginTOTP(email, string(passBytes), code)
}
