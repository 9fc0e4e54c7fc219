// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package admin

import (
	"github.com/veriqai/veriq-tui/internal/model"
	"github.com/veriqai/veriq-tui/internal/storage"
)

// Stats is the aggregate view of locally stored conversations.
type Stats struct {
	TotalChats        int
	TotalMessages     int
	UserMessages      int
	AssistantMessages int

	// Provider and Model reflect the current settings record.
	Provider model.ProviderKind
	Model    string
}

// Collect computes statistics from the persisted history and settings.
func Collect(st *storage.Store) Stats {
	history := st.LoadHistory()
	settings := st.LoadSettings()

	stats := Stats{
		TotalChats: len(history),
		Provider:   settings.Provider,
		Model:      settings.Model,
	}

	for _, chat := range history {
		stats.TotalMessages += len(chat.Messages)
		for _, msg := range chat.Messages {
			switch msg.Role {
			case model.RoleUser:
				stats.UserMessages++
			case model.RoleAssistant:
				stats.AssistantMessages++
			}
		}
	}
	return stats
}
