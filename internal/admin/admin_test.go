// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package admin

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veriqai/veriq-tui/internal/model"
	"github.com/veriqai/veriq-tui/internal/storage"
)

func TestCollect_EmptyStore(t *testing.T) {
	stats := Collect(storage.New(t.TempDir()))

	assert.Equal(t, 0, stats.TotalChats)
	assert.Equal(t, 0, stats.TotalMessages)
	assert.Equal(t, model.ProviderOpenAI, stats.Provider)
	assert.Equal(t, "gpt-3.5-turbo", stats.Model)
}

func TestCollect_CountsMessages(t *testing.T) {
	st := storage.New(t.TempDir())

	first := model.NewChat()
	first.Append(model.NewUserMessage("q1"))
	first.Append(model.NewAssistantMessage("a1"))

	second := model.NewChat()
	second.Append(model.NewUserMessage("q2"))

	st.SaveHistory([]*model.Chat{first, second})
	st.SaveSettings(model.Settings{Provider: model.ProviderGemini, Model: "gemini-pro"})

	stats := Collect(st)

	assert.Equal(t, 2, stats.TotalChats)
	assert.Equal(t, 3, stats.TotalMessages)
	assert.Equal(t, 2, stats.UserMessages)
	assert.Equal(t, 1, stats.AssistantMessages)
	assert.Equal(t, model.ProviderGemini, stats.Provider)
	assert.Equal(t, "gemini-pro", stats.Model)
}

func TestUsageLog_RecordAndTotals(t *testing.T) {
	u, err := OpenUsageLog(filepath.Join(t.TempDir(), "usage.db"))
	require.NoError(t, err)
	defer u.Close()

	u.Record(model.ProviderOpenAI, "gpt-3.5-turbo", true, "")
	u.Record(model.ProviderOpenAI, "gpt-3.5-turbo", false, "status 500")
	u.Record(model.ProviderGemini, "gemini-pro", true, "")

	totals, err := u.Totals()
	require.NoError(t, err)
	require.Len(t, totals, 2)

	byProvider := make(map[model.ProviderKind]UsageTotals)
	for _, tt := range totals {
		byProvider[tt.Provider] = tt
	}

	assert.Equal(t, 2, byProvider[model.ProviderOpenAI].Requests)
	assert.Equal(t, 1, byProvider[model.ProviderOpenAI].Failures)
	assert.Equal(t, 1, byProvider[model.ProviderGemini].Requests)
	assert.Equal(t, 0, byProvider[model.ProviderGemini].Failures)
}

func TestUsageLog_EmptyTotals(t *testing.T) {
	u, err := OpenUsageLog(filepath.Join(t.TempDir(), "usage.db"))
	require.NoError(t, err)
	defer u.Close()

	totals, err := u.Totals()
	require.NoError(t, err)
	assert.Empty(t, totals)
}

func TestUsageLog_ReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.db")

	u, err := OpenUsageLog(path)
	require.NoError(t, err)
	u.Record(model.ProviderOpenAI, "gpt-4o", true, "")
	require.NoError(t, u.Close())

	u, err = OpenUsageLog(path)
	require.NoError(t, err)
	defer u.Close()

	totals, err := u.Totals()
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, 1, totals[0].Requests)
}
