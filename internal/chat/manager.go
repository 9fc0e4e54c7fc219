// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/veriqai/veriq-tui/internal/config"
	"github.com/veriqai/veriq-tui/internal/model"
	"github.com/veriqai/veriq-tui/internal/provider"
	"github.com/veriqai/veriq-tui/internal/storage"
)

// Error variables for send rejections. Provider failures are not among
// them: those are recovered into an inline assistant message.
var (
	// ErrBusy indicates a send is already outstanding.
	ErrBusy = errors.New("a response is already pending")

	// ErrNoAPIKey indicates neither the settings nor the config fallback
	// carry a key for the selected provider.
	ErrNoAPIKey = errors.New("no API key configured")
)

// factory builds the adapter for a provider kind; injectable for tests.
type factory func(kind model.ProviderKind) (provider.Provider, error)

// Recorder receives send outcomes for usage accounting. Satisfied by
// admin.UsageLog. Recording is fire-and-forget; implementations must not
// fail loudly.
type Recorder interface {
	Record(provider model.ProviderKind, modelName string, ok bool, detail string)
}

// =============================================================================
// MANAGER
// =============================================================================

// Manager owns the chat list, the active chat, and the singleton settings
// record, persisting each on change.
type Manager struct {
	mu      sync.Mutex
	storage *storage.Store
	cfg     *config.Config

	chats      []*model.Chat
	activeID   string
	settings   model.Settings
	responding bool

	newProvider factory
	recorder    Recorder
}

// NewManager creates a manager hydrated from storage.
func NewManager(st *storage.Store, cfg *config.Config) *Manager {
	m := &Manager{
		storage:  st,
		cfg:      cfg,
		chats:    st.LoadHistory(),
		settings: st.LoadSettings(),
	}
	m.newProvider = m.configuredProvider
	return m
}

// WithProviderFactory overrides adapter construction; used by tests to
// substitute a stub provider.
func (m *Manager) WithProviderFactory(f factory) *Manager {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.newProvider = f
	return m
}

// WithRecorder attaches a usage recorder notified after every provider call.
func (m *Manager) WithRecorder(r Recorder) *Manager {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorder = r
	return m
}

// ReloadConfig swaps in a freshly loaded config. Called by the config
// watcher; takes effect on the next send.
func (m *Manager) ReloadConfig(cfg *config.Config) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = cfg
}

// configuredProvider builds the real adapter for kind, applying any
// endpoint override from the config.
func (m *Manager) configuredProvider(kind model.ProviderKind) (provider.Provider, error) {
	p, err := provider.New(kind)
	if err != nil {
		return nil, err
	}
	if base := m.cfg.BaseURL(kind); base != "" {
		switch c := p.(type) {
		case *provider.OpenAIClient:
			c.WithBaseURL(base)
		case *provider.GeminiClient:
			c.WithBaseURL(base)
		}
	}
	return p, nil
}

// =============================================================================
// STATE ACCESSORS
// =============================================================================

// Chats returns a snapshot of the chat list, most recently created first.
// Entries are deep copies; callers can read them freely while a send is
// appending the reply under the lock.
func (m *Manager) Chats() []*model.Chat {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Chat, len(m.chats))
	for i, chat := range m.chats {
		out[i] = chat.Clone()
	}
	return out
}

// Active returns a snapshot of the active chat, or nil when none is
// selected.
func (m *Manager) Active() *model.Chat {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findLocked(m.activeID).Clone()
}

// IsResponding reports whether a send is outstanding.
func (m *Manager) IsResponding() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.responding
}

// Settings returns the current settings record.
func (m *Manager) Settings() model.Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings
}

// UpdateSettings replaces the settings record wholesale and persists it.
func (m *Manager) UpdateSettings(s model.Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = s.Normalize()
	m.storage.SaveSettings(m.settings)
}

// =============================================================================
// CHAT LIFECYCLE
// =============================================================================

// NewChat creates an empty chat at the head of the list and makes it
// active. The returned chat is a snapshot, like Active.
func (m *Manager) NewChat() *model.Chat {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createLocked().Clone()
}

func (m *Manager) createLocked() *model.Chat {
	chat := model.NewChat()
	m.chats = append([]*model.Chat{chat}, m.chats...)
	m.activeID = chat.ID
	m.storage.SaveHistory(m.chats)
	return chat
}

// Select switches the active chat. Unknown IDs are a no-op.
func (m *Manager) Select(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findLocked(id) == nil {
		return false
	}
	m.activeID = id
	return true
}

// Delete removes a chat from the list. Deleting the active chat clears the
// active pointer; deleting any other chat leaves it untouched.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, chat := range m.chats {
		if chat.ID == id {
			m.chats = append(m.chats[:i], m.chats[i+1:]...)
			if m.activeID == id {
				m.activeID = ""
			}
			m.storage.SaveHistory(m.chats)
			return
		}
	}
}

func (m *Manager) findLocked(id string) *model.Chat {
	if id == "" {
		return nil
	}
	for _, chat := range m.chats {
		if chat.ID == id {
			return chat
		}
	}
	return nil
}

// =============================================================================
// SEND
// =============================================================================

// Send appends a user message to the active chat (creating one when none is
// active), persists, and issues the provider call with the full message
// sequence. The reply, or an inline "**Error:** ..." message on provider
// failure, is appended to the originating chat and persisted.
//
// Send returns an error only for rejections that happen before anything is
// appended: a send already in flight, a missing API key, or an unknown
// provider. Provider failures after that point are recovered into the
// conversation and reported as nil.
func (m *Manager) Send(ctx context.Context, content string) error {
	m.mu.Lock()

	if m.responding {
		m.mu.Unlock()
		return ErrBusy
	}

	apiKey := m.settings.APIKey
	if apiKey == "" {
		apiKey = m.cfg.FallbackKey(m.settings.Provider)
	}
	if apiKey == "" {
		kind := m.settings.Provider
		m.mu.Unlock()
		return fmt.Errorf("%w for %s: add one in settings or the config file", ErrNoAPIKey, kind.DisplayName())
	}

	p, err := m.newProvider(m.settings.Provider)
	if err != nil {
		m.mu.Unlock()
		return err
	}

	target := m.findLocked(m.activeID)
	if target == nil {
		target = m.createLocked()
	}

	// User message lands and persists before the call goes out, so a
	// reload mid-flight always shows it.
	target.Append(model.NewUserMessage(content))
	m.storage.SaveHistory(m.chats)

	targetID := target.ID
	snapshot := make([]model.Message, len(target.Messages))
	copy(snapshot, target.Messages)
	modelName := m.settings.Model
	m.responding = true
	m.mu.Unlock()

	text, sendErr := p.Send(ctx, snapshot, apiKey, modelName)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.responding = false

	if m.recorder != nil {
		detail := ""
		if sendErr != nil {
			detail = sendErr.Error()
		}
		m.recorder.Record(m.settings.Provider, modelName, sendErr == nil, detail)
	}

	// The reply belongs to the chat it was sent from. If that chat was
	// deleted mid-flight the reply is discarded rather than misfiled.
	chat := m.findLocked(targetID)
	if chat == nil {
		return nil
	}

	if sendErr != nil {
		chat.Append(model.NewAssistantMessage("**Error:** " + sendErr.Error()))
	} else {
		chat.Append(model.NewAssistantMessage(text))
	}
	m.storage.SaveHistory(m.chats)
	return nil
}
