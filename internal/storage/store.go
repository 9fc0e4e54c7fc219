// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/veriqai/veriq-tui/internal/model"
	"github.com/veriqai/veriq-tui/internal/util"
)

// File names for the three persisted records.
const (
	historyFile  = "history.json"
	settingsFile = "settings.json"
	sessionFile  = "session.json"
)

// =============================================================================
// STORE
// =============================================================================

// Store reads and writes the persisted records under a single directory.
type Store struct {
	// Dir is the data directory, typically ~/.veriq.
	Dir string
}

// New creates a store rooted at dir. The directory is created lazily on the
// first save.
func New(dir string) *Store {
	return &Store{Dir: dir}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.Dir, name)
}

// =============================================================================
// HISTORY
// =============================================================================

// LoadHistory returns the persisted chat list, or an empty list when the
// record is absent or does not parse. It never fails.
func (s *Store) LoadHistory() []*model.Chat {
	var chats []*model.Chat
	if !s.load(historyFile, &chats) || chats == nil {
		return []*model.Chat{}
	}
	return chats
}

// SaveHistory persists the chat list. Failures are logged and swallowed.
func (s *Store) SaveHistory(chats []*model.Chat) {
	s.save(historyFile, chats)
}

// =============================================================================
// SETTINGS
// =============================================================================

// LoadSettings returns the persisted settings, or the defaults when the
// record is absent or does not parse. It never fails.
func (s *Store) LoadSettings() model.Settings {
	var settings model.Settings
	if !s.load(settingsFile, &settings) {
		return model.DefaultSettings()
	}
	return settings.Normalize()
}

// SaveSettings persists the settings record wholesale. Failures are logged
// and swallowed.
func (s *Store) SaveSettings(settings model.Settings) {
	s.save(settingsFile, settings)
}

// =============================================================================
// SESSION
// =============================================================================

// LoadSession returns the persisted session, or nil when absent or
// unparseable.
func (s *Store) LoadSession() *model.Session {
	var session model.Session
	if !s.load(sessionFile, &session) || session.Email == "" {
		return nil
	}
	return &session
}

// SaveSession persists the session record.
func (s *Store) SaveSession(session *model.Session) {
	if session == nil {
		s.ClearSession()
		return
	}
	s.save(sessionFile, session)
}

// ClearSession removes the persisted session.
func (s *Store) ClearSession() {
	if err := os.Remove(s.path(sessionFile)); err != nil && !os.IsNotExist(err) {
		log.Printf("storage: failed to clear session: %v", err)
	}
}

// =============================================================================
// INTERNAL READ/WRITE
// =============================================================================

// load reads and unmarshals one record. It reports whether v was populated;
// missing files are silent, parse failures are logged and treated as absent.
func (s *Store) load(name string, v any) bool {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("storage: failed to read %s: %v", name, err)
		}
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("storage: failed to parse %s: %v", name, err)
		return false
	}
	return true
}

// save marshals and atomically writes one record, logging failures.
func (s *Store) save(name string, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("storage: failed to encode %s: %v", name, err)
		return
	}
	if err := util.AtomicWriteFile(s.path(name), data, 0600); err != nil {
		log.Printf("storage: failed to save %s: %v", name, err)
	}
}
