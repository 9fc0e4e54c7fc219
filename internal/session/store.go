// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"crypto/subtle"
	"sync"

	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"

	"github.com/veriqai/veriq-tui/internal/model"
	"github.com/veriqai/veriq-tui/internal/storage"
)

// The single built-in account. Baked-in credentials are a reproduced flaw,
// not a pattern to copy; see the package comment.
const (
	adminEmail = "openaimh@gmail.com"
	adminName  = "OpenAI MH"

	adminPassword = "admin123"
)

// adminPasswordHash is derived once at startup so login goes through a
// constant-time bcrypt comparison rather than a string equality check.
var adminPasswordHash = func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		panic("session: bcrypt hash generation failed: " + err.Error())
	}
	return hash
}()

// =============================================================================
// SESSION STORE
// =============================================================================

// Store holds the current session in memory and mirrors it to storage.
type Store struct {
	mu      sync.Mutex
	storage *storage.Store
	current *model.Session
	loading bool

	// totpSecret enables the optional second factor when non-empty.
	totpSecret string
}

// NewStore creates a session store backed by st. The store starts in the
// loading state; call Hydrate before rendering any protected view.
func NewStore(st *storage.Store) *Store {
	return &Store{
		storage: st,
		loading: true,
	}
}

// WithTOTPSecret requires a valid TOTP code at login.
func (s *Store) WithTOTPSecret(secret string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totpSecret = secret
	return s
}

// Hydrate restores a persisted session, if any, and clears the loading flag.
func (s *Store) Hydrate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = s.storage.LoadSession()
	s.loading = false
}

// =============================================================================
// SESSION BOUNDARY
// =============================================================================

// Current returns the active session, or nil when no one is logged in.
func (s *Store) Current() *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Loading reports whether hydration has not completed yet. Guards must
// render nothing (not a redirect) while this is true.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// =============================================================================
// LOGIN / LOGOUT
// =============================================================================

// Login authenticates against the built-in account. On success it installs
// and persists the session and returns true. On any mismatch it returns
// false with no further detail and no storage mutation.
func (s *Store) Login(email, password string) bool {
	return s.LoginTOTP(email, password, "")
}

// LoginTOTP is Login with an explicit one-time code. The code is only
// checked when a TOTP secret is configured; otherwise it is ignored.
func (s *Store) LoginTOTP(email, password, code string) bool {
	// Evaluate every factor before deciding, so a wrong email costs the
	// same as a wrong password.
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(adminEmail)) == 1
	passwordOK := bcrypt.CompareHashAndPassword(adminPasswordHash, []byte(password)) == nil

	s.mu.Lock()
	defer s.mu.Unlock()

	totpOK := true
	if s.totpSecret != "" {
		totpOK = totp.Validate(code, s.totpSecret)
	}

	if !emailOK || !passwordOK || !totpOK {
		return false
	}

	s.current = &model.Session{
		Email: adminEmail,
		Role:  model.RoleAdmin,
		Name:  adminName,
	}
	s.storage.SaveSession(s.current)
	return true
}

// Logout clears the session from memory and storage.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.storage.ClearSession()
}
