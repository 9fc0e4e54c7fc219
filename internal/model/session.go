// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// Session is the record of the currently authenticated user. Absence of a
// session (nil pointer at the session store) means no one is logged in.
type Session struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}

// RoleAdmin is the only role the single built-in account carries.
const RoleAdmin = "admin"

// IsAdmin reports whether the session belongs to an administrator.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}
