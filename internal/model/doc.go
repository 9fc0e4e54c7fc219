// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for veriq-tui: chats and their
// messages, user-facing provider settings, and the authenticated session
// record. These types carry no behavior beyond their own bookkeeping; the
// chat manager owns their lifecycle and the storage package persists them.
package model
