// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the full-screen terminal interface for veriq on
// Bubble Tea. The App model owns four screens: a login form backed by
// the session store, the chat view (sidebar, transcript, input), a
// provider settings form, and an admin statistics page. Nothing renders
// until the persisted session has been read, so a signed-in user never
// sees the login form flash.
package ui
