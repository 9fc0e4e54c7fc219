// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the non-TUI command surface of veriq: argument
// parsing and the ask, chat, config, status, and version handlers. The
// full-screen TUI remains the default when no command is given.
package cli
