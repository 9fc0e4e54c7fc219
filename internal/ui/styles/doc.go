// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the veriq TUI:
// an adaptive color palette and a Theme struct holding every Lip Gloss
// style the views render with. Theme selection honors the configured
// "dark" or "light" preference and falls back to terminal background
// detection.
package styles
