// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across veriq-tui: atomic file
// writes for the persistence layer and rune-safe string truncation for chat
// titles and previews.
package util
