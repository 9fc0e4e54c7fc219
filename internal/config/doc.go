// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for veriq-tui.
//
// Configuration comes from a TOML file with environment variable overrides
// on top, in order of precedence:
//   - VERIQ_* environment variables
//   - ~/.veriq/config.toml
//   - built-in defaults
//
// The config carries the fallback API keys consulted when the user has not
// set a key in Settings, base URL overrides for the two provider APIs, the
// data directory for persisted records, and the optional admin TOTP secret.
package config
