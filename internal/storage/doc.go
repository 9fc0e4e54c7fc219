// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists veriq-tui's three records — chat history,
// provider settings, and the login session — as JSON files in the data
// directory.
//
// Loads never fail: missing or unparseable data is logged and treated as
// absent, yielding the documented defaults. Saves are atomic
// (temp file + fsync + rename) and persistence failures are logged and
// swallowed; the in-memory state remains authoritative for the running
// session. The records are independent; there is no transaction across them.
package storage
