// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package admin backs the read-only statistics view behind the login gate:
// aggregate counts over the persisted chat history plus a local SQLite
// usage log of send outcomes per provider. Recording usage is best-effort
// and never surfaces errors to the user.
package admin
