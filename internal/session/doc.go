// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the single authenticated-user record in memory,
// backed by the storage package so a login survives restarts.
//
// Login compares against one fixed credential pair baked into the binary.
// That is inherently insecure — anyone with the binary can recover the
// credentials — and is kept only because it is the behavior being
// reproduced; a real deployment must authenticate against a server-side
// credential store or token issuer. When a TOTP secret is configured, login
// additionally requires a valid one-time code.
//
// Consumers that guard protected views must check Loading before Current:
// until Hydrate has run, "no session yet" is indistinguishable from "not
// logged in", and rendering a login redirect during that window flashes.
package session
