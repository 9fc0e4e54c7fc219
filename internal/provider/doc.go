// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package provider implements the two LLM vendor adapters: an
// OpenAI-compatible chat-completions client and a Gemini-compatible
// generate-content client, behind a single Provider interface selected by
// model.ProviderKind.
//
// An adapter is pure request/response logic: given a conversation, an API
// key, and a model identifier it makes exactly one outbound HTTP call and
// returns the reply text or a classified error. Key fallback resolution,
// persistence, and retry policy all live with the caller; there is no retry
// here, and no local state is mutated.
package provider
