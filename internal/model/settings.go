// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "strings"

// =============================================================================
// PROVIDER KIND
// =============================================================================

// ProviderKind selects which LLM vendor API a request is built for.
type ProviderKind string

const (
	// ProviderOpenAI is the OpenAI-compatible chat-completions API.
	ProviderOpenAI ProviderKind = "openai"

	// ProviderGemini is the Gemini-compatible generate-content API.
	ProviderGemini ProviderKind = "google"
)

// Valid reports whether k names a known provider.
func (k ProviderKind) Valid() bool {
	return k == ProviderOpenAI || k == ProviderGemini
}

// DisplayName returns a human-readable provider name.
func (k ProviderKind) DisplayName() string {
	switch k {
	case ProviderOpenAI:
		return "OpenAI"
	case ProviderGemini:
		return "Gemini"
	default:
		return string(k)
	}
}

// =============================================================================
// SETTINGS TYPE
// =============================================================================

// Settings is the singleton user-configurable record: which provider to talk
// to, the user's API key, and the model identifier. It is mutated wholesale
// via an explicit save. Which model values make sense depends on the
// provider, but that pairing is advisory only; the provider adapters send
// whatever model they are given.
type Settings struct {
	Provider ProviderKind `json:"provider"`
	APIKey   string       `json:"apiKey"`
	Model    string       `json:"model"`
}

// DefaultSettings returns the settings used when nothing has been persisted.
func DefaultSettings() Settings {
	return Settings{
		Provider: ProviderOpenAI,
		APIKey:   "",
		Model:    "gpt-3.5-turbo",
	}
}

// DefaultModelFor returns the model used when switching to a provider
// without naming one.
func DefaultModelFor(k ProviderKind) string {
	if k == ProviderGemini {
		return "gemini-pro"
	}
	return "gpt-3.5-turbo"
}

// OwnsModel reports whether a model identifier belongs to the provider's
// family ("gpt-*" for OpenAI, "gemini-*" for Gemini).
func (k ProviderKind) OwnsModel(modelName string) bool {
	switch k {
	case ProviderOpenAI:
		return strings.HasPrefix(modelName, "gpt")
	case ProviderGemini:
		return strings.HasPrefix(modelName, "gemini")
	}
	return false
}

// Normalize fills in defaults for missing or unknown fields after a load.
func (s Settings) Normalize() Settings {
	def := DefaultSettings()
	if !s.Provider.Valid() {
		s.Provider = def.Provider
	}
	if s.Model == "" {
		s.Model = def.Model
	}
	return s
}
