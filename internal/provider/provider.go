// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/veriqai/veriq-tui/internal/model"
)

// Transport constants shared by both adapters.
const (
	// DefaultTimeout bounds a single request; there is no retry on top.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize caps the response body read.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB
)

// sharedHTTPClient pools connections across all provider requests.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
	Timeout: DefaultTimeout,
}

// sendLimiter caps the outbound request rate across both adapters.
var sendLimiter = rate.NewLimiter(rate.Limit(2), 5)

// =============================================================================
// ERRORS
// =============================================================================

// Error variables for classified adapter failures.
var (
	// ErrNotConfigured indicates no API key was supplied.
	ErrNotConfigured = errors.New("API key is not configured")

	// ErrEmptyConversation indicates Send was called with no messages.
	ErrEmptyConversation = errors.New("conversation is empty")

	// ErrMalformedResponse indicates a success status whose body lacks the
	// expected content field.
	ErrMalformedResponse = errors.New("provider returned a malformed response")

	// ErrNoContent is the Gemini-specific absence of candidate text,
	// commonly a safety filter block. Distinct from ErrMalformedResponse so
	// callers can show the more specific message.
	ErrNoContent = errors.New("no content returned, possibly a safety block")
)

// APIError is a non-success HTTP response from a provider, with the message
// extracted from the provider's error envelope when present.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

// apiErrorEnvelope is the error body shape both vendor APIs share.
type apiErrorEnvelope struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// =============================================================================
// PROVIDER INTERFACE
// =============================================================================

// Provider sends a conversation to one vendor API and returns the reply
// text. Implementations make exactly one outbound call per invocation.
type Provider interface {
	// Kind identifies which vendor API this adapter speaks.
	Kind() model.ProviderKind

	// Send issues a single request carrying the ordered message sequence
	// and returns the assistant's reply text or a classified error.
	Send(ctx context.Context, messages []model.Message, apiKey, modelName string) (string, error)
}

// New returns the adapter for kind. Adding a provider means adding a case
// here and an implementation file, without touching any call site.
func New(kind model.ProviderKind) (Provider, error) {
	switch kind {
	case model.ProviderOpenAI:
		return NewOpenAIClient(), nil
	case model.ProviderGemini:
		return NewGeminiClient(), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", kind)
	}
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// checkSendPreconditions validates the arguments common to both adapters.
func checkSendPreconditions(messages []model.Message, apiKey string) error {
	if apiKey == "" {
		return ErrNotConfigured
	}
	if len(messages) == 0 {
		return ErrEmptyConversation
	}
	return nil
}

// readResponse reads the body with a size cap.
func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}
