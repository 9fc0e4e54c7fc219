// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/veriqai/veriq-tui/internal/model"
)

// DefaultOpenAIBaseURL is the standard OpenAI-compatible endpoint root.
const DefaultOpenAIBaseURL = "https://api.openai.com/v1"

// systemPrompt is prepended to every OpenAI-compatible conversation to keep
// replies in renderable Markdown.
const systemPrompt = `You are a helpful and expert AI assistant.
Format your answers using Markdown.
Use short paragraphs, headings (###), bullet points, and numbered lists for clarity.
If providing code, use code blocks with language specification.
Ensure the tone is professional, concise, and helpful.`

// =============================================================================
// WIRE TYPES
// =============================================================================

// chatMessage is one turn in the chat-completions wire format.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the chat-completions request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// chatResponse is the chat-completions response body.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// =============================================================================
// OPENAI CLIENT
// =============================================================================

// OpenAIClient speaks the OpenAI-compatible chat-completions API.
type OpenAIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewOpenAIClient creates an adapter for the default OpenAI endpoint.
func NewOpenAIClient() *OpenAIClient {
	return &OpenAIClient{
		baseURL:    DefaultOpenAIBaseURL,
		httpClient: sharedHTTPClient,
	}
}

// WithBaseURL points the adapter at a compatible endpoint, e.g. a proxy or
// a test server.
func (c *OpenAIClient) WithBaseURL(url string) *OpenAIClient {
	c.baseURL = strings.TrimSuffix(url, "/")
	return c
}

// Kind identifies the adapter.
func (c *OpenAIClient) Kind() model.ProviderKind {
	return model.ProviderOpenAI
}

// Send issues one chat-completions request: the fixed system instruction
// followed by the conversation in order, temperature 0.7, bearer-token auth.
func (c *OpenAIClient) Send(ctx context.Context, messages []model.Message, apiKey, modelName string) (string, error) {
	if err := checkSendPreconditions(messages, apiKey); err != nil {
		return "", err
	}

	wire := make([]chatMessage, 0, len(messages)+1)
	wire = append(wire, chatMessage{Role: "system", Content: systemPrompt})
	for _, msg := range messages {
		wire = append(wire, chatMessage{Role: msg.Role.String(), Content: msg.Content})
	}

	reqBody := chatRequest{
		Model:       modelName,
		Messages:    wire,
		Temperature: 0.7,
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	if err := sendLimiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := readResponse(resp)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", newAPIError(resp.StatusCode, body)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: missing message content", ErrMalformedResponse)
	}

	return chatResp.Choices[0].Message.Content, nil
}

// newAPIError builds an APIError from a non-success response, preferring the
// provider's own error envelope.
func newAPIError(status int, body []byte) error {
	var envelope apiErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return &APIError{Status: status, Message: envelope.Error.Message}
	}
	return &APIError{Status: status, Message: fmt.Sprintf("status %d", status)}
}
