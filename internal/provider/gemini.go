// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/veriqai/veriq-tui/internal/model"
)

// DefaultGeminiBaseURL is the standard Gemini-compatible endpoint root.
const DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// geminiMaxOutputTokens bounds the reply length requested from Gemini.
const geminiMaxOutputTokens = 2048

// =============================================================================
// WIRE TYPES
// =============================================================================

// geminiPart is one text fragment of a content turn.
type geminiPart struct {
	Text string `json:"text"`
}

// geminiContent is one turn in the generate-content wire format. Roles are
// "user" and "model"; there is no system role in this path.
type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

// geminiRequest is the generate-content request body.
type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// geminiResponse is the generate-content response body.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// =============================================================================
// GEMINI CLIENT
// =============================================================================

// GeminiClient speaks the Gemini-compatible generate-content API.
type GeminiClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewGeminiClient creates an adapter for the default Gemini endpoint.
func NewGeminiClient() *GeminiClient {
	return &GeminiClient{
		baseURL:    DefaultGeminiBaseURL,
		httpClient: sharedHTTPClient,
	}
}

// WithBaseURL points the adapter at a compatible endpoint.
func (c *GeminiClient) WithBaseURL(url string) *GeminiClient {
	c.baseURL = strings.TrimSuffix(url, "/")
	return c
}

// Kind identifies the adapter.
func (c *GeminiClient) Kind() model.ProviderKind {
	return model.ProviderGemini
}

// Send issues one generate-content request. Every message but the last
// becomes request history with roles translated (assistant -> model); the
// last message is the final user turn. The key travels as a query
// parameter, not a header.
func (c *GeminiClient) Send(ctx context.Context, messages []model.Message, apiKey, modelName string) (string, error) {
	if err := checkSendPreconditions(messages, apiKey); err != nil {
		return "", err
	}

	contents := make([]geminiContent, 0, len(messages))
	for _, msg := range messages[:len(messages)-1] {
		role := "user"
		if msg.Role == model.RoleAssistant {
			role = "model"
		}
		contents = append(contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: msg.Content}},
		})
	}
	last := messages[len(messages)-1]
	contents = append(contents, geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: last.Content}},
	})

	reqBody := geminiRequest{
		Contents: contents,
		GenerationConfig: geminiGenerationConfig{
			Temperature:     0.7,
			MaxOutputTokens: geminiMaxOutputTokens,
		},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	if err := sendLimiter.Wait(ctx); err != nil {
		return "", err
	}

	requestURL := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(modelName), url.QueryEscape(apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

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

	var genResp geminiResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	// An empty candidate set or a candidate without parts is how Gemini
	// reports a safety filter block on a 200.
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 ||
		genResp.Candidates[0].Content.Parts[0].Text == "" {
		return "", ErrNoContent
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}
