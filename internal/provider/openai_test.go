// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/veriqai/veriq-tui/internal/model"
)

func userMessages(contents ...string) []model.Message {
	msgs := make([]model.Message, 0, len(contents))
	for _, c := range contents {
		msgs = append(msgs, model.NewUserMessage(c))
	}
	return msgs
}

func TestOpenAI_Send_Success(t *testing.T) {
	var gotBody chatRequest
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &gotBody); err != nil {
			t.Errorf("request body did not parse: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"Hello!"}}]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient().WithBaseURL(server.URL)
	got, err := client.Send(context.Background(), userMessages("Hi"), "sk-test", "gpt-3.5-turbo")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if got != "Hello!" {
		t.Errorf("reply = %q, want %q", got, "Hello!")
	}

	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if gotBody.Model != "gpt-3.5-turbo" {
		t.Errorf("model = %q", gotBody.Model)
	}
	if gotBody.Temperature != 0.7 {
		t.Errorf("temperature = %v, want 0.7", gotBody.Temperature)
	}

	// System instruction prepended, then the conversation in order.
	if len(gotBody.Messages) != 2 {
		t.Fatalf("wire messages = %d, want 2", len(gotBody.Messages))
	}
	if gotBody.Messages[0].Role != "system" || !strings.Contains(gotBody.Messages[0].Content, "Markdown") {
		t.Errorf("first wire message = %+v, want the system instruction", gotBody.Messages[0])
	}
	if gotBody.Messages[1].Role != "user" || gotBody.Messages[1].Content != "Hi" {
		t.Errorf("second wire message = %+v", gotBody.Messages[1])
	}
}

func TestOpenAI_Send_ErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key provided"}}`))
	}))
	defer server.Close()

	client := NewOpenAIClient().WithBaseURL(server.URL)
	_, err := client.Send(context.Background(), userMessages("Hi"), "sk-bad", "gpt-3.5-turbo")
	if err == nil {
		t.Fatal("Expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Errorf("Status = %d, want 401", apiErr.Status)
	}
	if apiErr.Message != "Incorrect API key provided" {
		t.Errorf("Message = %q, want the envelope message", apiErr.Message)
	}
}

func TestOpenAI_Send_ErrorWithoutEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream choked"))
	}))
	defer server.Close()

	client := NewOpenAIClient().WithBaseURL(server.URL)
	_, err := client.Send(context.Background(), userMessages("Hi"), "sk-test", "gpt-3.5-turbo")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Message != "status 502" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "status 502")
	}
}

func TestOpenAI_Send_MissingContent(t *testing.T) {
	bodies := []string{
		`{"choices":[]}`,
		`{"choices":[{"message":{}}]}`,
		`{}`,
		`not even json`,
	}

	for _, body := range bodies {
		body := body
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))

		client := NewOpenAIClient().WithBaseURL(server.URL)
		_, err := client.Send(context.Background(), userMessages("Hi"), "sk-test", "gpt-3.5-turbo")
		if !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("body %q: err = %v, want ErrMalformedResponse", body, err)
		}
		server.Close()
	}
}

func TestOpenAI_Send_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // Closed before use: connection refused.

	client := NewOpenAIClient().WithBaseURL(server.URL)
	_, err := client.Send(context.Background(), userMessages("Hi"), "sk-test", "gpt-3.5-turbo")
	if err == nil {
		t.Fatal("Expected transport error")
	}
	if !strings.Contains(err.Error(), "request failed") {
		t.Errorf("err = %v, want a transport failure", err)
	}
}

func TestOpenAI_Send_Preconditions(t *testing.T) {
	client := NewOpenAIClient()

	_, err := client.Send(context.Background(), userMessages("Hi"), "", "gpt-3.5-turbo")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("empty key: err = %v, want ErrNotConfigured", err)
	}

	_, err = client.Send(context.Background(), nil, "sk-test", "gpt-3.5-turbo")
	if !errors.Is(err, ErrEmptyConversation) {
		t.Errorf("no messages: err = %v, want ErrEmptyConversation", err)
	}
}

func TestNew_Factory(t *testing.T) {
	p, err := New(model.ProviderOpenAI)
	if err != nil {
		t.Fatalf("New(openai) failed: %v", err)
	}
	if p.Kind() != model.ProviderOpenAI {
		t.Errorf("Kind = %q", p.Kind())
	}

	p, err = New(model.ProviderGemini)
	if err != nil {
		t.Fatalf("New(gemini) failed: %v", err)
	}
	if p.Kind() != model.ProviderGemini {
		t.Errorf("Kind = %q", p.Kind())
	}

	if _, err := New("mystery"); err == nil {
		t.Error("Expected error for unknown provider kind")
	}
}
