package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anjali642004/docuspark-cli/internal/core/domain"
	"github.com/anjali642004/docuspark-cli/internal/core/ports/driven"
)

func textResponse(texts ...string) map[string]any {
	content := make([]map[string]any, len(texts))
	for i, text := range texts {
		content[i] = map[string]any{"type": "text", "text": text}
	}
	return map[string]any{"content": content}
}

func TestNewLLMService_RequiresAPIKey(t *testing.T) {
	_, err := NewLLMService(Config{})
	assert.ErrorIs(t, err, domain.ErrMissingCredential)
}

func TestNewLLMService_Defaults(t *testing.T) {
	s, err := NewLLMService(Config{APIKey: "test-key"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, s.ModelName())
}

func TestChat_Success(t *testing.T) {
	var gotReq messagesRequest
	var gotKey, gotVersion string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(textResponse("The answer is 42."))
	}))
	defer server.Close()

	s, err := NewLLMService(Config{APIKey: "test-key", BaseURL: server.URL, Model: "claude-test"})
	require.NoError(t, err)

	answer, err := s.Chat(context.Background(), []driven.ChatMessage{
		{Role: "system", Content: "You answer questions."},
		{Role: "user", Content: "What is the answer?"},
	}, driven.ChatOptions{MaxTokens: 500, Temperature: 0.2})
	require.NoError(t, err)

	assert.Equal(t, "The answer is 42.", answer)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, anthropicVersion, gotVersion)
	assert.Equal(t, "claude-test", gotReq.Model)
	assert.Equal(t, 500, gotReq.MaxTokens)
	assert.Equal(t, 0.2, gotReq.Temperature)

	// System message rides the dedicated field, not the message list.
	assert.Equal(t, "You answer questions.", gotReq.System)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
}

func TestChat_DefaultMaxTokens(t *testing.T) {
	var gotReq messagesRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(textResponse("ok"))
	}))
	defer server.Close()

	s, err := NewLLMService(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = s.Chat(context.Background(), []driven.ChatMessage{
		{Role: "user", Content: "hi"},
	}, driven.ChatOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1024, gotReq.MaxTokens)
}

func TestChat_ConcatenatesTextBlocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(textResponse("part one ", "part two"))
	}))
	defer server.Close()

	s, err := NewLLMService(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	answer, err := s.Chat(context.Background(), []driven.ChatMessage{
		{Role: "user", Content: "hi"},
	}, driven.ChatOptions{})
	require.NoError(t, err)
	assert.Equal(t, "part one part two", answer)
}

func TestChat_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"type": "invalid_request_error", "message": "model not found"},
		})
	}))
	defer server.Close()

	s, err := NewLLMService(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = s.Chat(context.Background(), []driven.ChatMessage{
		{Role: "user", Content: "hi"},
	}, driven.ChatOptions{})
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
	assert.Contains(t, err.Error(), "model not found")
}

func TestChat_EmptyCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"content": []map[string]any{}})
	}))
	defer server.Close()

	s, err := NewLLMService(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = s.Chat(context.Background(), []driven.ChatMessage{
		{Role: "user", Content: "hi"},
	}, driven.ChatOptions{})
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
}

func TestChat_NoMessages(t *testing.T) {
	s, err := NewLLMService(Config{APIKey: "test-key"})
	require.NoError(t, err)

	_, err = s.Chat(context.Background(), []driven.ChatMessage{
		{Role: "system", Content: "only instructions"},
	}, driven.ChatOptions{})
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
}

func TestGenerate_WrapsSinglePrompt(t *testing.T) {
	var gotReq messagesRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(textResponse("pong"))
	}))
	defer server.Close()

	s, err := NewLLMService(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	answer, err := s.Generate(context.Background(), "ping", driven.GenerateOptions{MaxTokens: 8})
	require.NoError(t, err)
	assert.Equal(t, "pong", answer)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "ping", gotReq.Messages[0].Content)
	assert.Equal(t, 8, gotReq.MaxTokens)
}

func TestChat_ServerUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	s, err := NewLLMService(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = s.Chat(context.Background(), []driven.ChatMessage{
		{Role: "user", Content: "hi"},
	}, driven.ChatOptions{})
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
}
