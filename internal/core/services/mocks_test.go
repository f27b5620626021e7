package services

import (
	"context"
	"io"
	"strings"

	"github.com/anjali642004/docuspark-cli/internal/core/domain"
	"github.com/anjali642004/docuspark-cli/internal/core/ports/driven"
)

// mockExtractor returns canned pages and records its invocations.
type mockExtractor struct {
	pages []domain.Page
	err   error
	calls int
}

func (m *mockExtractor) ExtractPages(_ context.Context, _ io.Reader, _ string) ([]domain.Page, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.pages, nil
}

// mockEmbedder produces keyword-keyed vectors so tests control
// similarity. Texts containing a key score towards that key's axis.
type mockEmbedder struct {
	keys       []string
	err        error
	batchErr   error
	batchSizes []int
	embedCalls int
}

func (m *mockEmbedder) vector(text string) []float32 {
	vec := make([]float32, len(m.keys)+1)
	matched := false
	for i, key := range m.keys {
		if strings.Contains(strings.ToLower(text), strings.ToLower(key)) {
			vec[i] = 1
			matched = true
		}
	}
	if !matched {
		vec[len(m.keys)] = 1
	}
	return vec
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.embedCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.vector(text), nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.batchSizes = append(m.batchSizes, len(texts))
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = m.vector(text)
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int              { return len(m.keys) + 1 }
func (m *mockEmbedder) ModelName() string            { return "mock-embedding" }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error                 { return nil }

// mockLLM returns a fixed answer and captures the messages it was sent.
type mockLLM struct {
	answer   string
	err      error
	messages []driven.ChatMessage
	calls    int
}

func (m *mockLLM) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	return m.Chat(ctx, []driven.ChatMessage{{Role: "user", Content: prompt}}, driven.ChatOptions(opts))
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	m.calls++
	m.messages = messages
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}

func (m *mockLLM) ModelName() string            { return "mock-llm" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

var (
	_ driven.PageExtractor    = (*mockExtractor)(nil)
	_ driven.EmbeddingService = (*mockEmbedder)(nil)
	_ driven.LLMService       = (*mockLLM)(nil)
)
