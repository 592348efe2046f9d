package rag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-chatbot-be/internal/pkg/logger"
	"ai-chatbot-be/pkg/knowledge"
	"ai-chatbot-be/pkg/llm"
)

type stubStore struct {
	results []knowledge.SearchResult
	err     error
}

func (s *stubStore) EnsureCollection(ctx context.Context) error { return nil }

func (s *stubStore) AddDocuments(ctx context.Context, docs []knowledge.Document) (int, error) {
	return len(docs), nil
}

func (s *stubStore) SearchSimilar(ctx context.Context, query string, limit int) ([]knowledge.SearchResult, error) {
	return s.results, s.err
}

func (s *stubStore) Count(ctx context.Context) (int64, error) { return int64(len(s.results)), nil }

type stubProvider struct {
	history []llm.Message
	reply   string
	err     error
}

func (p *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.history = history
	return p.reply, p.err
}

func (p *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.reply, p.err
}

func contextMessage(history []llm.Message) (string, bool) {
	for _, msg := range history {
		if msg.Role == "system" && len(msg.Content) > 8 && msg.Content[:8] == "Context:" {
			return msg.Content, true
		}
	}
	return "", false
}

func TestRespondFiltersLowScores(t *testing.T) {
	store := &stubStore{results: []knowledge.SearchResult{
		{Content: "Open 9-5 on weekdays.", Score: 0.9},
		{Content: "Unrelated trivia.", Score: 0.5},
	}}
	provider := &stubProvider{reply: "We are open 9-5."}
	responder := NewResponder(store, provider, DefaultConfig(), logger.NewNopLogger())

	reply := responder.Respond(context.Background(), "When are you open?")
	assert.Equal(t, "We are open 9-5.", reply)

	grounding, ok := contextMessage(provider.history)
	require.True(t, ok)
	assert.Contains(t, grounding, "Open 9-5 on weekdays.")
	assert.NotContains(t, grounding, "Unrelated trivia.")
}

func TestRespondWithAllResultsBelowThreshold(t *testing.T) {
	store := &stubStore{results: []knowledge.SearchResult{
		{Content: "Weak match.", Score: 0.3},
	}}
	provider := &stubProvider{reply: "General answer."}
	responder := NewResponder(store, provider, DefaultConfig(), logger.NewNopLogger())

	reply := responder.Respond(context.Background(), "Anything?")
	assert.Equal(t, "General answer.", reply)

	_, ok := contextMessage(provider.history)
	assert.False(t, ok)
	require.NotEmpty(t, provider.history)
	assert.Equal(t, "user", provider.history[len(provider.history)-1].Role)
}

func TestRespondToleratesSearchFailure(t *testing.T) {
	store := &stubStore{err: knowledge.ErrBackendUnavailable}
	provider := &stubProvider{reply: "Still answering."}
	responder := NewResponder(store, provider, DefaultConfig(), logger.NewNopLogger())

	reply := responder.Respond(context.Background(), "Hello?")
	assert.Equal(t, "Still answering.", reply)
}

func TestRespondMapsProviderErrors(t *testing.T) {
	store := &stubStore{}
	provider := &stubProvider{err: llm.ErrRateLimited}
	responder := NewResponder(store, provider, DefaultConfig(), logger.NewNopLogger())

	reply := responder.Respond(context.Background(), "Hello?")
	assert.Equal(t, "Rate limit exceeded. Please try again later.", reply)
}

func TestCustomThresholdAndFanOut(t *testing.T) {
	store := &stubStore{results: []knowledge.SearchResult{
		{Content: "Mid-scoring chunk.", Score: 0.5},
	}}
	provider := &stubProvider{reply: "ok"}
	responder := NewResponder(store, provider, Config{TopK: 5, ScoreThreshold: 0.4}, logger.NewNopLogger())

	responder.Respond(context.Background(), "query")
	grounding, ok := contextMessage(provider.history)
	require.True(t, ok)
	assert.Contains(t, grounding, "Mid-scoring chunk.")
}
