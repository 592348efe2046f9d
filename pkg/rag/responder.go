package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ai-chatbot-be/internal/pkg/logger"
	"ai-chatbot-be/pkg/knowledge"
	"ai-chatbot-be/pkg/llm"
)

const systemPrompt = "You are a helpful AI assistant. Use the provided context to answer questions accurately and helpfully. If the context doesn't contain relevant information, say so and provide a general helpful response."

// Config tunes retrieval. The threshold is a similarity floor; results
// scoring at or below it are discarded before context assembly.
type Config struct {
	TopK           int
	ScoreThreshold float64
}

func DefaultConfig() Config {
	return Config{TopK: 3, ScoreThreshold: 0.7}
}

// Responder answers end-user messages with retrieval-grounded completions.
type Responder struct {
	store    knowledge.Store
	provider llm.Provider
	config   Config
	logger   logger.ILogger
}

func NewResponder(store knowledge.Store, provider llm.Provider, config Config, log logger.ILogger) *Responder {
	if config.TopK <= 0 {
		config.TopK = DefaultConfig().TopK
	}
	if config.ScoreThreshold <= 0 {
		config.ScoreThreshold = DefaultConfig().ScoreThreshold
	}
	return &Responder{
		store:    store,
		provider: provider,
		config:   config,
		logger:   log,
	}
}

// Respond retrieves grounding context for the message and delegates to
// the completion provider. Retrieval failures degrade to an unaided
// completion; the user always gets a reply.
func (r *Responder) Respond(ctx context.Context, message string) string {
	grounding := r.buildContext(ctx, message)

	history := []llm.Message{{Role: "system", Content: systemPrompt}}
	if grounding != "" {
		history = append(history, llm.Message{Role: "system", Content: "Context: " + grounding})
	}
	history = append(history, llm.Message{Role: "user", Content: message})

	reply, err := r.provider.Chat(ctx, history)
	if err != nil {
		r.logger.Error("rag", "Completion failed", map[string]interface{}{"error": err.Error()})
		return completionErrorMessage(err)
	}
	return strings.TrimSpace(reply)
}

func (r *Responder) buildContext(ctx context.Context, message string) string {
	results, err := r.store.SearchSimilar(ctx, message, r.config.TopK)
	if err != nil {
		r.logger.Warn("rag", "Similarity search failed", map[string]interface{}{"error": err.Error()})
		return ""
	}

	var parts []string
	for _, result := range results {
		if result.Score > r.config.ScoreThreshold {
			parts = append(parts, result.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}

func completionErrorMessage(err error) string {
	switch {
	case errors.Is(err, llm.ErrAuth):
		return "Authentication failed. Please check the AI provider API key."
	case errors.Is(err, llm.ErrRateLimited):
		return "Rate limit exceeded. Please try again later."
	case errors.Is(err, llm.ErrBadRequest):
		return fmt.Sprintf("Invalid request. Please check the model configuration. Details: %v", err)
	default:
		return "Sorry, I encountered an error while processing your request."
	}
}
