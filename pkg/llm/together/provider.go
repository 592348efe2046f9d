package together

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ai-chatbot-be/pkg/llm"
)

type TogetherProvider struct {
	APIKey    string
	BaseURL   string
	ModelName string
	Client    *http.Client
}

// Ensure TogetherProvider implements Provider
var _ llm.Provider = &TogetherProvider{}

func NewTogetherProvider(apiKey, baseURL, modelName string) *TogetherProvider {
	if baseURL == "" {
		baseURL = "https://api.together.xyz/v1"
	}
	if modelName == "" {
		modelName = "meta-llama/Llama-2-70b-chat-hf"
	}
	return &TogetherProvider{
		APIKey:    apiKey,
		BaseURL:   strings.TrimRight(baseURL, "/"),
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type togetherChatRequest struct {
	Model       string            `json:"model"`
	Messages    []togetherMessage `json:"messages"`
	MaxTokens   int               `json:"max_tokens,omitempty"`
	Temperature float64           `json:"temperature,omitempty"`
	TopP        float64           `json:"top_p,omitempty"`
	Stream      bool              `json:"stream"`
}

type togetherMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type togetherChatResponse struct {
	Choices []struct {
		Message togetherMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// --- Interface Implementation ---

func (t *TogetherProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	// 1. Process Options
	options := &llm.Options{
		Temperature: 0.7, // Default
		MaxTokens:   512,
	}
	for _, opt := range opts {
		opt(options)
	}

	// 2. Map generic messages to Together messages
	messages := make([]togetherMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		messages[i] = togetherMessage{
			Role:    role,
			Content: msg.Content,
		}
	}

	model := t.ModelName
	if options.Model != "" {
		model = options.Model
	}

	reqPayload := togetherChatRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   options.MaxTokens,
		Temperature: options.Temperature,
		TopP:        0.9,
		Stream:      false,
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	// 3. Send Request
	url := t.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+t.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("together request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	// 4. Map status codes to inspectable reasons
	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to parsing
	case http.StatusUnauthorized:
		return "", fmt.Errorf("%w: status 401", llm.ErrAuth)
	case http.StatusTooManyRequests:
		return "", fmt.Errorf("%w: status 429", llm.ErrRateLimited)
	case http.StatusBadRequest:
		detail := string(bodyBytes)
		var parsed togetherChatResponse
		if json.Unmarshal(bodyBytes, &parsed) == nil && parsed.Error != nil {
			detail = parsed.Error.Message
		}
		return "", fmt.Errorf("%w: %s", llm.ErrBadRequest, detail)
	default:
		return "", fmt.Errorf("together error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	// 5. Parse Response
	var togetherResp togetherChatResponse
	if err := json.Unmarshal(bodyBytes, &togetherResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(togetherResp.Choices) == 0 {
		return "", fmt.Errorf("together response contains no choices")
	}

	return strings.TrimSpace(togetherResp.Choices[0].Message.Content), nil
}

func (t *TogetherProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	// Reuse Chat for simplicity as most new LLMs are chat-optimized
	return t.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
