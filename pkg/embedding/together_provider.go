package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TogetherProvider implements Provider against the Together AI
// embeddings endpoint (e.g. BAAI/bge-base-en-v1.5, 768 dimensions).
type TogetherProvider struct {
	APIKey  string
	BaseURL string
	Model   string
	Client  *http.Client
}

func NewTogetherProvider(apiKey, baseURL, model string) Provider {
	if baseURL == "" {
		baseURL = "https://api.together.xyz/v1"
	}
	if model == "" {
		model = "BAAI/bge-base-en-v1.5"
	}
	return &TogetherProvider{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Model:   model,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type togetherEmbeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type togetherEmbeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

func (p *TogetherProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrUnembeddable
	}

	reqBody := togetherEmbeddingRequest{
		Model: p.Model,
		Input: text,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/embeddings", p.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusBadRequest {
		// Together rejects over-length input with a 400
		return nil, fmt.Errorf("%w: %s", ErrUnembeddable, string(bodyBytes))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("together embedding error: status %d, body %s", resp.StatusCode, string(bodyBytes))
	}

	var togetherResp togetherEmbeddingResponse
	if err := json.Unmarshal(bodyBytes, &togetherResp); err != nil {
		return nil, err
	}
	if len(togetherResp.Data) == 0 {
		return nil, fmt.Errorf("together embedding: empty response")
	}

	values := make([]float32, len(togetherResp.Data[0].Embedding))
	for i, v := range togetherResp.Data[0].Embedding {
		values[i] = float32(v)
	}

	return normalizeVector(values), nil
}
