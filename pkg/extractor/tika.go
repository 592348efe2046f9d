package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// TikaExtractor talks to an Apache Tika server over its REST API.
type TikaExtractor struct {
	BaseURL string
	Client  *http.Client
}

func NewTikaExtractor(baseURL string) *TikaExtractor {
	if baseURL == "" {
		baseURL = "http://localhost:9998"
	}
	return &TikaExtractor{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 60 * time.Second},
	}
}

var _ Provider = &TikaExtractor{}

func contentTypeFor(format string) string {
	switch strings.ToLower(format) {
	case "pdf":
		return "application/pdf"
	case "docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}

func (e *TikaExtractor) Extract(ctx context.Context, data []byte, format string) (*Extraction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, e.BaseURL+"/tika", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentTypeFor(format))
	req.Header.Set("Accept", "text/plain")

	resp, err := e.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tika request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("tika returned status %d: %s", resp.StatusCode, string(body))
	}

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read tika response: %w", err)
	}

	return &Extraction{
		Text:  strings.TrimSpace(string(text)),
		Pages: e.pageCount(ctx, data, format),
	}, nil
}

// pageCount asks the metadata endpoint for the page count. Extraction
// still succeeds without it, so failures just yield zero.
func (e *TikaExtractor) pageCount(ctx context.Context, data []byte, format string) int {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, e.BaseURL+"/meta", bytes.NewReader(data))
	if err != nil {
		return 0
	}
	req.Header.Set("Content-Type", contentTypeFor(format))
	req.Header.Set("Accept", "application/json")

	resp, err := e.Client.Do(req)
	if err != nil {
		return 0
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0
	}

	var meta map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return 0
	}

	for _, key := range []string{"xmpTPg:NPages", "meta:page-count", "Page-Count"} {
		switch v := meta[key].(type) {
		case string:
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		case float64:
			return int(v)
		}
	}
	return 0
}
