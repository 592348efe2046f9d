package ingest

import (
	"context"
	"strings"

	"ai-chatbot-be/pkg/knowledge"
	"ai-chatbot-be/pkg/utils"
)

// TextParser handles plain text and markdown by chunking the body.
type TextParser struct{}

func (p *TextParser) Parse(ctx context.Context, payload Payload, label string) []knowledge.Document {
	text := strings.TrimSpace(payloadText(payload))
	if text == "" {
		return nil
	}

	chunks := utils.SplitIntoChunks(text, DefaultChunkSize)
	docs := make([]knowledge.Document, 0, len(chunks))
	for i, chunk := range chunks {
		docs = append(docs, knowledge.Document{
			Content: chunk,
			Metadata: map[string]interface{}{
				"type":         knowledge.TypeText,
				"source":       label,
				"chunk_index":  i,
				"total_chunks": len(chunks),
			},
		})
	}
	return docs
}
