package ingest

import (
	"context"
	"strings"

	"ai-chatbot-be/internal/pkg/logger"
	"ai-chatbot-be/pkg/extractor"
	"ai-chatbot-be/pkg/knowledge"
	"ai-chatbot-be/pkg/utils"
)

// DocumentParser handles binary formats (PDF, DOCX) by delegating text
// extraction to an external collaborator, then chunking the result.
type DocumentParser struct {
	format    string
	docType   string
	extractor extractor.Provider
	logger    logger.ILogger
}

func NewDocumentParser(format, docType string, extract extractor.Provider, log logger.ILogger) *DocumentParser {
	return &DocumentParser{
		format:    format,
		docType:   docType,
		extractor: extract,
		logger:    log,
	}
}

func (p *DocumentParser) Parse(ctx context.Context, payload Payload, label string) []knowledge.Document {
	data := payloadBytes(payload)
	if len(data) == 0 {
		return nil
	}

	extraction, err := p.extractor.Extract(ctx, data, p.format)
	if err != nil {
		p.logger.Warn("ingest", "Text extraction failed", map[string]interface{}{
			"format": p.format,
			"source": label,
			"error":  err.Error(),
		})
		return nil
	}

	text := strings.TrimSpace(extraction.Text)
	if text == "" {
		return nil
	}

	chunks := utils.SplitIntoChunks(text, DefaultChunkSize)
	docs := make([]knowledge.Document, 0, len(chunks))
	for i, chunk := range chunks {
		metadata := map[string]interface{}{
			"type":         p.docType,
			"source":       label,
			"chunk_index":  i,
			"total_chunks": len(chunks),
		}
		if extraction.Pages > 0 {
			metadata["pages"] = extraction.Pages
		}
		docs = append(docs, knowledge.Document{Content: chunk, Metadata: metadata})
	}
	return docs
}
