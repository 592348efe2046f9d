package ingest

import (
	"context"
	"encoding/base64"
	"path/filepath"
	"strings"

	"ai-chatbot-be/internal/pkg/logger"
	"ai-chatbot-be/pkg/extractor"
	"ai-chatbot-be/pkg/knowledge"
)

// DefaultChunkSize is the character budget for chunking long bodies of text.
const DefaultChunkSize = 1000

// Payload is the content of an uploaded file. Transports deliver either
// decoded text or raw bytes, and the two are kept distinct so parsers
// never have to guess whether a string holds base64.
type Payload interface {
	isPayload()
}

// Text is a UTF-8 text payload.
type Text string

// Binary is a raw byte payload.
type Binary []byte

func (Text) isPayload()   {}
func (Binary) isPayload() {}

// File is an uploaded file with its original name, which selects the parser.
type File struct {
	Name    string
	Payload Payload
}

// Parser turns a file payload into documents. Parsers never fail on
// malformed input; they return an empty slice and the caller reports
// that no content was extracted.
type Parser interface {
	Parse(ctx context.Context, payload Payload, label string) []knowledge.Document
}

// payloadText renders a payload as text. Binary payloads are assumed
// to already hold UTF-8.
func payloadText(p Payload) string {
	switch v := p.(type) {
	case Text:
		return string(v)
	case Binary:
		return string(v)
	default:
		return ""
	}
}

// payloadBytes renders a payload as raw bytes. Text payloads carrying
// base64 are decoded; anything else is taken verbatim.
func payloadBytes(p Payload) []byte {
	switch v := p.(type) {
	case Binary:
		return []byte(v)
	case Text:
		if decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(v))); err == nil {
			return decoded
		}
		return []byte(v)
	default:
		return nil
	}
}

// Dispatcher picks a parser by file extension. Unknown extensions fall
// back to the plain text parser.
type Dispatcher struct {
	text Parser
	csv  Parser
	json Parser
	pdf  Parser
	docx Parser
}

func NewDispatcher(extract extractor.Provider, log logger.ILogger) *Dispatcher {
	return &Dispatcher{
		text: &TextParser{},
		csv:  &CSVParser{},
		json: &JSONParser{},
		pdf:  NewDocumentParser("pdf", knowledge.TypePDF, extract, log),
		docx: NewDocumentParser("docx", knowledge.TypeDOCX, extract, log),
	}
}

func (d *Dispatcher) ParserFor(filename string) Parser {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "csv":
		return d.csv
	case "json":
		return d.json
	case "pdf":
		return d.pdf
	case "docx", "doc":
		return d.docx
	default:
		return d.text
	}
}

func (d *Dispatcher) Parse(ctx context.Context, file File) []knowledge.Document {
	return d.ParserFor(file.Name).Parse(ctx, file.Payload, file.Name)
}
