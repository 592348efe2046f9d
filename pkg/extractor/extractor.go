package extractor

import "context"

// Extraction holds the plain text pulled out of a binary document.
type Extraction struct {
	Text  string
	Pages int
}

// Provider extracts text from binary document formats such as PDF and DOCX.
type Provider interface {
	Extract(ctx context.Context, data []byte, format string) (*Extraction, error)
}
