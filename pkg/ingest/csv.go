package ingest

import (
	"context"
	"fmt"
	"strings"

	"ai-chatbot-be/pkg/knowledge"
)

// CSVParser turns a question,answer table into FAQ documents. The first
// non-blank line is treated as the header and skipped.
type CSVParser struct{}

func (p *CSVParser) Parse(ctx context.Context, payload Payload, label string) []knowledge.Document {
	lines := strings.Split(payloadText(payload), "\n")

	docs := make([]knowledge.Document, 0, len(lines))
	headerSeen := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !headerSeen {
			headerSeen = true
			continue
		}

		fields := splitCSVLine(line)
		if len(fields) < 2 || fields[0] == "" || fields[1] == "" {
			continue
		}

		question, answer := fields[0], fields[1]
		docs = append(docs, knowledge.Document{
			Content: fmt.Sprintf("Q: %s\nA: %s", question, answer),
			Metadata: map[string]interface{}{
				"type":     knowledge.TypeFAQ,
				"question": question,
				"answer":   answer,
				"source":   label,
			},
		})
	}
	return docs
}

// splitCSVLine splits on commas with quote-aware scanning. A double
// quote toggles an in-quotes flag; commas inside quotes are kept as
// field content. Quotes themselves are stripped.
func splitCSVLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}
