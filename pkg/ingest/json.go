package ingest

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-chatbot-be/pkg/knowledge"
)

// JSONParser handles structured records: either a list of FAQ/content
// objects or a single object with a content field. Invalid JSON yields
// an empty slice.
type JSONParser struct{}

func (p *JSONParser) Parse(ctx context.Context, payload Payload, label string) []knowledge.Document {
	raw := []byte(payloadText(payload))

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err == nil {
		docs := make([]knowledge.Document, 0, len(items))
		for i, rawItem := range items {
			// Non-object elements are skipped, not fatal.
			var item map[string]interface{}
			if err := json.Unmarshal(rawItem, &item); err != nil {
				continue
			}
			if doc, ok := documentFromRecord(item, i, label); ok {
				docs = append(docs, doc)
			}
		}
		return docs
	}

	var single map[string]interface{}
	if err := json.Unmarshal(raw, &single); err == nil {
		if doc, ok := documentFromRecord(single, 0, label); ok {
			return []knowledge.Document{doc}
		}
	}
	return nil
}

func documentFromRecord(item map[string]interface{}, index int, label string) (knowledge.Document, bool) {
	question := stringField(item, "question")
	answer := stringField(item, "answer")
	if question != "" && answer != "" {
		return knowledge.Document{
			Content: fmt.Sprintf("Q: %s\nA: %s", question, answer),
			Metadata: map[string]interface{}{
				"type":     knowledge.TypeFAQ,
				"question": question,
				"answer":   answer,
				"source":   label,
			},
		}, true
	}

	content := stringField(item, "content")
	if content != "" {
		title := stringField(item, "title")
		if title == "" {
			title = fmt.Sprintf("Item %d", index+1)
		}
		return knowledge.Document{
			Content: content,
			Metadata: map[string]interface{}{
				"type":   knowledge.TypeContent,
				"title":  title,
				"source": label,
			},
		}, true
	}
	return knowledge.Document{}, false
}

func stringField(item map[string]interface{}, key string) string {
	if v, ok := item[key].(string); ok {
		return v
	}
	return ""
}
