package utils

import "strings"

// SplitIntoChunks splits a long string into chunks of at most 'maxSize'
// characters by greedily packing whitespace-delimited words. A word only
// joins the current chunk if it fits together with one separator space;
// otherwise the chunk is closed and the word starts a new one. A single
// word longer than maxSize becomes its own oversized chunk.
//
// This is a greedy bin-packing approximation, not an optimal split. That
// is intentional: it keeps chunk boundaries on word boundaries and the
// output re-joinable with single spaces.
func SplitIntoChunks(text string, maxSize int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		// No tokens at all (empty or whitespace-only input).
		// Return the original text as a single chunk so callers
		// never see an empty sequence.
		return []string{text}
	}

	var chunks []string
	var current strings.Builder

	for _, word := range words {
		if current.Len()+len(word)+1 <= maxSize {
			if current.Len() > 0 {
				current.WriteByte(' ')
			}
			current.WriteString(word)
		} else {
			if current.Len() > 0 {
				chunks = append(chunks, current.String())
				current.Reset()
			}
			current.WriteString(word)
		}
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

// SanitizeMessage normalizes an inbound chat message before routing:
// trims whitespace, collapses newlines into spaces and caps the length.
func SanitizeMessage(text string) string {
	sanitized := strings.TrimSpace(text)
	sanitized = strings.Join(strings.FieldsFunc(sanitized, func(r rune) bool {
		return r == '\n' || r == '\r'
	}), " ")
	if len(sanitized) > 1000 {
		sanitized = sanitized[:1000]
	}
	return sanitized
}
