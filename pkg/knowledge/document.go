package knowledge

// Document is one unit of ingested content plus its open-schema metadata.
// Parsers and the training flow create Documents; the Store assigns a
// persistent identifier when it takes ownership.
type Document struct {
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// SearchResult carries retrieved content with its cosine similarity score
// (higher is more similar; results are ordered descending by score).
type SearchResult struct {
	Content  string                 `json:"content"`
	Score    float64                `json:"score"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Document type tags used in metadata["type"].
const (
	TypeFAQ         = "faq"
	TypeText        = "text"
	TypeContent     = "content"
	TypeInfo        = "info"
	TypeCompanyInfo = "company_info"
	TypePDF         = "pdf"
	TypeDOCX        = "docx"
)

// CloneMetadata returns a shallow copy of a metadata map so stamped or
// batched documents never alias the originals.
func CloneMetadata(metadata map[string]interface{}) map[string]interface{} {
	clone := make(map[string]interface{}, len(metadata)+2)
	for k, v := range metadata {
		clone[k] = v
	}
	return clone
}
