package events

import "time"

// KnowledgeTrainedEvent is published after a training batch or file
// ingestion is persisted to the knowledge store.
type KnowledgeTrainedEvent struct {
	Source     string    `json:"source"`
	Items      int       `json:"items"`
	AddedBy    string    `json:"added_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
