package events

import (
	"sync"
	"time"
)

// TrainingStats accumulates counters from consumed training events.
type TrainingStats struct {
	mu           sync.RWMutex
	batches      int
	items        int
	lastTrained  time.Time
	lastSource   string
	lastOperator string
}

func NewTrainingStats() *TrainingStats {
	return &TrainingStats{}
}

func (s *TrainingStats) Record(event KnowledgeTrainedEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches++
	s.items += event.Items
	s.lastTrained = event.OccurredAt
	s.lastSource = event.Source
	s.lastOperator = event.AddedBy
}

type StatsSnapshot struct {
	Batches      int
	Items        int
	LastTrained  time.Time
	LastSource   string
	LastOperator string
}

func (s *TrainingStats) Snapshot() StatsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StatsSnapshot{
		Batches:      s.batches,
		Items:        s.items,
		LastTrained:  s.lastTrained,
		LastSource:   s.lastSource,
		LastOperator: s.lastOperator,
	}
}
