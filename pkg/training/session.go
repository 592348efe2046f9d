package training

import (
	"fmt"

	"ai-chatbot-be/pkg/knowledge"
	"ai-chatbot-be/pkg/widget"
)

// State is the position of an operator inside a training conversation.
type State int

const (
	StateIdle State = iota
	StateAddingFAQ
	StateWaitingQuestion
	StateWaitingAnswer
	StateAddingInfo
	StateConfirmTraining
	StateConfiguringWidget
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAddingFAQ:
		return "adding_faq"
	case StateWaitingQuestion:
		return "waiting_question"
	case StateWaitingAnswer:
		return "waiting_answer"
	case StateAddingInfo:
		return "adding_info"
	case StateConfirmTraining:
		return "confirm_training"
	case StateConfiguringWidget:
		return "configuring_widget"
	default:
		return "unknown"
	}
}

// Draft holds the partially built knowledge record for the current flow.
// Which fields are meaningful is determined by the session state.
type Draft struct {
	Question string
	Answer   string
	Content  string
	Type     string
	Widget   *widget.Config
}

// Document converts the draft into a storable document. Returns false
// when the draft holds nothing trainable.
func (d Draft) Document() (knowledge.Document, bool) {
	if d.Question != "" && d.Answer != "" {
		return knowledge.Document{
			Content: fmt.Sprintf("Q: %s\nA: %s", d.Question, d.Answer),
			Metadata: map[string]interface{}{
				"type":     knowledge.TypeFAQ,
				"question": d.Question,
				"answer":   d.Answer,
			},
		}, true
	}
	if d.Content != "" {
		docType := d.Type
		if docType == "" {
			docType = knowledge.TypeInfo
		}
		return knowledge.Document{
			Content: d.Content,
			Metadata: map[string]interface{}{
				"type": docType,
			},
		}, true
	}
	return knowledge.Document{}, false
}

// Session is one operator's training conversation. Pending accumulates
// documents saved through the "more" transition until a commit drains it.
type Session struct {
	Operator string
	State    State
	Draft    Draft
	Pending  []knowledge.Document
}

func NewSession(operator string) *Session {
	return &Session{Operator: operator, State: StateIdle}
}

// ClearDraft drops the in-flight record but keeps Pending.
func (s *Session) ClearDraft() {
	s.Draft = Draft{}
}

// Reset returns the session to its initial state, dropping everything.
func (s *Session) Reset() {
	s.State = StateIdle
	s.Draft = Draft{}
	s.Pending = nil
}
