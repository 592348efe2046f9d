package dto

import "time"

type CreateSessionRequest struct {
	UserId    string `json:"user_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email" validate:"omitempty,email"`
}

type CreateSessionResponse struct {
	SessionId string    `json:"session_id"`
	StartedAt time.Time `json:"started_at"`
}

type ChatMessageRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Message   string `json:"message"`
	// FileName and FileContent carry an optional upload. FileContent
	// is base64 for binary formats and plain text otherwise.
	FileName    string `json:"file_name"`
	FileContent string `json:"file_content"`
}

type ChatMessageResponse struct {
	Reply string `json:"reply"`
}

// InboundMessage is the transport-neutral message shape the chat
// service consumes.
type InboundMessage struct {
	From        string
	Text        string
	FileName    string
	FileContent string
}
