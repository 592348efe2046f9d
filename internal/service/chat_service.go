package service

import (
	"context"
	"strings"
	"time"

	"ai-chatbot-be/internal/dto"
	"ai-chatbot-be/internal/pkg/logger"
	"ai-chatbot-be/pkg/ingest"
	"ai-chatbot-be/pkg/rag"
	"ai-chatbot-be/pkg/training"
	"ai-chatbot-be/pkg/utils"

	"github.com/google/uuid"
)

type IChatService interface {
	CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	HandleInbound(ctx context.Context, msg dto.InboundMessage) string
}

type chatService struct {
	trainer   *training.Trainer
	responder *rag.Responder
	logger    logger.ILogger
}

func NewChatService(trainer *training.Trainer, responder *rag.Responder, log logger.ILogger) IChatService {
	return &chatService{
		trainer:   trainer,
		responder: responder,
		logger:    log,
	}
}

// CreateSession hands out a chat identity. A caller-supplied user id
// becomes the session id so allow-listed operators keep their identity
// across channels; anonymous visitors get a random one.
func (s *chatService) CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	sessionId := req.UserId
	if sessionId == "" {
		sessionId = uuid.NewString()
	}

	s.logger.Info("chat", "Session created", map[string]interface{}{
		"session_id": sessionId,
		"user_name":  req.UserName,
	})

	return &dto.CreateSessionResponse{
		SessionId: sessionId,
		StartedAt: time.Now(),
	}, nil
}

// HandleInbound routes one message: file uploads go to the trainer's
// side channel, slash commands and operator text go through the
// training state machine, everyone else gets a retrieval-grounded
// reply.
func (s *chatService) HandleInbound(ctx context.Context, msg dto.InboundMessage) string {
	if msg.FileName != "" && msg.FileContent != "" {
		return s.trainer.HandleFile(ctx, msg.From, ingest.File{
			Name:    msg.FileName,
			Payload: ingest.Text(msg.FileContent),
		})
	}

	text := utils.SanitizeMessage(msg.Text)
	if text == "" {
		return "Please send a message."
	}

	if strings.HasPrefix(text, "/") || s.trainer.IsOperator(msg.From) {
		return s.trainer.HandleMessage(ctx, msg.From, text)
	}

	return s.responder.Respond(ctx, text)
}
