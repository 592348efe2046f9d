package service

import (
	"context"
	"encoding/json"

	"ai-chatbot-be/internal/pkg/logger"
	"ai-chatbot-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService listens for knowledge trained events and folds them
// into the stats surfaced by the operator /status command.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	stats     *events.TrainingStats
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	stats *events.TrainingStats,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		stats:     stats,
		logger:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var event events.KnowledgeTrainedEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Error("consumer", "Failed to unmarshal trained event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid payloads never become valid, do not retry
		return
	}

	cs.stats.Record(event)
	cs.logger.Info("consumer", "Training event recorded", map[string]interface{}{
		"source": event.Source,
		"items":  event.Items,
	})
	msg.Ack()
}
