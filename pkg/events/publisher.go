package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// DefaultTrainedTopic is the topic knowledge training events go out on.
const DefaultTrainedTopic = "knowledge.trained"

type IPublisher interface {
	PublishTrained(ctx context.Context, event KnowledgeTrainedEvent) error
}

type Publisher struct {
	publisher message.Publisher
	topic     string
}

func NewPublisher(publisher message.Publisher, topic string) *Publisher {
	if topic == "" {
		topic = DefaultTrainedTopic
	}
	return &Publisher{publisher: publisher, topic: topic}
}

func (p *Publisher) PublishTrained(ctx context.Context, event KnowledgeTrainedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return p.publisher.Publish(p.topic, msg)
}
