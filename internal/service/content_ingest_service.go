package service

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-question-answer-be/internal/pkg/logger"
	"ai-question-answer-be/pkg/events"
	pktNats "ai-question-answer-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const (
	subjectContentUpserted = "events.content.upserted"
	subjectContentDeleted  = "events.content.deleted"
)

// IContentIngestService bridges the external NATS bus and the in-process
// embed queue. Content management lives in a separate system; it
// announces changes over NATS and this service feeds them to the
// embedding worker.
type IContentIngestService interface {
	Start() error
}

type contentIngestService struct {
	subscriber *pktNats.Subscriber
	pubSub     *gochannel.GoChannel
	logger     logger.ILogger
}

func NewContentIngestService(
	subscriber *pktNats.Subscriber,
	pubSub *gochannel.GoChannel,
	logger logger.ILogger,
) IContentIngestService {
	return &contentIngestService{
		subscriber: subscriber,
		pubSub:     pubSub,
		logger:     logger,
	}
}

func (s *contentIngestService) Start() error {
	if err := s.subscriber.Subscribe(subjectContentUpserted, "qa-content-upserted", s.forwardTo(TopicContentEmbed)); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", subjectContentUpserted, err)
	}
	if err := s.subscriber.Subscribe(subjectContentDeleted, "qa-content-deleted", s.forwardTo(TopicContentDelete)); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", subjectContentDeleted, err)
	}
	return nil
}

func (s *contentIngestService) forwardTo(topic string) pktNats.EventHandler {
	return func(ctx context.Context, event events.Event) error {
		payload, err := json.Marshal(event.Payload())
		if err != nil {
			return fmt.Errorf("failed to marshal event payload: %w", err)
		}

		msg := message.NewMessage(watermill.NewUUID(), payload)
		if err := s.pubSub.Publish(topic, msg); err != nil {
			s.logger.Error("INGEST", "failed to enqueue content event", map[string]interface{}{
				"topic": topic,
				"error": err.Error(),
			})
			return err
		}
		return nil
	}
}
