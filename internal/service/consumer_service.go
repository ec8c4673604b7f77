package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-question-answer-be/internal/dto"
	"ai-question-answer-be/internal/entity"
	"ai-question-answer-be/internal/pkg/logger"
	"ai-question-answer-be/internal/repository/unitofwork"
	"ai-question-answer-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const (
	TopicContentEmbed  = "content.embed"
	TopicContentDelete = "content.delete"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		logger:            logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	embedMessages, err := cs.pubSub.Subscribe(ctx, TopicContentEmbed)
	if err != nil {
		return err
	}
	deleteMessages, err := cs.pubSub.Subscribe(ctx, TopicContentDelete)
	if err != nil {
		return err
	}

	go func() {
		for msg := range embedMessages {
			cs.processEmbed(ctx, msg)
		}
	}()
	go func() {
		for msg := range deleteMessages {
			cs.processDelete(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processEmbed(ctx context.Context, msg *message.Message) {
	var payload dto.ContentUpsertedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CONSUMER", "failed to unmarshal upsert message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid payload, retrying cannot help
		return
	}

	cs.logger.Info("CONSUMER", "embedding content", map[string]interface{}{
		"content_id": payload.ContentId.String(),
	})

	// Title and body are embedded together so short titles still anchor
	// the vector.
	document := fmt.Sprintf("%s\n%s", payload.Title, payload.Text)
	vector, err := cs.embeddingProvider.Generate(ctx, document)
	if err != nil {
		cs.logger.Error("CONSUMER", "failed to generate embedding", map[string]interface{}{
			"content_id": payload.ContentId.String(),
			"error":      err.Error(),
		})
		msg.Nack() // retriable
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	now := time.Now()
	content := entity.Content{
		Id:        payload.ContentId,
		UserId:    payload.UserId,
		Title:     payload.Title,
		Text:      payload.Text,
		Language:  payload.Language,
		Metadata:  payload.Metadata,
		Embedding: vector,
		CreatedAt: now,
		UpdatedAt: &now,
	}
	if err := uow.ContentRepository().Upsert(ctx, &content); err != nil {
		cs.logger.Error("CONSUMER", "failed to upsert content", map[string]interface{}{
			"content_id": payload.ContentId.String(),
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}

func (cs *consumerService) processDelete(ctx context.Context, msg *message.Message) {
	var payload dto.ContentDeletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CONSUMER", "failed to unmarshal delete message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ContentRepository().Delete(ctx, payload.ContentId); err != nil {
		cs.logger.Error("CONSUMER", "failed to delete content", map[string]interface{}{
			"content_id": payload.ContentId.String(),
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	cs.logger.Info("CONSUMER", "content deleted", map[string]interface{}{
		"content_id": payload.ContentId.String(),
	})
	msg.Ack()
}
