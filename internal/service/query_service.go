package service

import (
	"context"
	"strings"
	"time"

	"ai-question-answer-be/internal/dto"
	"ai-question-answer-be/internal/entity"
	"ai-question-answer-be/internal/pkg/logger"
	"ai-question-answer-be/internal/repository/memory"
	"ai-question-answer-be/internal/repository/unitofwork"
	"ai-question-answer-be/pkg/events"
	"ai-question-answer-be/pkg/guardrail"
	pktNats "ai-question-answer-be/pkg/nats"
	"ai-question-answer-be/pkg/pipeline"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IQueryService interface {
	// Answer runs one query through the guardrail pipeline. Exactly one
	// of the two returned payloads is non-nil on success; a non-nil
	// error is a hard infra fault.
	Answer(ctx context.Context, userId uuid.UUID, req *dto.AnswerQueryRequest) (*dto.AnswerQueryResponse, *dto.AnswerQueryError, error)
}

type queryService struct {
	uowFactory     unitofwork.RepositoryFactory
	pipeline       *pipeline.Pipeline
	secretKeys     *memory.SecretKeyCache
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewQueryService(
	uowFactory unitofwork.RepositoryFactory,
	pipeline *pipeline.Pipeline,
	secretKeys *memory.SecretKeyCache,
	eventPublisher *pktNats.Publisher,
	logger logger.ILogger,
) IQueryService {
	return &queryService{
		uowFactory:     uowFactory,
		pipeline:       pipeline,
		secretKeys:     secretKeys,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

func (s *queryService) Answer(ctx context.Context, userId uuid.UUID, req *dto.AnswerQueryRequest) (*dto.AnswerQueryResponse, *dto.AnswerQueryError, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	secretKey := generateSecretKey()
	hash, err := bcrypt.GenerateFromPassword([]byte(secretKey), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	userQuery := entity.UserQuery{
		Id:            uuid.New(),
		UserId:        userId,
		QueryText:     req.QueryText,
		SecretKeyHash: string(hash),
		Metadata:      req.QueryMetadata,
		CreatedAt:     time.Now(),
	}
	if err := uow.QueryRepository().CreateQuery(ctx, &userQuery); err != nil {
		return nil, nil, err
	}
	s.secretKeys.Put(userQuery.Id, secretKey)

	query := guardrail.NewQuery(req.QueryText, req.QueryMetadata)
	response := guardrail.NewResponse(userQuery.Id, secretKey)

	outcome, err := s.pipeline.Execute(ctx, userId, query, response, req.GenerateLLMResponse)
	if err != nil {
		// hard fault: nothing persisted for this run, partial debug info
		// is discarded
		return nil, nil, err
	}

	switch out := outcome.(type) {
	case *guardrail.Response:
		if err := s.persistResponse(ctx, uow, out); err != nil {
			return nil, nil, err
		}
		s.publishEvent(ctx, "query.answered", userQuery.Id, userId, nil)
		return mapAnswer(out), nil, nil

	case *guardrail.ResponseError:
		if err := s.persistResponseError(ctx, uow, out); err != nil {
			return nil, nil, err
		}
		errType := string(out.ErrorType)
		s.publishEvent(ctx, "query.blocked", userQuery.Id, userId, &errType)
		return nil, mapAnswerError(out), nil
	}

	return nil, nil, nil
}

func (s *queryService) persistResponse(ctx context.Context, uow unitofwork.UnitOfWork, resp *guardrail.Response) error {
	matches := make([]entity.ResponseMatch, len(resp.ContentMatches))
	for i, match := range resp.ContentMatches {
		matches[i] = entity.ResponseMatch{
			Title:     match.Title,
			Text:      match.Text,
			ContentId: match.ContentId.String(),
			Score:     match.Score,
		}
	}
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.QueryRepository().CreateResponse(ctx, &entity.QueryResponse{
		Id:             uuid.New(),
		QueryId:        resp.QueryId,
		ContentMatches: matches,
		LLMAnswer:      resp.LLMAnswer,
		DebugInfo:      resp.DebugInfo,
		CreatedAt:      time.Now(),
	}); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *queryService) persistResponseError(ctx context.Context, uow unitofwork.UnitOfWork, respErr *guardrail.ResponseError) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.QueryRepository().CreateResponseError(ctx, &entity.QueryResponseError{
		Id:           uuid.New(),
		QueryId:      respErr.QueryId,
		ErrorType:    string(respErr.ErrorType),
		ErrorMessage: respErr.ErrorMessage,
		DebugInfo:    respErr.DebugInfo,
		CreatedAt:    time.Now(),
	}); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *queryService) publishEvent(ctx context.Context, eventType string, queryId, userId uuid.UUID, errType *string) {
	if s.eventPublisher == nil {
		return
	}
	data := map[string]interface{}{
		"query_id": queryId.String(),
		"user_id":  userId.String(),
	}
	if errType != nil {
		data["error_type"] = *errType
	}
	event := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("QUERY", "failed to publish event", map[string]interface{}{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}

func mapAnswer(resp *guardrail.Response) *dto.AnswerQueryResponse {
	matches := make([]dto.ContentMatchDTO, len(resp.ContentMatches))
	for i, match := range resp.ContentMatches {
		matches[i] = dto.ContentMatchDTO{
			Title:     match.Title,
			Text:      match.Text,
			ContentId: match.ContentId,
			Score:     match.Score,
		}
	}
	return &dto.AnswerQueryResponse{
		QueryId:           resp.QueryId,
		FeedbackSecretKey: resp.FeedbackSecretKey,
		ContentMatches:    matches,
		LLMAnswer:         resp.LLMAnswer,
		DebugInfo:         resp.DebugInfo,
		State:             string(resp.State),
	}
}

func mapAnswerError(respErr *guardrail.ResponseError) *dto.AnswerQueryError {
	return &dto.AnswerQueryError{
		QueryId:      respErr.QueryId,
		ErrorType:    string(respErr.ErrorType),
		ErrorMessage: respErr.ErrorMessage,
		DebugInfo:    respErr.DebugInfo,
	}
}

func generateSecretKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
