package service

import (
	"context"
	"errors"
	"time"

	"ai-question-answer-be/internal/dto"
	"ai-question-answer-be/internal/entity"
	"ai-question-answer-be/internal/pkg/logger"
	"ai-question-answer-be/internal/repository/memory"
	"ai-question-answer-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrQueryNotFound     = errors.New("query not found")
	ErrSecretKeyMismatch = errors.New("feedback secret key does not match")
)

type IFeedbackService interface {
	Submit(ctx context.Context, req *dto.SubmitFeedbackRequest) error
}

type feedbackService struct {
	uowFactory unitofwork.RepositoryFactory
	secretKeys *memory.SecretKeyCache
	logger     logger.ILogger
}

func NewFeedbackService(
	uowFactory unitofwork.RepositoryFactory,
	secretKeys *memory.SecretKeyCache,
	logger logger.ILogger,
) IFeedbackService {
	return &feedbackService{
		uowFactory: uowFactory,
		secretKeys: secretKeys,
		logger:     logger,
	}
}

func (s *feedbackService) Submit(ctx context.Context, req *dto.SubmitFeedbackRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// fast path: key is still cached from the original answer call
	if !s.secretKeys.Matches(req.QueryId, req.FeedbackSecretKey) {
		userQuery, err := uow.QueryRepository().FindQueryById(ctx, req.QueryId)
		if err != nil {
			return err
		}
		if userQuery == nil {
			return ErrQueryNotFound
		}
		if err := bcrypt.CompareHashAndPassword([]byte(userQuery.SecretKeyHash), []byte(req.FeedbackSecretKey)); err != nil {
			s.logger.Warn("FEEDBACK", "secret key mismatch", map[string]interface{}{
				"query_id": req.QueryId.String(),
			})
			return ErrSecretKeyMismatch
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.FeedbackRepository().Create(ctx, &entity.Feedback{
		Id:           uuid.New(),
		QueryId:      req.QueryId,
		FeedbackText: req.FeedbackText,
		CreatedAt:    time.Now(),
	}); err != nil {
		return err
	}

	return uow.Commit()
}
