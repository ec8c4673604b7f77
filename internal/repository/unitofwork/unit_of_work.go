package unitofwork

import (
	"context"

	"ai-question-answer-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ContentRepository() contract.ContentRepository
	QueryRepository() contract.QueryRepository
	FeedbackRepository() contract.FeedbackRepository
}

type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
