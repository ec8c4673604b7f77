package contract

import (
	"context"

	"ai-question-answer-be/internal/entity"

	"github.com/google/uuid"
)

type QueryRepository interface {
	CreateQuery(ctx context.Context, query *entity.UserQuery) error
	FindQueryById(ctx context.Context, id uuid.UUID) (*entity.UserQuery, error)
	CreateResponse(ctx context.Context, response *entity.QueryResponse) error
	CreateResponseError(ctx context.Context, responseError *entity.QueryResponseError) error
}

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *entity.Feedback) error
}
