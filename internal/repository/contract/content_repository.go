package contract

import (
	"context"

	"ai-question-answer-be/internal/entity"

	"github.com/google/uuid"
)

type ContentRepository interface {
	// Upsert creates or replaces a content row keyed by the id assigned
	// by the external content-management collaborator.
	Upsert(ctx context.Context, content *entity.Content) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, userId uuid.UUID) (int64, error)
	// SearchSimilar returns the top-N contents of one tenant ranked by
	// cosine similarity to the query vector.
	SearchSimilar(ctx context.Context, userId uuid.UUID, vector []float32, limit int) ([]*entity.ScoredContent, error)
}
