package pipeline

import (
	"context"

	"ai-question-answer-be/pkg/guardrail"

	"github.com/google/uuid"
)

// SimilaritySearcher is the nearest-neighbor collaborator. The pipeline
// treats it as a black box: a tenant-scoped vector lookup returning the
// top-N matches in retrieval order.
type SimilaritySearcher interface {
	SearchSimilar(ctx context.Context, userId uuid.UUID, vector []float32, topN int) ([]guardrail.ContentMatch, error)
}
