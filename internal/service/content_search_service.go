package service

import (
	"context"

	"ai-question-answer-be/internal/repository/unitofwork"
	"ai-question-answer-be/pkg/guardrail"
	"ai-question-answer-be/pkg/pipeline"

	"github.com/google/uuid"
)

// contentSearchService adapts the content repository to the similarity
// search the answer pipeline expects.
type contentSearchService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewContentSearchService(uowFactory unitofwork.RepositoryFactory) pipeline.SimilaritySearcher {
	return &contentSearchService{uowFactory: uowFactory}
}

func (s *contentSearchService) SearchSimilar(ctx context.Context, userId uuid.UUID, vector []float32, topN int) ([]guardrail.ContentMatch, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	scored, err := uow.ContentRepository().SearchSimilar(ctx, userId, vector, topN)
	if err != nil {
		return nil, err
	}

	matches := make([]guardrail.ContentMatch, len(scored))
	for i, sc := range scored {
		matches[i] = guardrail.ContentMatch{
			Title:     sc.Content.Title,
			Text:      sc.Content.Text,
			ContentId: sc.Content.Id,
			Score:     sc.Similarity,
		}
	}
	return matches, nil
}
