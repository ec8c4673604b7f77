package implementation

import (
	"context"

	"ai-question-answer-be/internal/entity"
	"ai-question-answer-be/internal/mapper"
	"ai-question-answer-be/internal/model"
	"ai-question-answer-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ContentMapper
}

func NewContentRepository(db *gorm.DB) contract.ContentRepository {
	return &ContentRepositoryImpl{
		db:     db,
		mapper: mapper.NewContentMapper(),
	}
}

func (r *ContentRepositoryImpl) Upsert(ctx context.Context, content *entity.Content) error {
	m := r.mapper.ToModel(content)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*content = *r.mapper.ToEntity(m)
	return nil
}

func (r *ContentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Content{}, id).Error
}

func (r *ContentRepositoryImpl) Count(ctx context.Context, userId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Content{}).
		Where("user_id = ?", userId).
		Count(&count).Error
	return count, err
}

func (r *ContentRepositoryImpl) SearchSimilar(ctx context.Context, userId uuid.UUID, vector []float32, limit int) ([]*entity.ScoredContent, error) {
	if limit <= 0 {
		limit = 4
	}

	// pgvector cosine distance: embedding <=> vector, so
	// similarity = 1 - distance. Scoped to the tenant's live rows.
	type result struct {
		model.Content
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(vector)
	err := r.db.WithContext(ctx).
		Table("contents").
		Select("contents.*, 1 - (embedding <=> ?) AS similarity", queryVector).
		Where("user_id = ?", userId).
		Where("deleted_at IS NULL").
		Order(gorm.Expr("embedding <=> ?", queryVector)).
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*entity.ScoredContent, len(results))
	for i, res := range results {
		content := res.Content
		scored[i] = &entity.ScoredContent{
			Content:    r.mapper.ToEntity(&content),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
