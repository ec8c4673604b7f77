package implementation

import (
	"context"
	"errors"

	"ai-question-answer-be/internal/entity"
	"ai-question-answer-be/internal/mapper"
	"ai-question-answer-be/internal/model"
	"ai-question-answer-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QueryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QueryMapper
}

func NewQueryRepository(db *gorm.DB) contract.QueryRepository {
	return &QueryRepositoryImpl{
		db:     db,
		mapper: mapper.NewQueryMapper(),
	}
}

func (r *QueryRepositoryImpl) CreateQuery(ctx context.Context, query *entity.UserQuery) error {
	m := r.mapper.ToModel(query)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*query = *r.mapper.ToEntity(m)
	return nil
}

func (r *QueryRepositoryImpl) FindQueryById(ctx context.Context, id uuid.UUID) (*entity.UserQuery, error) {
	var m model.UserQuery
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *QueryRepositoryImpl) CreateResponse(ctx context.Context, response *entity.QueryResponse) error {
	m, err := r.mapper.ResponseToModel(response)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *QueryRepositoryImpl) CreateResponseError(ctx context.Context, responseError *entity.QueryResponseError) error {
	m := r.mapper.ResponseErrorToModel(responseError)
	return r.db.WithContext(ctx).Create(m).Error
}

type FeedbackRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QueryMapper
}

func NewFeedbackRepository(db *gorm.DB) contract.FeedbackRepository {
	return &FeedbackRepositoryImpl{
		db:     db,
		mapper: mapper.NewQueryMapper(),
	}
}

func (r *FeedbackRepositoryImpl) Create(ctx context.Context, feedback *entity.Feedback) error {
	m := r.mapper.FeedbackToModel(feedback)
	return r.db.WithContext(ctx).Create(m).Error
}
