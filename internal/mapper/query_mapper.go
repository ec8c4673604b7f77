package mapper

import (
	"encoding/json"

	"ai-question-answer-be/internal/entity"
	"ai-question-answer-be/internal/model"
)

type QueryMapper struct{}

func NewQueryMapper() *QueryMapper {
	return &QueryMapper{}
}

func (m *QueryMapper) ToEntity(q *model.UserQuery) *entity.UserQuery {
	if q == nil {
		return nil
	}
	return &entity.UserQuery{
		Id:            q.Id,
		UserId:        q.UserId,
		QueryText:     q.QueryText,
		SecretKeyHash: q.SecretKeyHash,
		Metadata:      q.Metadata,
		CreatedAt:     q.CreatedAt,
	}
}

func (m *QueryMapper) ToModel(q *entity.UserQuery) *model.UserQuery {
	if q == nil {
		return nil
	}
	return &model.UserQuery{
		Id:            q.Id,
		UserId:        q.UserId,
		QueryText:     q.QueryText,
		SecretKeyHash: q.SecretKeyHash,
		Metadata:      q.Metadata,
		CreatedAt:     q.CreatedAt,
	}
}

func (m *QueryMapper) ResponseToModel(r *entity.QueryResponse) (*model.QueryResponse, error) {
	if r == nil {
		return nil, nil
	}

	matchesJson, err := json.Marshal(r.ContentMatches)
	if err != nil {
		return nil, err
	}

	return &model.QueryResponse{
		Id:             r.Id,
		QueryId:        r.QueryId,
		ContentMatches: matchesJson,
		LLMAnswer:      r.LLMAnswer,
		DebugInfo:      r.DebugInfo,
		CreatedAt:      r.CreatedAt,
	}, nil
}

func (m *QueryMapper) ResponseErrorToModel(r *entity.QueryResponseError) *model.QueryResponseError {
	if r == nil {
		return nil
	}
	return &model.QueryResponseError{
		Id:           r.Id,
		QueryId:      r.QueryId,
		ErrorType:    r.ErrorType,
		ErrorMessage: r.ErrorMessage,
		DebugInfo:    r.DebugInfo,
		CreatedAt:    r.CreatedAt,
	}
}

func (m *QueryMapper) FeedbackToModel(f *entity.Feedback) *model.Feedback {
	if f == nil {
		return nil
	}
	return &model.Feedback{
		Id:           f.Id,
		QueryId:      f.QueryId,
		FeedbackText: f.FeedbackText,
		CreatedAt:    f.CreatedAt,
	}
}
