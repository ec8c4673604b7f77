package dto

import (
	"github.com/google/uuid"
)

type AnswerQueryRequest struct {
	QueryText           string                 `json:"query_text" validate:"required,min=1,max=2000"`
	GenerateLLMResponse bool                   `json:"generate_llm_response"`
	QueryMetadata       map[string]interface{} `json:"query_metadata"`
}

type ContentMatchDTO struct {
	Title     string    `json:"retrieved_title"`
	Text      string    `json:"retrieved_text"`
	ContentId uuid.UUID `json:"retrieved_content_id"`
	Score     float64   `json:"score"`
}

type AnswerQueryResponse struct {
	QueryId           uuid.UUID              `json:"query_id"`
	FeedbackSecretKey string                 `json:"feedback_secret_key"`
	ContentMatches    []ContentMatchDTO      `json:"content_response"`
	LLMAnswer         *string                `json:"llm_response"`
	DebugInfo         map[string]interface{} `json:"debug_info"`
	State             string                 `json:"state"`
}

type AnswerQueryError struct {
	QueryId      uuid.UUID              `json:"query_id"`
	ErrorType    string                 `json:"error_type"`
	ErrorMessage string                 `json:"error_message"`
	DebugInfo    map[string]interface{} `json:"debug_info"`
}

type SubmitFeedbackRequest struct {
	QueryId           uuid.UUID `json:"query_id" validate:"required"`
	FeedbackSecretKey string    `json:"feedback_secret_key" validate:"required"`
	FeedbackText      string    `json:"feedback_text" validate:"required,max=2000"`
}
