package guardrail

import (
	"github.com/google/uuid"
)

// Query is the working copy of one inbound question. Stages mutate Text
// (translation, paraphrase) but OriginalText is fixed at construction.
type Query struct {
	Text             string
	OriginalText     string
	OriginalLanguage *IdentifiedLanguage
	Metadata         map[string]interface{}
}

func NewQuery(text string, metadata map[string]interface{}) *Query {
	if metadata == nil {
		metadata = make(map[string]interface{})
	}
	return &Query{
		Text:         text,
		OriginalText: text,
		Metadata:     metadata,
	}
}

// ResultState tags where the response is in its lifecycle.
type ResultState string

const (
	StateInProgress ResultState = "in_progress"
	StateFinal      ResultState = "final"
)

// ErrorType is the closed set of terminal guardrail outcomes. These map to
// 400-class responses; infra faults are Go errors, not ErrorTypes.
type ErrorType string

const (
	ErrorUnintelligibleInput ErrorType = "unintelligible_input"
	ErrorUnsupportedLanguage ErrorType = "unsupported_language"
	ErrorUnableToTranslate   ErrorType = "unable_to_translate"
	ErrorUnableToParaphrase  ErrorType = "unable_to_paraphrase"
	ErrorQueryUnsafe         ErrorType = "query_unsafe"
	ErrorOffTopic            ErrorType = "off_topic"
)

// ContentMatch is one retrieved item. Score is cosine similarity
// (higher is better); slice order reflects retrieval rank.
type ContentMatch struct {
	Title     string    `json:"retrieved_title"`
	Text      string    `json:"retrieved_text"`
	ContentId uuid.UUID `json:"retrieved_content_id"`
	Score     float64   `json:"score"`
}

// Outcome is the tagged state threaded through every stage: either a
// Response (healthy, possibly final) or a ResponseError (terminal).
// Sealed so stages can switch exhaustively on the two variants.
type Outcome interface {
	outcome()
	Debug() map[string]interface{}
}

// Response carries the in-progress or final answer payload.
type Response struct {
	QueryId           uuid.UUID
	FeedbackSecretKey string
	ContentMatches    []ContentMatch
	LLMAnswer         *string
	DebugInfo         map[string]interface{}
	State             ResultState
}

func NewResponse(queryId uuid.UUID, feedbackSecretKey string) *Response {
	return &Response{
		QueryId:           queryId,
		FeedbackSecretKey: feedbackSecretKey,
		DebugInfo:         make(map[string]interface{}),
		State:             StateInProgress,
	}
}

func (r *Response) outcome() {}

func (r *Response) Debug() map[string]interface{} { return r.DebugInfo }

// ResponseError is the terminal failure variant. Debug info accumulated
// before the failing stage is carried forward, never discarded.
type ResponseError struct {
	QueryId      uuid.UUID
	ErrorType    ErrorType
	ErrorMessage string
	DebugInfo    map[string]interface{}
}

func (e *ResponseError) outcome() {}

func (e *ResponseError) Debug() map[string]interface{} { return e.DebugInfo }

// NewResponseError converts a healthy outcome into the error variant,
// copying the accumulated debug info.
func NewResponseError(prev Outcome, queryId uuid.UUID, errType ErrorType, message string) *ResponseError {
	debugInfo := make(map[string]interface{})
	if prev != nil {
		for k, v := range prev.Debug() {
			debugInfo[k] = v
		}
	}
	return &ResponseError{
		QueryId:      queryId,
		ErrorType:    errType,
		ErrorMessage: message,
		DebugInfo:    debugInfo,
	}
}
