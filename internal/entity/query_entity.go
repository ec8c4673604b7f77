package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserQuery is the persisted record of one inbound question, created at
// pipeline entry. SecretKeyHash is the bcrypt hash of the feedback
// secret key minted for this query; the plaintext is returned to the
// caller once and never stored.
type UserQuery struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	QueryText     string
	SecretKeyHash string
	Metadata      map[string]interface{}
	CreatedAt     time.Time
}

// QueryResponse is the persisted terminal success outcome.
type QueryResponse struct {
	Id             uuid.UUID
	QueryId        uuid.UUID
	ContentMatches []ResponseMatch
	LLMAnswer      *string
	DebugInfo      map[string]interface{}
	CreatedAt      time.Time
}

// ResponseMatch mirrors one retrieved item as stored with the response.
type ResponseMatch struct {
	Title     string  `json:"retrieved_title"`
	Text      string  `json:"retrieved_text"`
	ContentId string  `json:"retrieved_content_id"`
	Score     float64 `json:"score"`
}

// QueryResponseError is the persisted terminal error outcome.
type QueryResponseError struct {
	Id           uuid.UUID
	QueryId      uuid.UUID
	ErrorType    string
	ErrorMessage string
	DebugInfo    map[string]interface{}
	CreatedAt    time.Time
}
