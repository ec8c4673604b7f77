package entity

import (
	"time"

	"github.com/google/uuid"
)

type Content struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	Text      string
	Language  string
	Metadata  map[string]interface{}
	Embedding []float32
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

// ScoredContent wraps Content with its cosine similarity to a query
// vector (1.0 = identical).
type ScoredContent struct {
	Content    *Content
	Similarity float64
}
