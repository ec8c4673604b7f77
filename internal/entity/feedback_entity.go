package entity

import (
	"time"

	"github.com/google/uuid"
)

type Feedback struct {
	Id           uuid.UUID
	QueryId      uuid.UUID
	FeedbackText string
	CreatedAt    time.Time
}
