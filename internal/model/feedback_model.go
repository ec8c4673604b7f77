package model

import (
	"time"

	"github.com/google/uuid"
)

type Feedback struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	QueryId      uuid.UUID `gorm:"type:uuid;not null;index"`
	FeedbackText string    `gorm:"type:text;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (Feedback) TableName() string {
	return "query_feedbacks"
}
