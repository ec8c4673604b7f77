package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type QueryResponse struct {
	Id             uuid.UUID         `gorm:"type:uuid;primaryKey"`
	QueryId        uuid.UUID         `gorm:"type:uuid;not null;index"`
	ContentMatches datatypes.JSON    `gorm:"type:jsonb"`
	LLMAnswer      *string           `gorm:"type:text"`
	DebugInfo      datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt      time.Time         `gorm:"autoCreateTime"`
}

func (QueryResponse) TableName() string {
	return "query_responses"
}

type QueryResponseError struct {
	Id           uuid.UUID         `gorm:"type:uuid;primaryKey"`
	QueryId      uuid.UUID         `gorm:"type:uuid;not null;index"`
	ErrorType    string            `gorm:"type:varchar(64);not null"`
	ErrorMessage string            `gorm:"type:text"`
	DebugInfo    datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt    time.Time         `gorm:"autoCreateTime"`
}

func (QueryResponseError) TableName() string {
	return "query_response_errors"
}
