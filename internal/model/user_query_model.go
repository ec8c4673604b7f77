package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UserQuery struct {
	Id            uuid.UUID         `gorm:"type:uuid;primaryKey"`
	UserId        uuid.UUID         `gorm:"type:uuid;not null;index"`
	QueryText     string            `gorm:"type:text;not null"`
	SecretKeyHash string            `gorm:"type:varchar(128);not null"`
	Metadata      datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt     time.Time         `gorm:"autoCreateTime"`
}

func (UserQuery) TableName() string {
	return "user_queries"
}
