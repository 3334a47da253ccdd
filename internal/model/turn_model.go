package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Turn struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Speaker   string         `gorm:"type:varchar(50);not null"`
	Content   string         `gorm:"type:text;not null"`
	Metadata  datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (Turn) TableName() string {
	return "turns"
}
