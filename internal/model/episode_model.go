package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Episode struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    string         `gorm:"type:varchar(128);not null;index"`
	SessionId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Outcome   string         `gorm:"type:varchar(100)"`
	Takeaways datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (Episode) TableName() string {
	return "episodes"
}
