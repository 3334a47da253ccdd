package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type Goal struct {
	Id            uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        string           `gorm:"type:varchar(128);not null;index"`
	SessionId     *uuid.UUID       `gorm:"type:uuid;index"`
	GoalText      string           `gorm:"type:text;not null"`
	Domain        string           `gorm:"type:varchar(100)"`
	Importance    float64          `gorm:"default:0.5"`
	GoalEmbedding *pgvector.Vector `gorm:"type:vector(768)"` // text-embedding-004 dimensions
	CreatedAt     time.Time        `gorm:"autoCreateTime"`
}

func (Goal) TableName() string {
	return "goals"
}
