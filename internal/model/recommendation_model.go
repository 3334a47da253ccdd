package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Recommendation struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId       uuid.UUID      `gorm:"type:uuid;not null;index"`
	ProductIds      datatypes.JSON `gorm:"type:jsonb"`
	EmpoweringScore *float64
	Context         datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}
