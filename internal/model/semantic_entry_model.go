package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SemanticEntry struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    string         `gorm:"type:varchar(128);not null;uniqueIndex:idx_semantic_user_key"`
	Key       string         `gorm:"type:varchar(100);not null;uniqueIndex:idx_semantic_user_key"`
	Value     datatypes.JSON `gorm:"type:jsonb"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (SemanticEntry) TableName() string {
	return "semantic_entries"
}
