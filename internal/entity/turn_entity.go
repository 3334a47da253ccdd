package entity

import (
	"time"

	"github.com/google/uuid"
)

type Turn struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	Speaker   string
	Content   string
	Metadata  map[string]interface{}
	CreatedAt time.Time
}
