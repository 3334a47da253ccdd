package entity

import (
	"time"

	"github.com/google/uuid"
)

// Goal is a normalized user goal. SessionId is nil for goals recorded
// outside a session. Embedding is filled lazily when the embedding service
// is available.
type Goal struct {
	Id         uuid.UUID
	UserId     string
	SessionId  *uuid.UUID
	GoalText   string
	Domain     string
	Importance float64
	Embedding  []float32
	CreatedAt  time.Time
}
