package entity

import (
	"time"

	"github.com/google/uuid"
)

type Recommendation struct {
	Id              uuid.UUID
	SessionId       uuid.UUID
	ProductIds      []string
	EmpoweringScore *float64
	Context         map[string]interface{}
	CreatedAt       time.Time
}
