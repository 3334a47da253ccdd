package entity

import (
	"time"

	"github.com/google/uuid"

	"empower-commerce-be/pkg/intent"
	"empower-commerce-be/pkg/values"
)

// SessionState is the typed per-session state blob. It replaces an open map
// so every field is contractually named; Version allows forward-compatible
// decoding of rows written by older builds.
type SessionState struct {
	Version         int                        `json:"version"`
	LastIntent      *intent.Intent             `json:"last_intent,omitempty"`
	LastQuery       string                     `json:"last_query,omitempty"`
	LastEmpowerment *float64                   `json:"last_empowerment,omitempty"`
	Clarification   *values.ClarificationState `json:"clarification,omitempty"`
}

type Session struct {
	Id        uuid.UUID
	UserId    string
	CreatedAt time.Time
	State     SessionState
}
