package entity

import (
	"time"

	"github.com/google/uuid"
)

// SemanticEntry is one key of a user's long-lived semantic memory, holding a
// list value (e.g. the deduplicated goal ledger).
type SemanticEntry struct {
	Id        uuid.UUID
	UserId    string
	Key       string
	Value     []string
	UpdatedAt time.Time
}
