package entity

import (
	"time"

	"github.com/google/uuid"
)

// Episode is a reflection record in the user's episodic memory.
type Episode struct {
	Id        uuid.UUID
	UserId    string
	SessionId uuid.UUID
	Outcome   string
	Takeaways []string
	CreatedAt time.Time
}
