package entity

import "time"

// User is ensured on first contact; ids are caller-supplied strings so demo
// and external identities share one table.
type User struct {
	Id        string
	CreatedAt time.Time
}
