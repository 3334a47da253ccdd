package session

import "errors"

// ErrValidation marks caller input rejected before any write. Surfaced to
// the API layer as a 400 rather than retried.
var ErrValidation = errors.New("validation failed")
