package domain

import "errors"

// Domain errors.
// A missing user is not among them: lookups report absence with a bool.
var (
	ErrInvalidUserID = errors.New("invalid user ID format")
)
