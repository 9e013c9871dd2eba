package domain

import "errors"

// Domain errors
var (
	ErrMessageRequired = errors.New("message is required")
	ErrMessageTooLong  = errors.New("message must be at most 1000 characters")
	ErrUsernameTooLong = errors.New("username must be at most 50 characters")
	ErrInvalidPage     = errors.New("page must not be negative")
	ErrInvalidPageSize = errors.New("size must be between 1 and 100")
)
