// Package domain contains the feedback entry and its store port.
package domain

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxMessageLength  = 1000
	MaxUsernameLength = 50

	// AnonymousUsername is stored when feedback is left without a name.
	AnonymousUsername = "anonymous"
)

// FeedbackID identifies a feedback entry. Zero means unassigned.
type FeedbackID int64

func (id FeedbackID) Int64() int64   { return int64(id) }
func (id FeedbackID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id FeedbackID) IsZero() bool   { return id == 0 }

// Feedback is a free-text message left by a visitor.
type Feedback struct {
	ID        FeedbackID
	Username  string
	Message   string
	CreatedAt time.Time
}

// NewFeedback validates the input and creates an entry without an id.
// A blank username becomes AnonymousUsername. Lengths count characters,
// not bytes.
func NewFeedback(username, message string, createdAt time.Time) (*Feedback, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrMessageRequired
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return nil, ErrMessageTooLong
	}

	username = strings.TrimSpace(username)
	if username == "" {
		username = AnonymousUsername
	}
	if utf8.RuneCountInString(username) > MaxUsernameLength {
		return nil, ErrUsernameTooLong
	}

	return &Feedback{
		Username:  username,
		Message:   message,
		CreatedAt: createdAt,
	}, nil
}

// NewerThan reports whether f sorts before other in newest-first order:
// later CreatedAt first, then higher id.
func (f *Feedback) NewerThan(other *Feedback) bool {
	if !f.CreatedAt.Equal(other.CreatedAt) {
		return f.CreatedAt.After(other.CreatedAt)
	}
	return f.ID > other.ID
}
