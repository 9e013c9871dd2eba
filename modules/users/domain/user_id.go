package domain

import (
	"strconv"

	"github.com/rai/myapp-backend/modules/shared/types"
)

// UserID identifies a user record. The zero value means "not yet assigned".
type UserID int64

// ParseUserID parses a decimal id such as the {id} path segment.
func ParseUserID(s string) (UserID, error) {
	n, err := types.ParseID(s)
	if err != nil {
		return 0, ErrInvalidUserID
	}
	return UserID(n), nil
}

func (id UserID) Int64() int64   { return int64(id) }
func (id UserID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id UserID) IsZero() bool   { return id == 0 }
