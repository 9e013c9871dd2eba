// Package types provides shared value objects and type definitions
// used across multiple modules (Shared Kernel pattern).
package types

import (
	"strconv"
	"strings"
	"sync/atomic"
)

// ParseID parses a decimal identifier as it appears in a URL path.
// Any int64 is accepted; whether it names a record is the caller's concern.
func ParseID(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return n, nil
}

// Sequence hands out strictly increasing identifiers starting at 1.
// The zero value is ready to use and safe for concurrent use.
// Values are never reused, even if the caller discards one.
type Sequence struct {
	last atomic.Int64
}

// Next returns the next identifier.
func (s *Sequence) Next() int64 {
	return s.last.Add(1)
}
