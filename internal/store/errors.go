package store

import (
	"errors"
	"strings"

	"reelgate/internal/services"
)

var (
	// ErrNotFound is returned by point lookups and deletions that match no
	// row. It is the services taxonomy marker, so callers can classify
	// through either package.
	ErrNotFound = services.ErrNotFound
	// ErrDuplicate is returned when an insert violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate key")
)

// isUniqueViolation recognizes SQLite uniqueness failures. modernc.org/sqlite
// surfaces them as generic errors carrying the constraint message.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
