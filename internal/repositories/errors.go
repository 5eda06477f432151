package repositories

import (
	"errors"
	"strings"
)

// ErrNotFound is wrapped by every repository when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// IsDuplicate reports whether err looks like a uniqueness-constraint
// violation. Both SQLite ("UNIQUE constraint failed") and PostgreSQL
// ("duplicate key value violates unique constraint") phrase it differently,
// so we match on substrings the way the drivers report them.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
