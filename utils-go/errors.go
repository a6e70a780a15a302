package utils

import (
	"errors"
	"strings"

	"github.com/uptrace/bun/driver/pgdriver"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err comes from a unique constraint firing,
// on postgres or on the sqlite databases used in tests.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == pgUniqueViolation
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
