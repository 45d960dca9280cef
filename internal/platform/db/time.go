package db

import (
	"errors"
	"time"

	"github.com/mattn/go-sqlite3"
)

// TimeLayout is the layout of every timestamp the application writes. Values
// are stored in UTC so that text order matches chronological order.
const TimeLayout = "2006-01-02 15:04:05"

// FormatTime renders t for storage and range comparisons.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// IsUniqueViolation reports whether err is a SQLite UNIQUE constraint failure.
func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
