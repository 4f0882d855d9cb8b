package models

import "time"

// dateKeyLayout is the local calendar date format used for streaks and
// completion-date sets. All date logic is local-time, never UTC.
const dateKeyLayout = "2006-01-02"

// DateKey formats t as a local date key (YYYY-MM-DD).
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// ValidDateKey reports whether s is a well-formed local date key.
func ValidDateKey(s string) bool {
	_, err := time.Parse(dateKeyLayout, s)
	return err == nil
}
