package dbtime

import (
	"time"

	"estatehub_backend/internals/configs"
)

// Location is APP_TIMEZONE, or UTC when unset or unknown.
func Location() *time.Location {
	name := configs.GetEnv("APP_TIMEZONE")
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// StartOfDay is midnight of t in Location.
func StartOfDay(t time.Time) time.Time {
	t = t.In(Location())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfMonth is the first instant of t's month in Location.
func StartOfMonth(t time.Time) time.Time {
	t = t.In(Location())
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
