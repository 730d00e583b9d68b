package repository

import "time"

// startOfDayUTC returns midnight UTC for the day containing t. Every
// "today" aggregate goes through this so day boundaries agree across
// queries.
func startOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
