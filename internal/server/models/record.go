package models

import "time"

// Record is one timed session belonging to a user. Records are immutable
// after creation, except for deletion.
type Record struct {
	ID        int64
	UserID    int64
	StartTime time.Time
	EndTime   time.Time
	Duration  int64 // seconds, as reported by the client
	CreatedAt time.Time
}
