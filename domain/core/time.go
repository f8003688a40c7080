package core

import (
	"time"
)

// Timestamp represents a point in time with timezone awareness
type Timestamp time.Time

// NewTimestamp creates a new timestamp from time.Time
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t)
}

// FileStamp formats the day as yymmdd, the prefix of archived design files.
func (t Timestamp) FileStamp() string {
	return time.Time(t).Format("060102")
}
