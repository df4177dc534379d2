package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is a scheduled, dated event within a trip, optionally time-boxed.
// Date always falls on one of the plan's days (day granularity, UTC).
//
// StartTime and EndTime are zero-padded 24-hour "HH:MM" strings; "" means
// unset. They are independent of each other — nothing enforces
// EndTime > StartTime, matching how the feature has always behaved.
type Activity struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time,omitempty"`
	EndTime   string    `json:"end_time,omitempty"`
}
