package packing

import (
	"time"

	"github.com/google/uuid"
)

type targetKind int

const (
	targetUnassigned targetKind = iota
	targetDate
	targetActivity
)

// Target selects where a newly added item is attached: nowhere, to a calendar
// day, or to an activity. It is a closed variant — construct one with
// Unassigned, ForDate, or ForActivity; the zero value means unassigned.
type Target struct {
	kind       targetKind
	date       time.Time
	activityID uuid.UUID
}

// Unassigned targets no day and no activity.
func Unassigned() Target {
	return Target{kind: targetUnassigned}
}

// ForDate targets a calendar day directly, without an activity.
func ForDate(date time.Time) Target {
	return Target{kind: targetDate, date: date}
}

// ForActivity targets an existing activity. AddItem fails with ErrNotFound
// when no activity with this id exists in the model.
func ForActivity(id uuid.UUID) Target {
	return Target{kind: targetActivity, activityID: id}
}
