// Package packing implements the in-memory packing model for one trip: the
// day list derived from the trip's date range, the activity and item
// collections with their relationship invariants, and the two read-side
// projections (date view, category view).
//
// The package is pure — no I/O, no clock, no persistence. The service layer
// rehydrates a Model from a stored plan snapshot, applies one mutation, and
// writes the snapshot back.
package packing

import "time"

// DateRange returns every calendar day from start to end inclusive, one entry
// per day, pinned to midnight UTC. Time-of-day on the inputs is ignored.
// When end is before start the result is empty — malformed ranges are a trip
// setup concern, not an error here.
//
// The function is pure and idempotent: same inputs, same sequence.
func DateRange(start, end time.Time) []time.Time {
	start = dayOf(start)
	end = dayOf(end)

	days := []time.Time{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// dayOf strips time-of-day, keeping the calendar date as the caller's
// location sees it and pinning it to UTC so dates compare with Equal.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// sameDay reports whether a and b fall on the same calendar day,
// ignoring time-of-day and location.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
