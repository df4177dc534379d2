package domain

import (
	"time"

	"github.com/google/uuid"
)

// CategoryUncategorized is the category items fall into when none is given.
const CategoryUncategorized = "Uncategorized"

// Item is a single packing entry. At most one of ActivityID or Date is
// meaningfully set: an item attached to an activity carries a copy of that
// activity's date (denormalized for fast day bucketing), an item attached to
// a day carries only Date, and an item with neither is "unassigned".
//
// The packing model keeps Date equal to the owning activity's date across
// activity reschedules, and clears ActivityID (but keeps Date) when the
// activity is deleted.
type Item struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Category   string     `json:"category"`
	Quantity   int        `json:"quantity"`
	ActivityID *uuid.UUID `json:"activity_id,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
}
