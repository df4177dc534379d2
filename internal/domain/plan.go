package domain

import (
	"time"

	"github.com/google/uuid"
)

// Plan is the persisted snapshot of one trip's packing list: the trip
// descriptor plus the full item and activity collections. It is saved and
// loaded whole — there is no partial write — so concurrent sessions editing
// the same plan resolve as last-write-wins at snapshot granularity.
type Plan struct {
	ID         uuid.UUID      `json:"id"`
	UserID     int64          `json:"user_id"`
	Trip       TripDescriptor `json:"trip"`
	Items      []Item         `json:"items"`
	Activities []Activity     `json:"activities"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
