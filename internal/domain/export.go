package domain

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per item, with plan fields
// repeated for every item on that plan. Plans with no items yield one row
// with zero values for all item fields.
type ExportRow struct {
	// Plan fields — repeated for every item on the plan.
	PlanID        string `json:"plan_id"`
	TripName      string `json:"trip_name"`
	Destination   string `json:"destination"`
	TripStartDate string `json:"trip_start_date"` // "2006-01-02" formatted date
	TripEndDate   string `json:"trip_end_date"`

	// Item fields — zero values when the plan has no items.
	ItemName     string `json:"item_name,omitempty"`
	Category     string `json:"category,omitempty"`
	Quantity     int    `json:"quantity,omitempty"`
	ItemDate     string `json:"item_date,omitempty"`     // "2006-01-02", empty when the item has no date
	ActivityName string `json:"activity_name,omitempty"` // resolved from the owning activity, empty if none
}
