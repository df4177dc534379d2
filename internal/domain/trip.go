// Package domain contains the core data types for the Packmate API.
// This package has zero business logic and is imported by every other
// internal package (packing, repo, service, handler).
package domain

import "time"

// Climate is the rough weather profile of a destination, chosen at trip setup.
// It feeds the packing-suggestion prompt and is otherwise opaque to the core.
type Climate string

const (
	ClimateCold     Climate = "cold"
	ClimateModerate Climate = "moderate"
	ClimateWarm     Climate = "warm"
	ClimateHot      Climate = "hot"
)

// Destination is a labeled destination choice. Value is the stable key from
// the destination picker; Label is what the user sees.
type Destination struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Travelers counts who is coming along. Used only for display and suggestions.
type Travelers struct {
	Women    int `json:"women"`
	Men      int `json:"men"`
	Children int `json:"children"`
}

// TripDescriptor is the fixed identifying and scheduling data for one trip.
// It is created once by trip setup and is immutable for the lifetime of a
// plan, except through the explicit date-range change operation, which
// regenerates the plan's day list.
//
// StartDate and EndDate carry day granularity only; time-of-day is ignored
// everywhere in the core.
type TripDescriptor struct {
	TripName    string      `json:"trip_name"`
	Destination Destination `json:"destination"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	Travelers   Travelers   `json:"travelers"`
	Climate     Climate     `json:"climate"`
}
