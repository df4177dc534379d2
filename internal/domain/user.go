package domain

import "time"

// User is an account record. The core treats UID purely as an opaque
// persistence key for plans; profile fields exist for the account endpoints
// and the suggestion prompt (ItemLike, TravelPreferences).
type User struct {
	UID               int64     `json:"uid"`
	Username          string    `json:"username"`
	PasswordHash      string    `json:"-"`
	Email             string    `json:"email,omitempty"`
	Gender            string    `json:"gender,omitempty"`
	FullName          string    `json:"fullname,omitempty"`
	TravelPreferences string    `json:"travel_preferences,omitempty"`
	ItemLike          string    `json:"item_like,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
