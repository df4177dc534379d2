package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist — a plan, a user, or an activity referenced by id.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. empty item name, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a create collides with an existing resource,
// currently only a duplicate username on signup.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("already exists")

// ErrUnauthorized is returned when credentials are missing or wrong.
// Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrUnavailable is returned when an operation needs an optional backend
// (outbound mail, the suggestion generator) that is not configured.
// Handlers should map this to HTTP 503.
var ErrUnavailable = errors.New("unavailable")
