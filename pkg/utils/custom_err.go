package utils

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrTripNotFound       = errors.New("trip not found")
	ErrNotTripOwner       = errors.New("trip not owned by caller")
	ErrGenerationFailed   = errors.New("itinerary generation failed")
	ErrSchemaViolation    = errors.New("itinerary schema violation")
	ErrDatabaseError      = errors.New("database error")
)
