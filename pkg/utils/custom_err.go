package utils

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrDestinationRequired = errors.New("destination is required")
	ErrSessionNotFound     = errors.New("session not found")
	ErrRunInProgress       = errors.New("a plan run is already in progress")
	ErrRunNotStarted       = errors.New("no plan run has been started")
	ErrNoItinerary         = errors.New("no itinerary is available")
	ErrGenerationFailed    = errors.New("AI generation failed")
)
