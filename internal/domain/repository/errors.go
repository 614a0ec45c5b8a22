package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	ErrSessionNotFound = errors.New("session not found")

	ErrSlotUnavailable   = errors.New("slot not available")
	ErrSlotFull          = errors.New("slot is full")
	ErrAlreadyBooked     = errors.New("slot already booked by user")
	ErrEventFull         = errors.New("event is full")
	ErrAlreadyRegistered = errors.New("already registered for event")
)
