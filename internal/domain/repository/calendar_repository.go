package repository

import (
	"context"
	"time"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
)

// AvailabilityFilter dates are inclusive; zero values are open.
type AvailabilityFilter struct {
	MentorID string
	From     time.Time
	To       time.Time
}

type CalendarRepository interface {
	ListAvailability(ctx context.Context, f AvailabilityFilter) ([]entity.Availability, error)
	// Book reserves a seat. It fails with ErrNotFound, ErrSlotUnavailable,
	// ErrSlotFull or ErrAlreadyBooked.
	Book(ctx context.Context, availabilityID, userID string) (*entity.Booking, error)
	UserBookings(ctx context.Context, userID string) ([]entity.Booking, error)
	ListEvents(ctx context.Context, from, to time.Time) ([]entity.Event, error)
	// RegisterEvent fails with ErrNotFound, ErrAlreadyRegistered or ErrEventFull.
	RegisterEvent(ctx context.Context, eventID, userID string) (*entity.EventRegistration, error)
	UserRegistrations(ctx context.Context, userID string) ([]entity.EventRegistration, error)
}
