package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	repo "github.com/emprendevoz/emprende-api/internal/domain/repository"
)

// CalendarService books mentor slots and registers users to events.
// Booking conflicts surface as the repository's ErrSlot*/ErrAlready*/ErrEventFull values.
type CalendarService struct {
	Calendar repo.CalendarRepository
	Profiles repo.ProfileRepository
	Events   EventPublisher
	Notifier *Notifier
	Logger   *logrus.Logger
}

func NewCalendarService(calendar repo.CalendarRepository, profiles repo.ProfileRepository, publisher EventPublisher, notifier *Notifier, logger *logrus.Logger) *CalendarService {
	return &CalendarService{Calendar: calendar, Profiles: profiles, Events: publisher, Notifier: notifier, Logger: logger}
}

func notFound(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *CalendarService) Availability(ctx context.Context, f repo.AvailabilityFilter) ([]entity.Availability, error) {
	return s.Calendar.ListAvailability(ctx, f)
}

func (s *CalendarService) Book(ctx context.Context, availabilityID, userID string) (*entity.Booking, error) {
	b, err := s.Calendar.Book(ctx, availabilityID, userID)
	if err != nil {
		return nil, notFound(err)
	}
	s.Logger.WithFields(logrus.Fields{"user_id": userID, "availability_id": availabilityID}).Info("session booked")
	s.Events.Publish(ctx, entity.EventBookingCreated, userID, map[string]any{
		"booking_id":      b.ID,
		"availability_id": availabilityID,
	})
	if p, err := s.Profiles.GetByID(ctx, userID); err == nil {
		s.Notifier.BookingConfirmed(ctx, p, b.Availability)
	}
	return b, nil
}

func (s *CalendarService) UserBookings(ctx context.Context, userID string) ([]entity.Booking, error) {
	return s.Calendar.UserBookings(ctx, userID)
}

func (s *CalendarService) ListEvents(ctx context.Context, from, to time.Time) ([]entity.Event, error) {
	return s.Calendar.ListEvents(ctx, from, to)
}

func (s *CalendarService) RegisterEvent(ctx context.Context, eventID, userID string) (*entity.EventRegistration, error) {
	reg, err := s.Calendar.RegisterEvent(ctx, eventID, userID)
	if err != nil {
		return nil, notFound(err)
	}
	return reg, nil
}

func (s *CalendarService) UserRegistrations(ctx context.Context, userID string) ([]entity.EventRegistration, error) {
	return s.Calendar.UserRegistrations(ctx, userID)
}
