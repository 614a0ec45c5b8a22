package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	"github.com/emprendevoz/emprende-api/internal/domain/repository"
)

const availabilitySelect = `
	SELECT a.id, a.mentor_id, COALESCE(m.name, ''), to_char(a.date, 'YYYY-MM-DD'),
	       to_char(a.start_time, 'HH24:MI'), to_char(a.end_time, 'HH24:MI'),
	       a.session_type, a.max_participants, a.is_available, a.booked_count
	FROM mentor_availability a
	LEFT JOIN mentors m ON m.id = a.mentor_id`

const eventColumns = `id, title, description, event_type, start_date, end_date, location,
	is_virtual, max_participants, registered_count, registration_url`

type CalendarRepository struct {
	db DB
}

func NewCalendarRepository(db DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

func scanAvailability(row pgx.Row, a *entity.Availability) error {
	return row.Scan(&a.ID, &a.MentorID, &a.MentorName, &a.Date, &a.StartTime, &a.EndTime,
		&a.SessionType, &a.MaxParticipants, &a.IsAvailable, &a.BookedCount)
}

func scanEvent(row pgx.Row, e *entity.Event) error {
	return row.Scan(&e.ID, &e.Title, &e.Description, &e.EventType, &e.StartDate, &e.EndDate, &e.Location,
		&e.IsVirtual, &e.MaxParticipants, &e.RegisteredCount, &e.RegistrationURL)
}

func (r *CalendarRepository) ListAvailability(ctx context.Context, f repository.AvailabilityFilter) ([]entity.Availability, error) {
	rows, err := r.db.Query(ctx, availabilitySelect+`
		WHERE a.is_available
		  AND ($1 = '' OR a.mentor_id::text = $1)
		  AND ($2::date IS NULL OR a.date >= $2::date)
		  AND ($3::date IS NULL OR a.date <= $3::date)
		ORDER BY a.date, a.start_time
	`, f.MentorID, dateOrNil(f.From), dateOrNil(f.To))
	if err != nil {
		return nil, wrap(err, "list availability")
	}
	defer rows.Close()

	out := []entity.Availability{}
	for rows.Next() {
		var a entity.Availability
		if err := scanAvailability(rows, &a); err != nil {
			return nil, wrap(err, "scan availability")
		}
		out = append(out, a)
	}
	return out, wrap(rows.Err(), "list availability")
}

// Book locks the slot row so concurrent bookings cannot overfill it.
func (r *CalendarRepository) Book(ctx context.Context, availabilityID, userID string) (*entity.Booking, error) {
	b := &entity.Booking{AvailabilityID: availabilityID, UserID: userID, Status: "confirmed"}
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		a := &entity.Availability{}
		if err := scanAvailability(tx.QueryRow(ctx, availabilitySelect+`
			WHERE a.id = $1
			FOR UPDATE OF a
		`, availabilityID), a); err != nil {
			return wrap(err, "lock availability")
		}
		if !a.IsAvailable {
			return repository.ErrSlotUnavailable
		}
		if a.BookedCount >= a.MaxParticipants {
			return repository.ErrSlotFull
		}

		var exists bool
		if err := tx.QueryRow(ctx, `
			SELECT EXISTS (SELECT 1 FROM mentor_bookings WHERE availability_id = $1 AND user_id = $2)
		`, availabilityID, userID).Scan(&exists); err != nil {
			return wrap(err, "check booking")
		}
		if exists {
			return repository.ErrAlreadyBooked
		}

		if err := tx.QueryRow(ctx, `
			INSERT INTO mentor_bookings (availability_id, user_id, status)
			VALUES ($1, $2, $3)
			RETURNING id, created_at
		`, availabilityID, userID, b.Status).Scan(&b.ID, &b.CreatedAt); err != nil {
			return wrap(err, "create booking")
		}
		if _, err := tx.Exec(ctx, `
			UPDATE mentor_availability SET booked_count = booked_count + 1 WHERE id = $1
		`, availabilityID); err != nil {
			return wrap(err, "increment booked count")
		}
		a.BookedCount++
		b.Availability = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *CalendarRepository) UserBookings(ctx context.Context, userID string) ([]entity.Booking, error) {
	rows, err := r.db.Query(ctx, `
		SELECT b.id, b.availability_id, b.user_id, b.status, b.created_at,
		       a.id, a.mentor_id, COALESCE(m.name, ''), to_char(a.date, 'YYYY-MM-DD'),
		       to_char(a.start_time, 'HH24:MI'), to_char(a.end_time, 'HH24:MI'),
		       a.session_type, a.max_participants, a.is_available, a.booked_count
		FROM mentor_bookings b
		JOIN mentor_availability a ON a.id = b.availability_id
		LEFT JOIN mentors m ON m.id = a.mentor_id
		WHERE b.user_id = $1
		ORDER BY a.date, a.start_time
	`, userID)
	if err != nil {
		return nil, wrap(err, "user bookings")
	}
	defer rows.Close()

	out := []entity.Booking{}
	for rows.Next() {
		var b entity.Booking
		a := &entity.Availability{}
		if err := rows.Scan(&b.ID, &b.AvailabilityID, &b.UserID, &b.Status, &b.CreatedAt,
			&a.ID, &a.MentorID, &a.MentorName, &a.Date, &a.StartTime, &a.EndTime,
			&a.SessionType, &a.MaxParticipants, &a.IsAvailable, &a.BookedCount); err != nil {
			return nil, wrap(err, "scan booking")
		}
		b.Availability = a
		out = append(out, b)
	}
	return out, wrap(rows.Err(), "user bookings")
}

func (r *CalendarRepository) ListEvents(ctx context.Context, from, to time.Time) ([]entity.Event, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE ($1::date IS NULL OR start_date >= $1::date)
		  AND ($2::date IS NULL OR start_date < $2::date + 1)
		ORDER BY start_date
	`, dateOrNil(from), dateOrNil(to))
	if err != nil {
		return nil, wrap(err, "list events")
	}
	defer rows.Close()

	out := []entity.Event{}
	for rows.Next() {
		var e entity.Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, wrap(err, "scan event")
		}
		out = append(out, e)
	}
	return out, wrap(rows.Err(), "list events")
}

func (r *CalendarRepository) RegisterEvent(ctx context.Context, eventID, userID string) (*entity.EventRegistration, error) {
	reg := &entity.EventRegistration{EventID: eventID, UserID: userID}
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		e := &entity.Event{}
		if err := scanEvent(tx.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1 FOR UPDATE`, eventID), e); err != nil {
			return wrap(err, "lock event")
		}

		var exists bool
		if err := tx.QueryRow(ctx, `
			SELECT EXISTS (SELECT 1 FROM event_registrations WHERE event_id = $1 AND user_id = $2)
		`, eventID, userID).Scan(&exists); err != nil {
			return wrap(err, "check registration")
		}
		if exists {
			return repository.ErrAlreadyRegistered
		}
		if e.MaxParticipants > 0 && e.RegisteredCount >= e.MaxParticipants {
			return repository.ErrEventFull
		}

		if err := tx.QueryRow(ctx, `
			INSERT INTO event_registrations (event_id, user_id)
			VALUES ($1, $2)
			RETURNING id, created_at
		`, eventID, userID).Scan(&reg.ID, &reg.CreatedAt); err != nil {
			return wrap(err, "create registration")
		}
		if _, err := tx.Exec(ctx, `UPDATE events SET registered_count = registered_count + 1 WHERE id = $1`, eventID); err != nil {
			return wrap(err, "increment registered count")
		}
		e.RegisteredCount++
		reg.Event = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reg, nil
}

func (r *CalendarRepository) UserRegistrations(ctx context.Context, userID string) ([]entity.EventRegistration, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.event_id, r.user_id, r.created_at,
		       e.id, e.title, e.description, e.event_type, e.start_date, e.end_date, e.location,
		       e.is_virtual, e.max_participants, e.registered_count, e.registration_url
		FROM event_registrations r
		JOIN events e ON e.id = r.event_id
		WHERE r.user_id = $1
		ORDER BY e.start_date
	`, userID)
	if err != nil {
		return nil, wrap(err, "user registrations")
	}
	defer rows.Close()

	out := []entity.EventRegistration{}
	for rows.Next() {
		var reg entity.EventRegistration
		e := &entity.Event{}
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.CreatedAt,
			&e.ID, &e.Title, &e.Description, &e.EventType, &e.StartDate, &e.EndDate, &e.Location,
			&e.IsVirtual, &e.MaxParticipants, &e.RegisteredCount, &e.RegistrationURL); err != nil {
			return nil, wrap(err, "scan registration")
		}
		reg.Event = e
		out = append(out, reg)
	}
	return out, wrap(rows.Err(), "user registrations")
}

var _ repository.CalendarRepository = (*CalendarRepository)(nil)
