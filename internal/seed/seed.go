// Package seed loads the reference catalog (diagnostic questions, courses,
// achievements, mentors, agenda) and a demo account. Every step is
// idempotent, so seeding twice leaves the database unchanged.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/emprendevoz/emprende-api/internal/domain/diagnostic"
	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	"github.com/emprendevoz/emprende-api/pkg/helpers"
)

type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const (
	DemoEmail    = "demo@emprendevoz.app"
	DemoPassword = "emprende123"
)

type Seeder struct {
	DB     DB
	Logger *logrus.Logger
	Now    func() time.Time
}

func New(db DB, logger *logrus.Logger) *Seeder {
	return &Seeder{DB: db, Logger: logger, Now: time.Now}
}

// Run applies every step in dependency order.
func (s *Seeder) Run(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) (int, error)
	}{
		{"diagnostic_questions", s.Questions},
		{"courses", s.Courses},
		{"achievements", s.Achievements},
		{"mentors", s.Mentors},
		{"mentor_availability", s.Availability},
		{"events", s.Events},
		{"demo_user", s.DemoUser},
	}
	for _, st := range steps {
		n, err := st.fn(ctx)
		if err != nil {
			return errors.Wrapf(err, "seed %s", st.name)
		}
		s.Logger.WithField("step", st.name).WithField("inserted", n).Info("seeded")
	}
	return nil
}

func (s *Seeder) exec(ctx context.Context, sql string, args ...any) (int, error) {
	tag, err := s.DB.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (s *Seeder) Questions(ctx context.Context) (int, error) {
	total := 0
	for i, q := range Questions {
		n, err := s.exec(ctx, `
			INSERT INTO diagnostic_questions (order_index, question, options)
			VALUES ($1, $2, $3)
			ON CONFLICT (order_index) DO NOTHING`, i+1, q.Question, q.Options)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func (s *Seeder) Courses(ctx context.Context) (int, error) {
	total := 0
	for _, c := range Courses() {
		n, err := s.exec(ctx, `
			INSERT INTO courses (title, description, category, route_type, module_code, order_number, duration_minutes)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (route_type, order_number) DO NOTHING`,
			c.Title, c.Description, c.Category, c.RouteType, c.ModuleCode, c.OrderNumber, c.DurationMinutes)
		if err != nil {
			return total, err
		}
		total += n
		for i, title := range c.Sections {
			n, err := s.exec(ctx, `
				INSERT INTO course_sections (course_id, title, content, order_index, duration_minutes)
				SELECT id, $3, $4, $5, $6 FROM courses WHERE route_type = $1 AND order_number = $2
				ON CONFLICT (course_id, order_index) DO NOTHING`,
				c.RouteType, c.OrderNumber, title, "Contenido de "+title, i+1, c.DurationMinutes/len(c.Sections))
			if err != nil {
				return total, err
			}
			total += n
		}
	}
	return total, nil
}

func (s *Seeder) Achievements(ctx context.Context) (int, error) {
	total := 0
	for _, a := range Achievements {
		n, err := s.exec(ctx, `
			INSERT INTO achievements (code, name, description, icon, points, category, trigger_type, threshold)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (code) DO NOTHING`,
			a.Code, a.Name, a.Description, a.Icon, a.Points, a.Category, a.TriggerType, a.Threshold)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func (s *Seeder) Mentors(ctx context.Context) (int, error) {
	total := 0
	for _, m := range Mentors {
		n, err := s.exec(ctx, `
			INSERT INTO mentors (name, specialty, bio)
			SELECT $1, $2, $3
			WHERE NOT EXISTS (SELECT 1 FROM mentors WHERE name = $1)`, m.Name, m.Specialty, m.Bio)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// Availability opens one morning slot per mentor on each of the next five weekdays.
func (s *Seeder) Availability(ctx context.Context) (int, error) {
	total := 0
	for _, day := range nextWeekdays(s.Now(), 5) {
		for i, m := range Mentors {
			start := fmt.Sprintf("%02d:00", 9+i)
			end := fmt.Sprintf("%02d:00", 10+i)
			n, err := s.exec(ctx, `
				INSERT INTO mentor_availability (mentor_id, date, start_time, end_time, session_type, max_participants)
				SELECT id, $2, $3, $4, 'individual', 1 FROM mentors m
				WHERE m.name = $1 AND NOT EXISTS (
					SELECT 1 FROM mentor_availability a WHERE a.mentor_id = m.id AND a.date = $2 AND a.start_time = $3)`,
				m.Name, day.Format(helpers.DateLayout), start, end)
			if err != nil {
				return total, err
			}
			total += n
		}
	}
	return total, nil
}

func (s *Seeder) Events(ctx context.Context) (int, error) {
	total := 0
	base := s.Now().UTC().Truncate(24 * time.Hour)
	for _, e := range Events {
		start := base.AddDate(0, 0, e.InDays).Add(time.Duration(e.Hour) * time.Hour)
		n, err := s.exec(ctx, `
			INSERT INTO events (title, description, event_type, start_date, end_date, location, is_virtual, max_participants)
			SELECT $1, $2, $3, $4, $5, $6, $7, $8
			WHERE NOT EXISTS (SELECT 1 FROM events WHERE title = $1)`,
			e.Title, e.Description, e.Type, start, start.Add(2*time.Hour), e.Location, e.Virtual, e.MaxParticipants)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DemoUser creates the demo account on the pre-incubation route and assigns it the first mentor.
func (s *Seeder) DemoUser(ctx context.Context) (int, error) {
	hash, err := helpers.HashPassword(DemoPassword)
	if err != nil {
		return 0, err
	}
	n, err := s.exec(ctx, `
		INSERT INTO profiles (email, password_hash, provider, full_name, city, business_sector, assigned_route, business_stage)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (email) DO NOTHING`,
		DemoEmail, hash, entity.ProviderPassword, "Emprendedora Demo", "Bogotá", "Alimentos", diagnostic.RoutePre, diagnostic.StageIdea)
	if err != nil {
		return 0, err
	}
	m, err := s.exec(ctx, `
		INSERT INTO mentor_assignments (user_id, mentor_id)
		SELECT p.id, m.id FROM profiles p, mentors m
		WHERE p.email = $1 AND m.name = $2
		  AND NOT EXISTS (SELECT 1 FROM mentor_assignments a WHERE a.user_id = p.id AND a.active)`,
		DemoEmail, Mentors[0].Name)
	return n + m, err
}

func nextWeekdays(from time.Time, count int) []time.Time {
	days := make([]time.Time, 0, count)
	d := from.UTC().Truncate(24 * time.Hour)
	for len(days) < count {
		d = d.AddDate(0, 0, 1)
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		days = append(days, d)
	}
	return days
}
