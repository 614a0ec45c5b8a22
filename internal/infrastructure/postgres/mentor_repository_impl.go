package postgres

import (
	"context"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	"github.com/emprendevoz/emprende-api/internal/domain/repository"
)

type MentorRepository struct {
	db DB
}

func NewMentorRepository(db DB) *MentorRepository {
	return &MentorRepository{db: db}
}

func (r *MentorRepository) ListAvailable(ctx context.Context) ([]entity.Mentor, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, specialty, bio, avatar_url, available
		FROM mentors
		WHERE available
		ORDER BY name
	`)
	if err != nil {
		return nil, wrap(err, "list mentors")
	}
	defer rows.Close()

	out := []entity.Mentor{}
	for rows.Next() {
		var m entity.Mentor
		if err := rows.Scan(&m.ID, &m.Name, &m.Specialty, &m.Bio, &m.AvatarURL, &m.Available); err != nil {
			return nil, wrap(err, "scan mentor")
		}
		out = append(out, m)
	}
	return out, wrap(rows.Err(), "list mentors")
}

func (r *MentorRepository) ActiveAssignment(ctx context.Context, userID string) (*entity.MentorAssignment, error) {
	a := &entity.MentorAssignment{}
	m := &a.Mentor
	err := r.db.QueryRow(ctx, `
		SELECT a.id, a.user_id, a.mentor_id, a.active, a.start_date,
		       m.id, m.name, m.specialty, m.bio, m.avatar_url, m.available
		FROM mentor_assignments a
		JOIN mentors m ON m.id = a.mentor_id
		WHERE a.user_id = $1 AND a.active
		ORDER BY a.start_date DESC
		LIMIT 1
	`, userID).Scan(&a.ID, &a.UserID, &a.MentorID, &a.Active, &a.StartDate,
		&m.ID, &m.Name, &m.Specialty, &m.Bio, &m.AvatarURL, &m.Available)
	if err != nil {
		return nil, wrap(err, "active assignment")
	}
	return a, nil
}

func (r *MentorRepository) Messages(ctx context.Context, assignmentID string) ([]entity.MentorMessage, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, assignment_id, sender, content, read, created_at
		FROM mentor_messages
		WHERE assignment_id = $1
		ORDER BY created_at
	`, assignmentID)
	if err != nil {
		return nil, wrap(err, "list messages")
	}
	defer rows.Close()

	out := []entity.MentorMessage{}
	for rows.Next() {
		var m entity.MentorMessage
		if err := rows.Scan(&m.ID, &m.AssignmentID, &m.Sender, &m.Content, &m.Read, &m.CreatedAt); err != nil {
			return nil, wrap(err, "scan message")
		}
		out = append(out, m)
	}
	return out, wrap(rows.Err(), "list messages")
}

func (r *MentorRepository) AddMessage(ctx context.Context, m *entity.MentorMessage) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO mentor_messages (assignment_id, sender, content)
		VALUES ($1, $2, $3)
		RETURNING id, read, created_at
	`, m.AssignmentID, m.Sender, m.Content)
	return wrap(row.Scan(&m.ID, &m.Read, &m.CreatedAt), "create message")
}

var _ repository.MentorRepository = (*MentorRepository)(nil)
