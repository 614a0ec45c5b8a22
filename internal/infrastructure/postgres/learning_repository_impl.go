package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	"github.com/emprendevoz/emprende-api/internal/domain/repository"
)

const courseColumns = `id, title, description, category, route_type, module_code, order_number,
	duration_minutes, thumbnail_url, video_url, downloadable, created_at`

const sectionColumns = `id, course_id, title, content, video_url, order_index, duration_minutes`

type LearningRepository struct {
	db DB
}

func NewLearningRepository(db DB) *LearningRepository {
	return &LearningRepository{db: db}
}

func scanCourse(row pgx.Row, c *entity.Course) error {
	return row.Scan(&c.ID, &c.Title, &c.Description, &c.Category, &c.RouteType, &c.ModuleCode, &c.OrderNumber,
		&c.DurationMinutes, &c.ThumbnailURL, &c.VideoURL, &c.Downloadable, &c.CreatedAt)
}

func scanSection(row pgx.Row, s *entity.CourseSection) error {
	return row.Scan(&s.ID, &s.CourseID, &s.Title, &s.Content, &s.VideoURL, &s.OrderIndex, &s.DurationMinutes)
}

func (r *LearningRepository) ListCourses(ctx context.Context, routeType string) ([]entity.Course, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+courseColumns+`
		FROM courses
		WHERE ($1 = '' OR route_type = $1)
		ORDER BY route_type, order_number
	`, routeType)
	if err != nil {
		return nil, wrap(err, "list courses")
	}
	defer rows.Close()

	out := []entity.Course{}
	for rows.Next() {
		var c entity.Course
		if err := scanCourse(rows, &c); err != nil {
			return nil, wrap(err, "scan course")
		}
		out = append(out, c)
	}
	return out, wrap(rows.Err(), "list courses")
}

func (r *LearningRepository) GetCourse(ctx context.Context, id string) (*entity.Course, error) {
	c := &entity.Course{}
	if err := scanCourse(r.db.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id), c); err != nil {
		return nil, wrap(err, "get course")
	}
	return c, nil
}

func (r *LearningRepository) ListSections(ctx context.Context, courseID string) ([]entity.CourseSection, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+sectionColumns+`
		FROM course_sections
		WHERE course_id = $1
		ORDER BY order_index
	`, courseID)
	if err != nil {
		return nil, wrap(err, "list sections")
	}
	defer rows.Close()

	out := []entity.CourseSection{}
	for rows.Next() {
		var s entity.CourseSection
		if err := scanSection(rows, &s); err != nil {
			return nil, wrap(err, "scan section")
		}
		out = append(out, s)
	}
	return out, wrap(rows.Err(), "list sections")
}

func (r *LearningRepository) GetSection(ctx context.Context, id string) (*entity.CourseSection, error) {
	s := &entity.CourseSection{}
	if err := scanSection(r.db.QueryRow(ctx, `SELECT `+sectionColumns+` FROM course_sections WHERE id = $1`, id), s); err != nil {
		return nil, wrap(err, "get section")
	}
	return s, nil
}

func (r *LearningRepository) CompletedSections(ctx context.Context, userID, courseID string) (map[string]bool, error) {
	rows, err := r.db.Query(ctx, `
		SELECT section_id
		FROM section_progress
		WHERE user_id = $1 AND course_id = $2 AND completed
	`, userID, courseID)
	if err != nil {
		return nil, wrap(err, "completed sections")
	}
	defer rows.Close()

	out := map[string]bool{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, wrap(err, "scan section progress")
		}
		out[id] = true
	}
	return out, wrap(rows.Err(), "completed sections")
}

func (r *LearningRepository) UpsertSectionProgress(ctx context.Context, p *entity.SectionProgress) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO section_progress (user_id, section_id, course_id, completed, completed_at)
		VALUES ($1, $2, $3, $4, CASE WHEN $4 THEN now() END)
		ON CONFLICT (user_id, section_id) DO UPDATE
		SET completed = EXCLUDED.completed,
		    completed_at = CASE
		        WHEN EXCLUDED.completed AND section_progress.completed THEN section_progress.completed_at
		        ELSE EXCLUDED.completed_at
		    END
	`, p.UserID, p.SectionID, p.CourseID, p.Completed)
	return wrap(err, "upsert section progress")
}

func (r *LearningRepository) CourseCounts(ctx context.Context, userID, routeType string) ([]repository.CourseCounts, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.title, c.route_type, c.module_code, c.order_number,
		       COUNT(s.id) AS total,
		       COUNT(sp.section_id) FILTER (WHERE sp.completed) AS completed
		FROM courses c
		LEFT JOIN course_sections s ON s.course_id = c.id
		LEFT JOIN section_progress sp ON sp.section_id = s.id AND sp.user_id = $1
		WHERE ($2 = '' OR c.route_type = $2)
		GROUP BY c.id
		ORDER BY c.route_type, c.order_number
	`, userID, routeType)
	if err != nil {
		return nil, wrap(err, "course counts")
	}
	defer rows.Close()

	out := []repository.CourseCounts{}
	for rows.Next() {
		var c repository.CourseCounts
		if err := rows.Scan(&c.CourseID, &c.Title, &c.RouteType, &c.ModuleCode, &c.OrderNumber, &c.Total, &c.Completed); err != nil {
			return nil, wrap(err, "scan course counts")
		}
		out = append(out, c)
	}
	return out, wrap(rows.Err(), "course counts")
}

var _ repository.LearningRepository = (*LearningRepository)(nil)
