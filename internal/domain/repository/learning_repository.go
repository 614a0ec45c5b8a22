package repository

import (
	"context"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
)

// CourseCounts is a course with the caller's section totals.
type CourseCounts struct {
	CourseID    string
	Title       string
	RouteType   string
	ModuleCode  string
	OrderNumber int
	Total       int
	Completed   int
}

type LearningRepository interface {
	// ListCourses returns courses ordered by order_number; an empty routeType lists all.
	ListCourses(ctx context.Context, routeType string) ([]entity.Course, error)
	GetCourse(ctx context.Context, id string) (*entity.Course, error)
	ListSections(ctx context.Context, courseID string) ([]entity.CourseSection, error)
	GetSection(ctx context.Context, id string) (*entity.CourseSection, error)
	// CompletedSections returns the ids of sections of courseID the user has completed.
	CompletedSections(ctx context.Context, userID, courseID string) (map[string]bool, error)
	UpsertSectionProgress(ctx context.Context, p *entity.SectionProgress) error
	// CourseCounts returns every course of routeType (all when empty) with the user's counts.
	CourseCounts(ctx context.Context, userID, routeType string) ([]CourseCounts, error)
}
