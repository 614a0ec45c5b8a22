package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	"github.com/emprendevoz/emprende-api/internal/domain/gating"
	repo "github.com/emprendevoz/emprende-api/internal/domain/repository"
)

const coursesCacheTTL = 5 * time.Minute

type LearningService struct {
	Learning     repo.LearningRepository
	Profiles     repo.ProfileRepository
	Cache        Cache
	Achievements AchievementChecker
	Certificates CertificateIssuer
	Logger       *logrus.Logger
}

func NewLearningService(learning repo.LearningRepository, profiles repo.ProfileRepository, cache Cache, achievements AchievementChecker, certs CertificateIssuer, logger *logrus.Logger) *LearningService {
	return &LearningService{
		Learning:     learning,
		Profiles:     profiles,
		Cache:        cache,
		Achievements: achievements,
		Certificates: certs,
		Logger:       logger,
	}
}

// Courses lists the catalog of one route, or every route when routeType is empty.
func (s *LearningService) Courses(ctx context.Context, routeType string) ([]entity.Course, error) {
	key := "courses:" + routeType
	var cached []entity.Course
	if ok, err := s.Cache.GetJSON(ctx, key, &cached); err != nil {
		s.Logger.WithError(err).Warn("course cache read failed")
	} else if ok {
		return cached, nil
	}

	courses, err := s.Learning.ListCourses(ctx, routeType)
	if err != nil {
		return nil, err
	}
	if err := s.Cache.SetJSON(ctx, key, courses, coursesCacheTTL); err != nil {
		s.Logger.WithError(err).Warn("course cache write failed")
	}
	return courses, nil
}

type CourseView struct {
	entity.Course
	Unlocked           bool `json:"unlocked"`
	Completed          bool `json:"completed"`
	ProgressPercentage int  `json:"progress_percentage"`
}

func (s *LearningService) progressOf(ctx context.Context, userID string) ([]CourseProgress, error) {
	counts, err := s.Learning.CourseCounts(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	return courseProgress(counts), nil
}

func (s *LearningService) course(ctx context.Context, courseID string) (*entity.Course, error) {
	c, err := s.Learning.GetCourse(ctx, courseID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	return c, err
}

func (s *LearningService) Course(ctx context.Context, userID, courseID string) (*CourseView, error) {
	c, err := s.course(ctx, courseID)
	if err != nil {
		return nil, err
	}
	progress, err := s.progressOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	cp, _ := findCourse(progress, courseID)
	return &CourseView{Course: *c, Unlocked: cp.Unlocked, Completed: cp.Completed, ProgressPercentage: cp.ProgressPercentage}, nil
}

type SectionView struct {
	entity.CourseSection
	Unlocked  bool `json:"unlocked"`
	Completed bool `json:"completed"`
}

// Sections lists a course's sections with the caller's gate state. Every
// section of a locked course is locked.
func (s *LearningService) Sections(ctx context.Context, userID, courseID string) ([]SectionView, error) {
	if _, err := s.course(ctx, courseID); err != nil {
		return nil, err
	}
	progress, err := s.progressOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	cp, _ := findCourse(progress, courseID)
	return s.sectionViews(ctx, userID, courseID, cp.Unlocked)
}

func (s *LearningService) sectionViews(ctx context.Context, userID, courseID string, courseUnlocked bool) ([]SectionView, error) {
	sections, err := s.Learning.ListSections(ctx, courseID)
	if err != nil {
		return nil, err
	}
	done, err := s.Learning.CompletedSections(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	flags := make([]bool, len(sections))
	for i, sec := range sections {
		flags[i] = done[sec.ID]
	}
	open := gating.States(flags)
	out := make([]SectionView, len(sections))
	for i, sec := range sections {
		out[i] = SectionView{CourseSection: sec, Completed: flags[i], Unlocked: courseUnlocked && open[i]}
	}
	return out, nil
}

// Progress lists the courses of the user's assigned route, or all of them before the diagnostic.
func (s *LearningService) Progress(ctx context.Context, userID string) ([]CourseProgress, error) {
	route := ""
	p, err := s.Profiles.GetByID(ctx, userID)
	switch {
	case err == nil:
		route = p.AssignedRoute
	case !errors.Is(err, repo.ErrNotFound):
		return nil, err
	}
	counts, err := s.Learning.CourseCounts(ctx, userID, route)
	if err != nil {
		return nil, err
	}
	return courseProgress(counts), nil
}

type SectionState struct {
	SectionID string `json:"section_id"`
	Completed bool   `json:"completed"`
}

type CourseDetailProgress struct {
	CourseID           string         `json:"course_id"`
	ProgressPercentage int            `json:"progress_percentage"`
	SectionsProgress   []SectionState `json:"sections_progress"`
}

func (s *LearningService) CourseProgress(ctx context.Context, userID, courseID string) (*CourseDetailProgress, error) {
	if _, err := s.course(ctx, courseID); err != nil {
		return nil, err
	}
	sections, err := s.Learning.ListSections(ctx, courseID)
	if err != nil {
		return nil, err
	}
	done, err := s.Learning.CompletedSections(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	out := &CourseDetailProgress{CourseID: courseID, SectionsProgress: make([]SectionState, 0, len(sections))}
	completed := 0
	for _, sec := range sections {
		if done[sec.ID] {
			completed++
		}
		out.SectionsProgress = append(out.SectionsProgress, SectionState{SectionID: sec.ID, Completed: done[sec.ID]})
	}
	out.ProgressPercentage = gating.Progress(completed, len(sections))
	return out, nil
}

type SectionResult struct {
	CourseID             string                `json:"course_id"`
	ProgressPercentage   int                   `json:"progress_percentage"`
	CourseCompleted      bool                  `json:"course_completed"`
	UnlockedAchievements []UnlockedAchievement `json:"unlocked_achievements"`
	Certificate          *CertificateView      `json:"certificate,omitempty"`
}

// CompleteSection marks a section done (or undone). The section and its
// course must be unlocked. Completing the last section of a course runs the
// achievement checks and issues the module certificate when it becomes due.
func (s *LearningService) CompleteSection(ctx context.Context, userID, sectionID string, completed bool) (*SectionResult, error) {
	sec, err := s.Learning.GetSection(ctx, sectionID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	course, err := s.course(ctx, sec.CourseID)
	if err != nil {
		return nil, err
	}

	before, err := s.progressOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	cpBefore, _ := findCourse(before, course.ID)
	if !cpBefore.Unlocked {
		return nil, ErrLocked
	}
	views, err := s.sectionViews(ctx, userID, course.ID, true)
	if err != nil {
		return nil, err
	}
	for _, v := range views {
		if v.ID == sectionID && !v.Unlocked {
			return nil, ErrLocked
		}
	}

	err = s.Learning.UpsertSectionProgress(ctx, &entity.SectionProgress{
		UserID:    userID,
		SectionID: sectionID,
		CourseID:  course.ID,
		Completed: completed,
	})
	if err != nil {
		return nil, err
	}

	after, err := s.progressOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	cpAfter, _ := findCourse(after, course.ID)
	res := &SectionResult{
		CourseID:             course.ID,
		ProgressPercentage:   cpAfter.ProgressPercentage,
		CourseCompleted:      cpAfter.Completed,
		UnlockedAchievements: []UnlockedAchievement{},
	}
	if cpBefore.Completed || !cpAfter.Completed {
		return res, nil
	}

	log := s.Logger.WithFields(logrus.Fields{"user_id": userID, "course_id": course.ID})
	log.Info("course completed")
	n := completedCourses(after)
	res.UnlockedAchievements = append(res.UnlockedAchievements, s.check(ctx, userID, entity.TriggerCourseCompleted, n)...)
	if n == 1 {
		res.UnlockedAchievements = append(res.UnlockedAchievements, s.check(ctx, userID, entity.TriggerFirstCourseCompleted, 1)...)
	}
	if course.ModuleCode != "" && moduleComplete(after, course.ModuleCode) {
		cert, err := s.Certificates.IssueIfComplete(ctx, userID, course.ModuleCode)
		if err != nil {
			log.WithError(err).Error("issue certificate failed")
		} else {
			res.Certificate = cert
		}
	}
	return res, nil
}

func (s *LearningService) check(ctx context.Context, userID, trigger string, value int) []UnlockedAchievement {
	got, err := s.Achievements.Check(ctx, userID, trigger, value)
	if err != nil {
		s.Logger.WithError(err).WithField("trigger", trigger).Error("achievement check failed")
		return nil
	}
	return got
}
