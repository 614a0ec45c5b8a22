package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	repo "github.com/emprendevoz/emprende-api/internal/domain/repository"
	"github.com/emprendevoz/emprende-api/pkg/helpers"
)

type ProfileService struct {
	Profiles     repo.ProfileRepository
	Sessions     SessionStore
	Storage      ObjectStore
	Learning     repo.LearningRepository
	Achievements repo.AchievementRepository
	Logger       *logrus.Logger
}

func NewProfileService(profiles repo.ProfileRepository, sessions SessionStore, storage ObjectStore, learning repo.LearningRepository, achievements repo.AchievementRepository, logger *logrus.Logger) *ProfileService {
	return &ProfileService{
		Profiles:     profiles,
		Sessions:     sessions,
		Storage:      storage,
		Learning:     learning,
		Achievements: achievements,
		Logger:       logger,
	}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*entity.Profile, error) {
	p, err := s.Profiles.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	return p, err
}

// UpdateProfileInput fields left nil keep their stored value.
type UpdateProfileInput struct {
	FullName       *string
	Age            *int
	City           *string
	BusinessSector *string
	BusinessName   *string
	Phone          *string
	Bio            *string
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func (s *ProfileService) Update(ctx context.Context, userID string, in UpdateProfileInput) (*entity.Profile, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	setIf(&p.FullName, in.FullName)
	setIf(&p.Age, in.Age)
	setIf(&p.City, in.City)
	setIf(&p.BusinessSector, in.BusinessSector)
	setIf(&p.BusinessName, in.BusinessName)
	setIf(&p.Phone, in.Phone)
	setIf(&p.Bio, in.Bio)
	if err := s.Profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	s.syncSession(ctx, p)
	return p, nil
}

// syncSession keeps the cached identity in step with the profile.
func (s *ProfileService) syncSession(ctx context.Context, p *entity.Profile) {
	if err := s.Sessions.UpdateIdentity(ctx, p.ID, p.FullName, p.AvatarURL); err != nil {
		s.Logger.WithError(err).WithField("user_id", p.ID).Warn("session identity update failed")
	}
}

// UploadAvatar stores the image under avatars/<uid>/ and points the profile at it.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: file must be an image", ErrInvalidInput)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	url, err := s.Storage.Upload(ctx, path.Join("avatars", userID, uuid.NewString()+ext), contentType, r)
	if err != nil {
		if errors.Is(err, helpers.ErrStorageDisabled) {
			return "", ErrStorageDisabled
		}
		return "", err
	}
	p.AvatarURL = url
	if err := s.Profiles.Update(ctx, p); err != nil {
		return "", err
	}
	s.syncSession(ctx, p)
	return url, nil
}

type ProfileStats struct {
	TotalPoints          int `json:"total_points"`
	Level                int `json:"level"`
	CompletedCourses     int `json:"completed_courses"`
	TotalCourses         int `json:"total_courses"`
	UnlockedAchievements int `json:"unlocked_achievements"`
	TotalAchievements    int `json:"total_achievements"`
}

// Stats counts courses of the user's assigned route, or all courses before the diagnostic.
func (s *ProfileService) Stats(ctx context.Context, userID string) (*ProfileStats, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	counts, err := s.Learning.CourseCounts(ctx, userID, p.AssignedRoute)
	if err != nil {
		return nil, err
	}
	progress := courseProgress(counts)

	catalog, err := s.Achievements.List(ctx)
	if err != nil {
		return nil, err
	}
	mine, err := s.Achievements.UserAchievements(ctx, userID)
	if err != nil {
		return nil, err
	}
	unlocked := 0
	for _, ua := range mine {
		if ua.Unlocked {
			unlocked++
		}
	}

	return &ProfileStats{
		TotalPoints:          p.TotalPoints,
		Level:                entity.LevelFor(p.TotalPoints),
		CompletedCourses:     completedCourses(progress),
		TotalCourses:         len(progress),
		UnlockedAchievements: unlocked,
		TotalAchievements:    len(catalog),
	}, nil
}

func (s *ProfileService) Session(ctx context.Context, userID string) (*entity.Session, error) {
	return s.Sessions.Get(ctx, userID)
}

func (s *ProfileService) SetWallet(ctx context.Context, userID, wallet string) (*entity.Session, error) {
	if err := s.Sessions.SetWallet(ctx, userID, strings.TrimSpace(wallet)); err != nil {
		return nil, err
	}
	return s.Sessions.Get(ctx, userID)
}

func (s *ProfileService) ClearWallet(ctx context.Context, userID string) error {
	return s.Sessions.ClearWallet(ctx, userID)
}
