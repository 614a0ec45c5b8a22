package application

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	repo "github.com/emprendevoz/emprende-api/internal/domain/repository"
)

type UnlockedAchievement struct {
	Icon   string `json:"icon"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

type AchievementService struct {
	Achievements  repo.AchievementRepository
	Profiles      repo.ProfileRepository
	Notifications repo.NotificationRepository
	Events        EventPublisher
	Activity      *ActivityCounter
	Logger        *logrus.Logger
}

func NewAchievementService(achievements repo.AchievementRepository, profiles repo.ProfileRepository, notifications repo.NotificationRepository, publisher EventPublisher, logger *logrus.Logger) *AchievementService {
	return &AchievementService{
		Achievements:  achievements,
		Profiles:      profiles,
		Notifications: notifications,
		Events:        publisher,
		Logger:        logger,
	}
}

// Check records progress for every achievement bound to trigger and unlocks
// those whose threshold value reaches. Already unlocked ones are skipped.
func (s *AchievementService) Check(ctx context.Context, userID, trigger string, value int) ([]UnlockedAchievement, error) {
	candidates, err := s.Achievements.ListByTrigger(ctx, trigger)
	if err != nil {
		return nil, err
	}
	out := []UnlockedAchievement{}
	if len(candidates) == 0 {
		return out, nil
	}
	mine, err := s.userIndex(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, a := range candidates {
		if ua, ok := mine[a.ID]; ok && ua.Unlocked {
			continue
		}
		if err := s.Achievements.RecordProgress(ctx, userID, a.ID, a.ProgressFor(value)); err != nil {
			return nil, err
		}
		if !a.Reached(trigger, value) {
			continue
		}
		won, err := s.Achievements.Unlock(ctx, userID, a.ID)
		if err != nil {
			return nil, err
		}
		if !won {
			continue
		}
		s.reward(ctx, userID, a)
		out = append(out, UnlockedAchievement{Icon: a.Icon, Name: a.Name, Points: a.Points})
	}
	return out, nil
}

// CheckReported evaluates a trigger reported by a client. Triggers the server
// can count are recounted from stored activity and the reported value is ignored.
func (s *AchievementService) CheckReported(ctx context.Context, userID, trigger string, reported int) ([]UnlockedAchievement, error) {
	value, ok, err := s.Activity.Count(ctx, userID, trigger)
	if err != nil {
		return nil, err
	}
	if !ok {
		value = reported
	}
	return s.Check(ctx, userID, trigger, value)
}

// ActivityCounter derives trigger values from what the user has stored.
type ActivityCounter struct {
	Transactions repo.TransactionRepository
	Posts        repo.PostRepository
	Learning     repo.LearningRepository
}

// Count reports false for triggers it has no source for.
func (c *ActivityCounter) Count(ctx context.Context, userID, trigger string) (int, bool, error) {
	if c == nil {
		return 0, false, nil
	}
	var (
		n   int
		err error
	)
	switch {
	case trigger == entity.TriggerTransactionCreated && c.Transactions != nil:
		n, err = c.Transactions.Count(ctx, userID)
	case trigger == entity.TriggerPostCreated && c.Posts != nil:
		n, err = c.Posts.CountByUser(ctx, userID)
	case trigger == entity.TriggerCommentCreated && c.Posts != nil:
		n, err = c.Posts.CountCommentsByUser(ctx, userID)
	case (trigger == entity.TriggerCourseCompleted || trigger == entity.TriggerFirstCourseCompleted) && c.Learning != nil:
		var counts []repo.CourseCounts
		if counts, err = c.Learning.CourseCounts(ctx, userID, ""); err == nil {
			n = completedCourses(courseProgress(counts))
		}
	default:
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

// reward credits points and tells the user; failures here do not undo the unlock.
func (s *AchievementService) reward(ctx context.Context, userID string, a entity.Achievement) {
	log := s.Logger.WithFields(logrus.Fields{"user_id": userID, "achievement": a.Code})
	if _, err := s.Profiles.AddPoints(ctx, userID, a.Points); err != nil {
		log.WithError(err).Error("add points failed")
	}
	n := &entity.Notification{
		UserID:  userID,
		Title:   "¡Logro desbloqueado!",
		Message: fmt.Sprintf("%s %s (+%d puntos)", a.Icon, a.Name, a.Points),
		Type:    "achievement",
	}
	if err := s.Notifications.Create(ctx, n); err != nil {
		log.WithError(err).Warn("create notification failed")
	}
	s.Events.Publish(ctx, entity.EventAchievementUnlocked, userID, map[string]any{
		"achievement_id": a.ID,
		"code":           a.Code,
		"points":         a.Points,
	})
	log.Info("achievement unlocked")
}

func (s *AchievementService) userIndex(ctx context.Context, userID string) (map[string]entity.UserAchievement, error) {
	mine, err := s.Achievements.UserAchievements(ctx, userID)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]entity.UserAchievement, len(mine))
	for _, ua := range mine {
		idx[ua.AchievementID] = ua
	}
	return idx, nil
}

type AchievementView struct {
	entity.Achievement
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at"`
	Progress   float64    `json:"progress"`
}

// ForUser returns the whole catalog annotated with the user's state.
func (s *AchievementService) ForUser(ctx context.Context, userID string) ([]AchievementView, error) {
	catalog, err := s.Achievements.List(ctx)
	if err != nil {
		return nil, err
	}
	mine, err := s.userIndex(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]AchievementView, 0, len(catalog))
	for _, a := range catalog {
		v := AchievementView{Achievement: a}
		if ua, ok := mine[a.ID]; ok {
			v.Unlocked = ua.Unlocked
			v.UnlockedAt = ua.UnlockedAt
			v.Progress = ua.Progress
			if ua.Unlocked {
				v.Progress = 100
			}
		}
		out = append(out, v)
	}
	return out, nil
}

type AchievementStats struct {
	Total                int     `json:"total"`
	Unlocked             int     `json:"unlocked"`
	TotalPoints          int     `json:"total_points"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

func (s *AchievementService) Stats(ctx context.Context, userID string) (*AchievementStats, error) {
	views, err := s.ForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	st := &AchievementStats{Total: len(views)}
	for _, v := range views {
		if v.Unlocked {
			st.Unlocked++
			st.TotalPoints += v.Points
		}
	}
	if st.Total > 0 {
		st.CompletionPercentage = math.Round(float64(st.Unlocked)*10000/float64(st.Total)) / 100
	}
	return st, nil
}
