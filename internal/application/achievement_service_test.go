package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
)

func achievementFixture() (*AchievementService, *fakeProfiles, *fakeNotifications, *fakePublisher) {
	profiles := newFakeProfiles(&entity.Profile{ID: "u1", Email: "ana@example.com", Level: 1})
	notes := &fakeNotifications{}
	pub := &fakePublisher{}
	achievements := newFakeAchievements(
		entity.Achievement{ID: "a1", Code: "primera_venta", Name: "Primera venta", Icon: "💰", Points: 50, Category: entity.CategorySales, TriggerType: entity.TriggerTransactionCreated, Threshold: 1},
		entity.Achievement{ID: "a2", Code: "diez_ventas", Name: "Diez ventas", Icon: "📈", Points: 80, Category: entity.CategorySales, TriggerType: entity.TriggerTransactionCreated, Threshold: 10},
		entity.Achievement{ID: "a3", Code: "primer_post", Name: "Primer post", Icon: "✍️", Points: 20, Category: entity.CategoryCommunity, TriggerType: entity.TriggerPostCreated, Threshold: 1},
	)
	svc := NewAchievementService(achievements, profiles, notes, pub, quietLogger())
	return svc, profiles, notes, pub
}

func TestAchievementCheck_UnlocksReachedThresholdOnce(t *testing.T) {
	svc, profiles, notes, pub := achievementFixture()
	ctx := context.Background()

	got, err := svc.Check(ctx, "u1", entity.TriggerTransactionCreated, 1)
	require.NoError(t, err)
	assert.Equal(t, []UnlockedAchievement{{Icon: "💰", Name: "Primera venta", Points: 50}}, got)

	p, _ := profiles.GetByID(ctx, "u1")
	assert.Equal(t, 50, p.TotalPoints)
	assert.Equal(t, 1, p.Level)
	assert.Len(t, notes.items, 1)
	assert.Equal(t, []string{entity.EventAchievementUnlocked}, pub.types())

	again, err := svc.Check(ctx, "u1", entity.TriggerTransactionCreated, 2)
	require.NoError(t, err)
	assert.Empty(t, again)
	p, _ = profiles.GetByID(ctx, "u1")
	assert.Equal(t, 50, p.TotalPoints)
}

func TestAchievementCheck_LevelFollowsPoints(t *testing.T) {
	svc, profiles, _, _ := achievementFixture()
	ctx := context.Background()

	got, err := svc.Check(ctx, "u1", entity.TriggerTransactionCreated, 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	p, _ := profiles.GetByID(ctx, "u1")
	assert.Equal(t, 130, p.TotalPoints)
	assert.Equal(t, 2, p.Level)
}

func TestAchievementCheck_UnknownTrigger(t *testing.T) {
	svc, _, _, pub := achievementFixture()
	got, err := svc.Check(context.Background(), "u1", "nope", 100)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, pub.events)
}

func TestAchievementForUserAndStats(t *testing.T) {
	svc, _, _, _ := achievementFixture()
	ctx := context.Background()

	_, err := svc.Check(ctx, "u1", entity.TriggerTransactionCreated, 4)
	require.NoError(t, err)

	views, err := svc.ForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.True(t, views[0].Unlocked)
	assert.NotNil(t, views[0].UnlockedAt)
	assert.False(t, views[1].Unlocked)
	assert.InDelta(t, 40.0, views[1].Progress, 0.001)
	assert.Zero(t, views[2].Progress)

	st, err := svc.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, AchievementStats{Total: 3, Unlocked: 1, TotalPoints: 50, CompletionPercentage: 33.33}, *st)
}

func TestAchievementCheckReported_RecountsStoredActivity(t *testing.T) {
	svc, profiles, _, _ := achievementFixture()
	ctx := context.Background()
	svc.Activity = &ActivityCounter{
		Transactions: &fakeTransactions{items: []entity.Transaction{{ID: "t1", UserID: "u1"}, {ID: "t2", UserID: "u2"}}},
		Posts:        &fakePosts{},
	}

	// a reported value of 1000 must not unlock the ten-sales achievement
	got, err := svc.CheckReported(ctx, "u1", entity.TriggerTransactionCreated, 1000)
	require.NoError(t, err)
	assert.Equal(t, []UnlockedAchievement{{Icon: "💰", Name: "Primera venta", Points: 50}}, got)

	got, err = svc.CheckReported(ctx, "u1", entity.TriggerPostCreated, 5)
	require.NoError(t, err)
	assert.Empty(t, got)

	p, _ := profiles.GetByID(ctx, "u1")
	assert.Equal(t, 50, p.TotalPoints)

	views, err := svc.ForUser(ctx, "u1")
	require.NoError(t, err)
	assert.InDelta(t, 10.0, views[1].Progress, 0.001)
}

func TestAchievementCheckReported_UncountedTriggerUsesReportedValue(t *testing.T) {
	svc, _, _, _ := achievementFixture()
	ctx := context.Background()

	got, err := svc.CheckReported(ctx, "u1", entity.TriggerPostCreated, 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	svc.Activity = &ActivityCounter{Posts: &fakePosts{}}
	_, ok, err := svc.Activity.Count(ctx, "u1", "evento_asistido")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = svc.Activity.Count(ctx, "u1", entity.TriggerTransactionCreated)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestActivityCounter_CompletedCourses(t *testing.T) {
	lrn := &fakeLearning{
		courses: []entity.Course{
			{ID: "c1", RouteType: "pre", OrderNumber: 1},
			{ID: "c2", RouteType: "pre", OrderNumber: 2},
		},
		sections: []entity.CourseSection{{ID: "s1", CourseID: "c1"}, {ID: "s2", CourseID: "c2"}},
		done:     map[string]bool{"u1/s1": true},
	}
	c := &ActivityCounter{Learning: lrn, Posts: &fakePosts{comments: []entity.Comment{{UserID: "u1"}, {UserID: "u1"}}}}
	ctx := context.Background()

	for trigger, want := range map[string]int{
		entity.TriggerCourseCompleted:      1,
		entity.TriggerFirstCourseCompleted: 1,
		entity.TriggerCommentCreated:       2,
	} {
		n, ok, err := c.Count(ctx, "u1", trigger)
		require.NoError(t, err)
		assert.True(t, ok, trigger)
		assert.Equal(t, want, n, trigger)
	}
}
