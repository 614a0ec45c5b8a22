package seed

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emprendevoz/emprende-api/internal/domain/certificate"
	"github.com/emprendevoz/emprende-api/internal/domain/diagnostic"
	"github.com/emprendevoz/emprende-api/internal/domain/entity"
)

func TestQuestions_MatchScorer(t *testing.T) {
	require.Len(t, Questions, diagnostic.QuestionCount)
	for _, q := range Questions {
		assert.Len(t, q.Options, diagnostic.MaxOption+1, q.Question)
	}
}

func TestCourses_CoverEveryModulePerRoute(t *testing.T) {
	seen := map[string]map[int]bool{}
	modules := map[string]map[string]int{}
	for _, c := range Courses() {
		if seen[c.RouteType] == nil {
			seen[c.RouteType] = map[int]bool{}
			modules[c.RouteType] = map[string]int{}
		}
		assert.False(t, seen[c.RouteType][c.OrderNumber], "duplicate order %d on %s", c.OrderNumber, c.RouteType)
		seen[c.RouteType][c.OrderNumber] = true
		modules[c.RouteType][c.ModuleCode]++
	}
	for _, route := range []string{diagnostic.RoutePre, diagnostic.RouteInc} {
		for _, m := range certificate.Modules {
			assert.Equal(t, 2, modules[route][m.ID], "%s/%s", route, m.ID)
		}
	}
}

func TestAchievements_CoverEveryTrigger(t *testing.T) {
	triggers := map[string]bool{}
	codes := map[string]bool{}
	for _, a := range Achievements {
		triggers[a.TriggerType] = true
		assert.False(t, codes[a.Code], "duplicate code %s", a.Code)
		codes[a.Code] = true
	}
	for _, tr := range []string{entity.TriggerCourseCompleted, entity.TriggerFirstCourseCompleted,
		entity.TriggerTransactionCreated, entity.TriggerPostCreated, entity.TriggerCommentCreated} {
		assert.True(t, triggers[tr], tr)
	}
}

func TestNextWeekdays_SkipsWeekend(t *testing.T) {
	friday := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	days := nextWeekdays(friday, 2)
	require.Len(t, days, 2)
	assert.Equal(t, time.Monday, days[0].Weekday())
	assert.Equal(t, 19, days[0].Day())
	assert.Equal(t, time.Tuesday, days[1].Weekday())
}

func TestSeeder_QuestionsCountsInserted(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	for i, q := range Questions {
		affected := int64(1)
		if i == 0 {
			affected = 0 // already present
		}
		mock.ExpectExec("INSERT INTO diagnostic_questions").
			WithArgs(i+1, q.Question, q.Options).
			WillReturnResult(pgxmock.NewResult("INSERT", affected))
	}

	logger, _ := test.NewNullLogger()
	n, err := New(mock, logger).Questions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(Questions)-1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeeder_RunStopsOnError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO diagnostic_questions").WillReturnError(assert.AnError)

	logger, _ := test.NewNullLogger()
	err = New(mock, logger).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed diagnostic_questions")
	assert.NoError(t, mock.ExpectationsWereMet())
}
