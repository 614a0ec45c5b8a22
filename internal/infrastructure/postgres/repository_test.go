package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	"github.com/emprendevoz/emprende-api/internal/domain/repository"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

var profileCols = []string{"id", "email", "password_hash", "provider", "full_name", "avatar_url", "age", "city",
	"business_name", "business_sector", "phone", "bio", "assigned_route", "business_stage",
	"current_month", "level", "total_points", "created_at", "updated_at"}

func TestWrap(t *testing.T) {
	assert.Nil(t, wrap(nil, "op"))
	assert.ErrorIs(t, wrap(pgx.ErrNoRows, "op"), repository.ErrNotFound)
	assert.ErrorIs(t, wrap(&pgconn.PgError{Code: "23505"}, "op"), repository.ErrConflict)

	err := wrap(errors.New("boom"), "create thing")
	assert.EqualError(t, err, "create thing: boom")
}

func TestProfileRepository_CreateAppliesDefaults(t *testing.T) {
	mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery("INSERT INTO profiles").
		WithArgs("ana@example.com", "hash", entity.ProviderPassword, "Ana", "", entity.StagePending, 1, 1, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("u1", now, now))

	p := &entity.Profile{Email: "ana@example.com", Password: "hash", FullName: "Ana"}
	require.NoError(t, NewProfileRepository(mock).Create(context.Background(), p))

	assert.Equal(t, "u1", p.ID)
	assert.Equal(t, 1, p.Level)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_GetByIDNotFound(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("FROM profiles WHERE id").WithArgs("missing").WillReturnError(pgx.ErrNoRows)

	_, err := NewProfileRepository(mock).GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_AddPoints(t *testing.T) {
	mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery("UPDATE profiles").WithArgs(50, "u1").
		WillReturnRows(pgxmock.NewRows(profileCols).AddRow("u1", "ana@example.com", "hash", "password", "Ana", "", 0, "",
			"", "", "", "", "pre", "idea", 1, 2, 150, now, now))

	p, err := NewProfileRepository(mock).AddPoints(context.Background(), "u1", 50)
	require.NoError(t, err)
	assert.Equal(t, 150, p.TotalPoints)
	assert.Equal(t, 2, p.Level)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_UpdateNotFound(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("UPDATE profiles").WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := NewProfileRepository(mock).Update(context.Background(), &entity.Profile{ID: "nope"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCertificateRepository_CreateConflict(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("INSERT INTO certificates").
		WithArgs("u1", "M1", "{}", "abc", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	err := NewCertificateRepository(mock).Create(context.Background(), &entity.Certificate{
		UserID: "u1", ModuleID: "M1", Payload: "{}", Hash: "abc", IssuedAt: time.Now(),
	})
	assert.ErrorIs(t, err, repository.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_ListOpenRange(t *testing.T) {
	mock := newMock(t)
	day := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM transactions").WithArgs("u1", nil, nil).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "type", "category", "amount", "description", "date", "payment_method", "created_at"}).
			AddRow("t1", "u1", "ingreso", "ventas", 120.5, "", day, "efectivo", day))

	txs, err := NewTransactionRepository(mock).List(context.Background(), repository.TransactionFilter{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, 120.5, txs[0].Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_DeleteOtherUsersRow(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("DELETE FROM transactions").WithArgs("t1", "u2").WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := NewTransactionRepository(mock).Delete(context.Background(), "t1", "u2")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPostRepository_ToggleLikeAddsLike(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT likes_count FROM posts").WithArgs("p1").
		WillReturnRows(pgxmock.NewRows([]string{"likes_count"}).AddRow(2))
	mock.ExpectExec("DELETE FROM post_likes").WithArgs("p1", "u1").WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("INSERT INTO post_likes").WithArgs("p1", "u1").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("UPDATE posts SET likes_count").WithArgs(1, "p1").
		WillReturnRows(pgxmock.NewRows([]string{"likes_count"}).AddRow(3))
	mock.ExpectCommit()

	liked, likes, err := NewPostRepository(mock).ToggleLike(context.Background(), "p1", "u1")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 3, likes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ToggleLikeRemovesLike(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT likes_count FROM posts").WithArgs("p1").
		WillReturnRows(pgxmock.NewRows([]string{"likes_count"}).AddRow(3))
	mock.ExpectExec("DELETE FROM post_likes").WithArgs("p1", "u1").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectQuery("UPDATE posts SET likes_count").WithArgs(-1, "p1").
		WillReturnRows(pgxmock.NewRows([]string{"likes_count"}).AddRow(2))
	mock.ExpectCommit()

	liked, likes, err := NewPostRepository(mock).ToggleLike(context.Background(), "p1", "u1")
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 2, likes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ToggleLikeUnknownPost(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT likes_count FROM posts").WithArgs("nope").WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, _, err := NewPostRepository(mock).ToggleLike(context.Background(), "nope", "u1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

var availabilityCols = []string{"id", "mentor_id", "name", "date", "start_time", "end_time",
	"session_type", "max_participants", "is_available", "booked_count"}

func TestCalendarRepository_BookFullSlot(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("FROM mentor_availability").WithArgs("s1").
		WillReturnRows(pgxmock.NewRows(availabilityCols).AddRow("s1", "m1", "Mario", "2026-11-03", "10:00", "11:00", "individual", 1, true, 1))
	mock.ExpectRollback()

	_, err := NewCalendarRepository(mock).Book(context.Background(), "s1", "u1")
	assert.ErrorIs(t, err, repository.ErrSlotFull)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalendarRepository_BookUnavailableSlot(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("FROM mentor_availability").WithArgs("s1").
		WillReturnRows(pgxmock.NewRows(availabilityCols).AddRow("s1", "m1", "Mario", "2026-11-03", "10:00", "11:00", "individual", 3, false, 0))
	mock.ExpectRollback()

	_, err := NewCalendarRepository(mock).Book(context.Background(), "s1", "u1")
	assert.ErrorIs(t, err, repository.ErrSlotUnavailable)
}

func TestCalendarRepository_Book(t *testing.T) {
	mock := newMock(t)
	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("FROM mentor_availability").WithArgs("s1").
		WillReturnRows(pgxmock.NewRows(availabilityCols).AddRow("s1", "m1", "Mario", "2026-11-03", "10:00", "11:00", "grupal", 3, true, 1))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("s1", "u1").WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("INSERT INTO mentor_bookings").WithArgs("s1", "u1", "confirmed").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("b1", now))
	mock.ExpectExec("UPDATE mentor_availability").WithArgs("s1").WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	b, err := NewCalendarRepository(mock).Book(context.Background(), "s1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "b1", b.ID)
	assert.Equal(t, 2, b.Availability.BookedCount)
	assert.Equal(t, "Mario", b.Availability.MentorName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalendarRepository_BookTwice(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("FROM mentor_availability").WithArgs("s1").
		WillReturnRows(pgxmock.NewRows(availabilityCols).AddRow("s1", "m1", "Mario", "2026-11-03", "10:00", "11:00", "grupal", 3, true, 1))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("s1", "u1").WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := NewCalendarRepository(mock).Book(context.Background(), "s1", "u1")
	assert.ErrorIs(t, err, repository.ErrAlreadyBooked)
}

var eventCols = []string{"id", "title", "description", "event_type", "start_date", "end_date", "location",
	"is_virtual", "max_participants", "registered_count", "registration_url"}

func eventRow(limit, registered int) *pgxmock.Rows {
	start := time.Date(2026, 11, 20, 18, 0, 0, 0, time.UTC)
	return pgxmock.NewRows(eventCols).AddRow("e1", "Feria de emprendedoras", "", "feria", start, start.Add(3*time.Hour),
		"Bogota", false, limit, registered, "")
}

func TestCalendarRepository_RegisterEvent(t *testing.T) {
	mock := newMock(t)
	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("FROM events WHERE id").WithArgs("e1").WillReturnRows(eventRow(10, 4))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("e1", "u1").WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("INSERT INTO event_registrations").WithArgs("e1", "u1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("r1", now))
	mock.ExpectExec("UPDATE events SET registered_count").WithArgs("e1").WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	reg, err := NewCalendarRepository(mock).RegisterEvent(context.Background(), "e1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "r1", reg.ID)
	require.NotNil(t, reg.Event)
	assert.Equal(t, 5, reg.Event.RegisteredCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalendarRepository_RegisterEventFull(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("FROM events WHERE id").WithArgs("e1").WillReturnRows(eventRow(10, 10))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("e1", "u1").WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	_, err := NewCalendarRepository(mock).RegisterEvent(context.Background(), "e1", "u1")
	assert.ErrorIs(t, err, repository.ErrEventFull)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalendarRepository_RegisterEventTwice(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	// already registered wins over full
	mock.ExpectQuery("FROM events WHERE id").WithArgs("e1").WillReturnRows(eventRow(10, 10))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("e1", "u1").WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := NewCalendarRepository(mock).RegisterEvent(context.Background(), "e1", "u1")
	assert.ErrorIs(t, err, repository.ErrAlreadyRegistered)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalendarRepository_RegisterEventUnlimited(t *testing.T) {
	mock := newMock(t)
	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("FROM events WHERE id").WithArgs("e1").WillReturnRows(eventRow(0, 500))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("e1", "u1").WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("INSERT INTO event_registrations").WithArgs("e1", "u1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("r2", now))
	mock.ExpectExec("UPDATE events SET registered_count").WithArgs("e1").WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	reg, err := NewCalendarRepository(mock).RegisterEvent(context.Background(), "e1", "u1")
	require.NoError(t, err)
	assert.Equal(t, 501, reg.Event.RegisteredCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalendarRepository_RegisterEventUnknown(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("FROM events WHERE id").WithArgs("nope").WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := NewCalendarRepository(mock).RegisterEvent(context.Background(), "nope", "u1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDiagnosticRepository_Submit(t *testing.T) {
	mock := newMock(t)
	now := time.Now()
	d := &entity.DiagnosticResponse{UserID: "u1", Answers: []int{3, 3, 3, 2, 2}, Score: 13, Percentage: 86.67, Route: "inc", Stage: "incubacion"}
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE profiles SET assigned_route").WithArgs("inc", "incubacion", "u1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("INSERT INTO diagnostic_responses").WithArgs("u1", d.Answers, 13, 86.67, "inc", "incubacion").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("d1", now))
	mock.ExpectCommit()

	require.NoError(t, NewDiagnosticRepository(mock).Submit(context.Background(), d))
	assert.Equal(t, "d1", d.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDiagnosticRepository_SubmitUnknownProfile(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE profiles SET assigned_route").WithArgs("pre", "idea", "ghost").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err := NewDiagnosticRepository(mock).Submit(context.Background(), &entity.DiagnosticResponse{UserID: "ghost", Route: "pre", Stage: "idea"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	// no INSERT was expected, so reaching it would fail here
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDiagnosticRepository_SubmitInsertFailureRollsBack(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE profiles SET assigned_route").WithArgs("pre", "idea", "u1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("INSERT INTO diagnostic_responses").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := NewDiagnosticRepository(mock).Submit(context.Background(), &entity.DiagnosticResponse{UserID: "u1", Route: "pre", Stage: "idea"})
	assert.EqualError(t, err, "save diagnostic: disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAchievementRepository_UnlockAlreadyUnlocked(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("INSERT INTO user_achievements").WithArgs("u1", "a1").
		WillReturnRows(pgxmock.NewRows([]string{"unlocked"}))

	ok, err := NewAchievementRepository(mock).Unlock(context.Background(), "u1", "a1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNotificationRepository_MarkRead(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("UPDATE notifications SET read").WithArgs("n1", "u1").WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, NewNotificationRepository(mock).MarkRead(context.Background(), "n1", "u1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
