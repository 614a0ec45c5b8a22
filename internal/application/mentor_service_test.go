package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
)

func newMentorService() (*MentorService, *fakeMentors) {
	mentors := &fakeMentors{
		mentors: []entity.Mentor{{ID: "m1", Name: "Mario", Available: true}, {ID: "m2", Name: "Rosa"}},
		assignments: map[string]*entity.MentorAssignment{
			"u1": {ID: "as1", UserID: "u1", MentorID: "m1", Active: true},
			"u3": {ID: "as3", UserID: "u3", MentorID: "m2", Active: false},
		},
	}
	return NewMentorService(mentors, quietLogger()), mentors
}

func TestMentorService_NoAssignment(t *testing.T) {
	svc, mentors := newMentorService()
	ctx := context.Background()

	for _, user := range []string{"u2", "u3"} {
		_, err := svc.Assignment(ctx, user)
		assert.ErrorIs(t, err, ErrNoMentor, user)
		_, err = svc.Messages(ctx, user)
		assert.ErrorIs(t, err, ErrNoMentor, user)
		_, err = svc.Send(ctx, user, "hola")
		assert.ErrorIs(t, err, ErrNoMentor, user)
	}
	assert.Empty(t, mentors.messages)
}

func TestMentorService_SendAndRead(t *testing.T) {
	svc, _ := newMentorService()
	ctx := context.Background()

	_, err := svc.Send(ctx, "u1", "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	m, err := svc.Send(ctx, "u1", "  ¿Cómo fijo precios?  ")
	require.NoError(t, err)
	assert.Equal(t, "¿Cómo fijo precios?", m.Content)
	assert.Equal(t, entity.SenderUser, m.Sender)
	assert.Equal(t, "as1", m.AssignmentID)

	msgs, err := svc.Messages(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, m.ID, msgs[0].ID)

	available, err := svc.Available(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "m1", available[0].ID)
}
