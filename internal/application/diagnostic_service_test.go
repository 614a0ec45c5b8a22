package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emprendevoz/emprende-api/internal/domain/diagnostic"
	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	repo "github.com/emprendevoz/emprende-api/internal/domain/repository"
)

// fakeDiagnostics writes route and response together, like the SQL repository.
type fakeDiagnostics struct {
	profiles  *fakeProfiles
	responses []entity.DiagnosticResponse
}

func (f *fakeDiagnostics) Questions(context.Context) ([]entity.DiagnosticQuestion, error) {
	return []entity.DiagnosticQuestion{{ID: 1, OrderIndex: 1, Question: "¿Tienes clientes?", Options: []string{"No", "Pocos", "Algunos", "Muchos"}}}, nil
}

func (f *fakeDiagnostics) Submit(_ context.Context, r *entity.DiagnosticResponse) error {
	p, ok := f.profiles.byID[r.UserID]
	if !ok {
		return repo.ErrNotFound
	}
	p.AssignedRoute, p.BusinessStage = r.Route, r.Stage
	f.responses = append(f.responses, *r)
	return nil
}

func (f *fakeDiagnostics) LatestResponse(_ context.Context, userID string) (*entity.DiagnosticResponse, error) {
	for i := len(f.responses) - 1; i >= 0; i-- {
		if f.responses[i].UserID == userID {
			r := f.responses[i]
			return &r, nil
		}
	}
	return nil, repo.ErrNotFound
}

func TestDiagnosticSubmit(t *testing.T) {
	profiles := newFakeProfiles(&entity.Profile{ID: "u1", BusinessStage: entity.StagePending})
	store := &fakeDiagnostics{profiles: profiles}
	svc := NewDiagnosticService(store, quietLogger())
	ctx := context.Background()

	_, err := svc.Latest(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Submit(ctx, "u1", []int{1, 2, 4, 0, 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, store.responses)

	res, err := svc.Submit(ctx, "u1", []int{3, 3, 3, 2, 2})
	require.NoError(t, err)
	assert.Equal(t, diagnostic.RouteInc, res.Route)
	assert.Equal(t, 13, res.Score)

	p, _ := profiles.GetByID(ctx, "u1")
	assert.Equal(t, diagnostic.RouteInc, p.AssignedRoute)
	assert.Equal(t, diagnostic.StageIncubacion, p.BusinessStage)

	latest, err := svc.Latest(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, res, latest)
}

func TestDiagnosticSubmit_UnknownProfileStoresNothing(t *testing.T) {
	store := &fakeDiagnostics{profiles: newFakeProfiles()}
	svc := NewDiagnosticService(store, quietLogger())
	ctx := context.Background()

	_, err := svc.Submit(ctx, "ghost", []int{3, 3, 3, 2, 2})
	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.Empty(t, store.responses)

	_, err = svc.Latest(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}
