package application

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	"github.com/emprendevoz/emprende-api/pkg/helpers"
)

const federatedSecret = "federated-test-secret"

func newAuthFixture(ps ...*entity.Profile) (*AuthService, *fakeProfiles, *fakeSessions) {
	profiles := newFakeProfiles(ps...)
	sessions := newFakeSessions()
	jwtm := helpers.NewJWTManager("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
	return NewAuthService(profiles, sessions, jwtm, nil, quietLogger(), federatedSecret), profiles, sessions
}

func federatedToken(t *testing.T, email, name, picture string) string {
	t.Helper()
	tok, err := helpers.SignFederatedToken(helpers.FederatedClaims{
		Email:    email,
		Name:     name,
		Picture:  picture,
		Provider: "google",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "ext-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}, []byte(federatedSecret))
	require.NoError(t, err)
	return tok
}

func TestFederatedDisplayName(t *testing.T) {
	assert.Equal(t, "Ana Pérez", FederatedDisplayName("  Ana Pérez ", "ana@example.com"))
	assert.Equal(t, "ana", FederatedDisplayName("", "ana@example.com"))
	assert.Equal(t, "Usuario", FederatedDisplayName("", ""))
	assert.Equal(t, "Usuario", FederatedDisplayName("", "@example.com"))
}

func TestFederated_NewUser(t *testing.T) {
	svc, profiles, sessions := newAuthFixture()
	ctx := context.Background()

	res, pair, err := svc.Federated(ctx, federatedToken(t, "Nuevo@Example.com", "", "https://img/x.png"))
	require.NoError(t, err)
	assert.True(t, res.IsNewUser)
	assert.False(t, res.Conflict)
	assert.Equal(t, "nuevo@example.com", res.Profile.Email)
	assert.Equal(t, "nuevo", res.Profile.FullName)
	assert.Equal(t, entity.StagePending, res.Profile.BusinessStage)
	assert.Equal(t, 1, res.Profile.CurrentMonth)
	assert.NotEmpty(t, pair.AccessToken)

	stored, err := profiles.GetByEmail(ctx, "nuevo@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.Password)
	assert.Contains(t, sessions.m, stored.ID)
}

func TestFederated_ExistingPasswordAccount(t *testing.T) {
	svc, profiles, _ := newAuthFixture(&entity.Profile{ID: "u1", Email: "ana@example.com", FullName: "Ana", Provider: entity.ProviderPassword})
	ctx := context.Background()

	res, _, err := svc.Federated(ctx, federatedToken(t, "ana@example.com", "", "https://img/ana.png"))
	require.NoError(t, err)
	assert.False(t, res.IsNewUser)
	assert.True(t, res.Conflict)

	p, _ := profiles.GetByID(ctx, "u1")
	assert.Equal(t, "Ana", p.FullName, "empty claim keeps the stored name")
	assert.Equal(t, "https://img/ana.png", p.AvatarURL)
}

func TestFederated_Rejects(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, _, err := svc.Federated(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Federated(ctx, federatedToken(t, "", "Sin correo", ""))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegisterLoginRefresh(t *testing.T) {
	svc, _, sessions := newAuthFixture()
	ctx := context.Background()

	p, _, err := svc.Register(ctx, RegisterInput{Email: " Ana@Example.com ", Password: "secreto123", FullName: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", p.Email)

	_, _, err = svc.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "otro12345"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, _, err = svc.Login(ctx, "ana@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, pair, err := svc.Login(ctx, "ana@example.com", "secreto123")
	require.NoError(t, err)

	rotated, uid, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, p.ID, uid)
	assert.NotEmpty(t, rotated.RefreshToken)

	// the old refresh token carries a stale session id
	_, _, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.Logout(ctx, p.ID))
	assert.NotContains(t, sessions.m, p.ID)
}
