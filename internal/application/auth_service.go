package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	repo "github.com/emprendevoz/emprende-api/internal/domain/repository"
	"github.com/emprendevoz/emprende-api/pkg/helpers"
)

type AuthService struct {
	Profiles        repo.ProfileRepository
	Sessions        SessionStore
	JWT             *helpers.JWTManager
	Notifier        *Notifier
	Logger          *logrus.Logger
	FederatedSecret []byte
}

func NewAuthService(profiles repo.ProfileRepository, sessions SessionStore, jwt *helpers.JWTManager, notifier *Notifier, logger *logrus.Logger, federatedSecret string) *AuthService {
	return &AuthService{
		Profiles:        profiles,
		Sessions:        sessions,
		JWT:             jwt,
		Notifier:        notifier,
		Logger:          logger,
		FederatedSecret: []byte(federatedSecret),
	}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.Profile, TokenPair, error) {
	email := normalizeEmail(in.Email)
	if _, err := s.Profiles.GetByEmail(ctx, email); err == nil {
		return nil, TokenPair{}, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, TokenPair{}, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	p := &entity.Profile{
		Email:    email,
		Password: hash,
		Provider: entity.ProviderPassword,
		FullName: strings.TrimSpace(in.FullName),
	}
	if err := s.Profiles.Create(ctx, p); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, TokenPair{}, ErrEmailTaken
		}
		s.Logger.WithError(err).Error("create profile failed")
		return nil, TokenPair{}, err
	}

	pair, err := s.IssueTokens(ctx, p)
	if err != nil {
		return nil, TokenPair{}, err
	}
	s.Notifier.Welcome(ctx, p)
	return p, pair, nil
}

// Authenticate validates email/password and returns the profile without issuing tokens.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.Profile, error) {
	p, err := s.Profiles.GetByEmail(ctx, normalizeEmail(email))
	if err != nil || p == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(p.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return p, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.Profile, TokenPair, error) {
	p, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, p)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return p, pair, nil
}

// IssueTokens generates access/refresh tokens and records a fresh session.
func (s *AuthService) IssueTokens(ctx context.Context, p *entity.Profile) (TokenPair, error) {
	sid := uuid.NewString()
	pair, err := s.signPair(p.ID, sid)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", p.ID).Error("generate tokens failed")
		return TokenPair{}, err
	}
	err = s.Sessions.Create(ctx, entity.Session{
		UserID:    p.ID,
		Email:     p.Email,
		Name:      p.FullName,
		AvatarURL: p.AvatarURL,
		SID:       sid,
		Provider:  p.Provider,
	})
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", p.ID).Error("store session failed")
		return TokenPair{}, err
	}
	return pair, nil
}

func (s *AuthService) signPair(userID, sid string) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(userID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(userID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh rotates the session id; the refresh token must carry the current one.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	sess, err := s.Sessions.Get(ctx, claims.UserID)
	if err != nil || sess.SID != claims.SessionID {
		return TokenPair{}, "", ErrInvalidCredentials
	}

	sid := uuid.NewString()
	pair, err := s.signPair(claims.UserID, sid)
	if err != nil {
		return TokenPair{}, "", err
	}
	if err := s.Sessions.RotateSID(ctx, claims.UserID, sid); err != nil {
		return TokenPair{}, "", err
	}
	return pair, claims.UserID, nil
}

func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.Sessions.Delete(ctx, userID)
}

type FederatedResult struct {
	Profile   *entity.Profile `json:"profile"`
	IsNewUser bool            `json:"is_new_user"`
	Conflict  bool            `json:"conflict"`
}

// FederatedDisplayName picks the profile name for an external identity.
func FederatedDisplayName(name, email string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	if local, _, ok := strings.Cut(email, "@"); ok && local != "" {
		return local
	}
	return "Usuario"
}

// Federated reconciles an identity from the secondary sign-in provider into
// the profile store by email and opens a session for it.
func (s *AuthService) Federated(ctx context.Context, idToken string) (*FederatedResult, TokenPair, error) {
	claims, err := helpers.ParseFederatedToken(idToken, s.FederatedSecret)
	if err != nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	email := normalizeEmail(claims.Email)
	if email == "" {
		return nil, TokenPair{}, fmt.Errorf("%w: identity has no email", ErrInvalidInput)
	}
	provider := claims.Provider
	if provider == "" {
		provider = "federated"
	}

	res := &FederatedResult{}
	p, err := s.Profiles.GetByEmail(ctx, email)
	switch {
	case err == nil:
		res.Conflict = p.Provider == entity.ProviderPassword
		changed := false
		if n := strings.TrimSpace(claims.Name); n != "" && n != p.FullName {
			p.FullName, changed = n, true
		}
		if claims.Picture != "" && claims.Picture != p.AvatarURL {
			p.AvatarURL, changed = claims.Picture, true
		}
		if changed {
			if err := s.Profiles.Update(ctx, p); err != nil {
				return nil, TokenPair{}, err
			}
		}
	case errors.Is(err, repo.ErrNotFound):
		secret, err := helpers.RandomSecret(32)
		if err != nil {
			return nil, TokenPair{}, err
		}
		hash, err := helpers.HashPassword(secret)
		if err != nil {
			return nil, TokenPair{}, err
		}
		p = &entity.Profile{
			Email:         email,
			Password:      hash,
			Provider:      provider,
			FullName:      FederatedDisplayName(claims.Name, email),
			AvatarURL:     claims.Picture,
			BusinessStage: entity.StagePending,
			CurrentMonth:  1,
		}
		if err := s.Profiles.Create(ctx, p); err != nil {
			return nil, TokenPair{}, err
		}
		res.IsNewUser = true
		s.Notifier.Welcome(ctx, p)
	default:
		return nil, TokenPair{}, err
	}
	res.Profile = p

	if res.Conflict {
		s.Logger.WithField("user_id", p.ID).Info("federated sign-in matched a password account")
	}
	pair, err := s.IssueTokens(ctx, p)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return res, pair, nil
}
