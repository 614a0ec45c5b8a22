package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/emprendevoz/emprende-api/internal/domain/diagnostic"
	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	repo "github.com/emprendevoz/emprende-api/internal/domain/repository"
)

type DiagnosticService struct {
	Diagnostics repo.DiagnosticRepository
	Logger      *logrus.Logger
}

func NewDiagnosticService(diagnostics repo.DiagnosticRepository, logger *logrus.Logger) *DiagnosticService {
	return &DiagnosticService{Diagnostics: diagnostics, Logger: logger}
}

func (s *DiagnosticService) Questions(ctx context.Context) ([]entity.DiagnosticQuestion, error) {
	return s.Diagnostics.Questions(ctx)
}

// Submit scores the answers, then stores the response and assigns the route
// to the profile together.
func (s *DiagnosticService) Submit(ctx context.Context, userID string, answers []int) (diagnostic.Result, error) {
	res, err := diagnostic.Score(answers)
	if err != nil {
		return diagnostic.Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	resp := &entity.DiagnosticResponse{
		UserID:     userID,
		Answers:    answers,
		Score:      res.Score,
		Percentage: res.Percentage,
		Route:      res.Route,
		Stage:      res.Stage,
	}
	if err := s.Diagnostics.Submit(ctx, resp); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return diagnostic.Result{}, ErrProfileNotFound
		}
		s.Logger.WithError(err).WithField("user_id", userID).Error("save diagnostic failed")
		return diagnostic.Result{}, err
	}
	s.Logger.WithFields(logrus.Fields{"user_id": userID, "route": res.Route, "stage": res.Stage}).Info("diagnostic submitted")
	return res, nil
}

// Latest rebuilds the result of the most recent submission.
func (s *DiagnosticService) Latest(ctx context.Context, userID string) (diagnostic.Result, error) {
	resp, err := s.Diagnostics.LatestResponse(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return diagnostic.Result{}, ErrNotFound
	}
	if err != nil {
		return diagnostic.Result{}, err
	}
	return diagnostic.Score(resp.Answers)
}
