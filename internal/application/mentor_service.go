package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	repo "github.com/emprendevoz/emprende-api/internal/domain/repository"
)

type MentorService struct {
	Mentors repo.MentorRepository
	Logger  *logrus.Logger
}

func NewMentorService(mentors repo.MentorRepository, logger *logrus.Logger) *MentorService {
	return &MentorService{Mentors: mentors, Logger: logger}
}

func (s *MentorService) Available(ctx context.Context) ([]entity.Mentor, error) {
	return s.Mentors.ListAvailable(ctx)
}

func (s *MentorService) Assignment(ctx context.Context, userID string) (*entity.MentorAssignment, error) {
	a, err := s.Mentors.ActiveAssignment(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNoMentor
	}
	return a, err
}

func (s *MentorService) Messages(ctx context.Context, userID string) ([]entity.MentorMessage, error) {
	a, err := s.Assignment(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Mentors.Messages(ctx, a.ID)
}

// Send posts a message from the user to the assigned mentor.
func (s *MentorService) Send(ctx context.Context, userID, content string) (*entity.MentorMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	a, err := s.Assignment(ctx, userID)
	if err != nil {
		return nil, err
	}
	m := &entity.MentorMessage{AssignmentID: a.ID, Sender: entity.SenderUser, Content: content}
	if err := s.Mentors.AddMessage(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
