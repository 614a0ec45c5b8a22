package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	"github.com/emprendevoz/emprende-api/internal/domain/finance"
	repo "github.com/emprendevoz/emprende-api/internal/domain/repository"
	"github.com/emprendevoz/emprende-api/pkg/helpers"
)

const (
	kpiCacheTTL          = 10 * time.Minute
	DefaultSummaryMonths = 6
	MaxSummaryMonths     = 24
	defaultPaymentMethod = "efectivo"
)

type FinanceService struct {
	Transactions repo.TransactionRepository
	Cache        Cache
	Events       EventPublisher
	Achievements AchievementChecker
	Logger       *logrus.Logger
	Now          func() time.Time
}

func NewFinanceService(txs repo.TransactionRepository, cache Cache, publisher EventPublisher, achievements AchievementChecker, logger *logrus.Logger) *FinanceService {
	return &FinanceService{
		Transactions: txs,
		Cache:        cache,
		Events:       publisher,
		Achievements: achievements,
		Logger:       logger,
		Now:          time.Now,
	}
}

func (s *FinanceService) List(ctx context.Context, f repo.TransactionFilter) ([]entity.Transaction, error) {
	return s.Transactions.List(ctx, f)
}

type CreateTransactionInput struct {
	UserID        string
	Type          string
	Category      string
	Amount        float64
	Description   string
	Date          string
	PaymentMethod string
}

func (in CreateTransactionInput) toEntity(today time.Time) (*entity.Transaction, error) {
	if in.Type != entity.TxIncome && in.Type != entity.TxExpense {
		return nil, fmt.Errorf("%w: type must be ingreso or egreso", ErrInvalidInput)
	}
	if !entity.ValidCategory(in.Type, in.Category) {
		return nil, fmt.Errorf("%w: category %q is not valid for %s", ErrInvalidInput, in.Category, in.Type)
	}
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than 0", ErrInvalidInput)
	}
	method := strings.TrimSpace(in.PaymentMethod)
	if method == "" {
		method = defaultPaymentMethod
	}
	if !slices.Contains(entity.PaymentMethods, method) {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, method)
	}
	date, ok := helpers.ParseDate(in.Date)
	if !ok {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if date.IsZero() {
		date = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	}
	return &entity.Transaction{
		UserID:        in.UserID,
		Type:          in.Type,
		Category:      in.Category,
		Amount:        in.Amount,
		Description:   strings.TrimSpace(in.Description),
		Date:          date,
		PaymentMethod: method,
	}, nil
}

type CreateTransactionResult struct {
	Transaction          *entity.Transaction   `json:"transaction"`
	UnlockedAchievements []UnlockedAchievement `json:"unlocked_achievements"`
}

func (s *FinanceService) Create(ctx context.Context, in CreateTransactionInput) (*CreateTransactionResult, error) {
	t, err := in.toEntity(s.Now())
	if err != nil {
		return nil, err
	}
	if err := s.Transactions.Create(ctx, t); err != nil {
		s.Logger.WithError(err).WithField("user_id", in.UserID).Error("create transaction failed")
		return nil, err
	}
	s.invalidateKPIs(ctx, t.UserID, t.Date.Year())
	s.Events.Publish(ctx, entity.EventTransactionCreated, t.UserID, t)

	res := &CreateTransactionResult{Transaction: t, UnlockedAchievements: []UnlockedAchievement{}}
	n, err := s.Transactions.Count(ctx, t.UserID)
	if err != nil {
		s.Logger.WithError(err).Warn("count transactions failed")
		return res, nil
	}
	got, err := s.Achievements.Check(ctx, t.UserID, entity.TriggerTransactionCreated, n)
	if err != nil {
		s.Logger.WithError(err).Error("achievement check failed")
		return res, nil
	}
	res.UnlockedAchievements = got
	return res, nil
}

// Delete removes a transaction owned by userID.
func (s *FinanceService) Delete(ctx context.Context, userID, id string) error {
	t, err := s.Transactions.Get(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if t.UserID != userID {
		return ErrForbidden
	}
	if err := s.Transactions.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.invalidateKPIs(ctx, userID, t.Date.Year())
	return nil
}

// Summary buckets the last months of activity, oldest first. months is
// clamped to 1..MaxSummaryMonths and defaults to DefaultSummaryMonths.
func (s *FinanceService) Summary(ctx context.Context, userID string, months int) ([]finance.MonthSummary, error) {
	switch {
	case months <= 0:
		months = DefaultSummaryMonths
	case months > MaxSummaryMonths:
		months = MaxSummaryMonths
	}
	now := s.Now()
	txs, err := s.Transactions.List(ctx, repo.TransactionFilter{UserID: userID, From: finance.SummaryStart(now, months)})
	if err != nil {
		return nil, err
	}
	return finance.Summarize(txs, now, months), nil
}

func kpiKey(userID string, year int) string {
	return fmt.Sprintf("kpis:%s:%d", userID, year)
}

// KPIs compares income of year with the year before; year 0 means the current one.
func (s *FinanceService) KPIs(ctx context.Context, userID string, year int) (*finance.KPIs, error) {
	if year <= 0 {
		year = s.Now().Year()
	}
	key := kpiKey(userID, year)
	var cached finance.KPIs
	if ok, err := s.Cache.GetJSON(ctx, key, &cached); err != nil {
		s.Logger.WithError(err).Warn("kpi cache read failed")
	} else if ok {
		return &cached, nil
	}

	txs, err := s.Transactions.List(ctx, repo.TransactionFilter{
		UserID: userID,
		From:   time.Date(year-1, time.January, 1, 0, 0, 0, 0, time.UTC),
		To:     time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		return nil, err
	}
	k := finance.BuildKPIs(year, txs)
	if err := s.Cache.SetJSON(ctx, key, k, kpiCacheTTL); err != nil {
		s.Logger.WithError(err).Warn("kpi cache write failed")
	}
	return &k, nil
}

// invalidateKPIs drops the KPI views a transaction dated in year takes part in.
func (s *FinanceService) invalidateKPIs(ctx context.Context, userID string, year int) {
	if err := s.Cache.Del(ctx, kpiKey(userID, year), kpiKey(userID, year+1)); err != nil {
		s.Logger.WithError(err).Warn("kpi cache invalidation failed")
	}
}
