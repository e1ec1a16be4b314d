package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	ledgererrors "go-leavedesk/internal/ledger/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const BalanceCacheKeyPrefix = "balances:employee:"

const balanceCacheTTL = 5 * time.Minute

func BalanceCacheKey(employeeID string) string {
	return BalanceCacheKeyPrefix + employeeID
}

// BalanceSummary is the read-side projection of one employee's ledger.
type BalanceSummary struct {
	Sick     int `json:"sick"`
	Casual   int `json:"casual"`
	Vacation int `json:"vacation"`
}

// Service is the read surface of the balance ledger. Debits never go through
// here: they run inside the approving transaction via Repository.WithTx so
// the subtraction commits or rolls back together with the status change.
//
//go:generate mockgen -source=ledger_service.go -destination=mock/ledger_service_mock.go -package=mock
type Service interface {
	CheckSufficient(ctx context.Context, employeeID string, category Category, days int) (bool, error)
	BalanceOf(ctx context.Context, employeeID string) (BalanceSummary, error)
	Invalidate(ctx context.Context, employeeID string)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("ledger.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("ledger.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

// CheckSufficient reads the committed balance and compares it to days. It has
// no side effect and reserves nothing: a later approval re-checks at commit
// time.
func (s *service) CheckSufficient(ctx context.Context, employeeID string, category Category, days int) (bool, error) {
	if !category.Valid() {
		return false, ledgererrors.ErrInvalidCategory
	}
	if days < 1 {
		return false, ledgererrors.ErrInvalidDays
	}

	remaining, err := s.repo.GetRemaining(ctx, employeeID, category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ledgererrors.ErrBalanceNotFound
		}
		s.logger.Error("check sufficient read failed",
			zap.String("employee_id", employeeID),
			zap.String("category", string(category)),
			zap.Error(err),
		)
		return false, err
	}

	return remaining >= days, nil
}

func (s *service) BalanceOf(ctx context.Context, employeeID string) (BalanceSummary, error) {
	cacheKey := BalanceCacheKey(employeeID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var summary BalanceSummary
			if json.Unmarshal([]byte(cached), &summary) == nil {
				return summary, nil
			}
		}
	}

	// Collapse concurrent rebuilds for the same employee.
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		balances, err := s.repo.ListByEmployee(ctx, employeeID)
		if err != nil {
			return BalanceSummary{}, err
		}
		if len(balances) == 0 {
			return BalanceSummary{}, ledgererrors.ErrBalanceNotFound
		}

		summary := summarize(balances)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(summary); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, balanceCacheTTL)
			}
		}

		return summary, nil
	})

	if err != nil {
		return BalanceSummary{}, err
	}

	return v.(BalanceSummary), nil
}

// Invalidate drops the cached summary after a committed debit so the next
// read reflects it.
func (s *service) Invalidate(ctx context.Context, employeeID string) {
	if s.rdb == nil {
		return
	}

	cacheKey := BalanceCacheKey(employeeID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate balance cache",
			zap.String("key", cacheKey),
			zap.Error(err),
		)
	}
}

func summarize(balances []LeaveBalance) BalanceSummary {
	var summary BalanceSummary
	for _, b := range balances {
		switch b.Category {
		case CategorySick:
			summary.Sick = b.RemainingDays
		case CategoryCasual:
			summary.Casual = b.RemainingDays
		case CategoryVacation:
			summary.Vacation = b.RemainingDays
		}
	}
	return summary
}
