package dashboard

import (
	"context"

	"go-leavedesk/internal/auth"
	"go-leavedesk/internal/leave"
	"go-leavedesk/internal/ledger"

	"go.uber.org/zap"
)

// Service computes read-side projections over the request store and the
// balance ledger. Pure reads, no state of its own.
//
//go:generate mockgen -source=dashboard_service.go -destination=mock/dashboard_service_mock.go -package=mock
type Service interface {
	EmployeeStats(ctx context.Context, actorID string) (EmployeeStatsResponse, error)
	ManagerStats(ctx context.Context) (ManagerStatsResponse, error)
}

type service struct {
	requests leave.Repository
	balances ledger.Service
	users    auth.Repository
	logger   *zap.Logger
}

func NewService(
	requests leave.Repository,
	balances ledger.Service,
	users auth.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{requests: requests, balances: balances, users: users, logger: l}
}

func (s *service) EmployeeStats(ctx context.Context, actorID string) (EmployeeStatsResponse, error) {
	var resp EmployeeStatsResponse
	var err error

	if resp.TotalRequests, err = s.requests.CountByRequester(ctx, actorID, nil); err != nil {
		return EmployeeStatsResponse{}, err
	}
	for status, target := range map[leave.Status]*int64{
		leave.StatusPending:  &resp.PendingRequests,
		leave.StatusApproved: &resp.ApprovedRequests,
		leave.StatusRejected: &resp.RejectedRequests,
	} {
		st := status
		if *target, err = s.requests.CountByRequester(ctx, actorID, &st); err != nil {
			return EmployeeStatsResponse{}, err
		}
	}

	if resp.LeaveBalance, err = s.balances.BalanceOf(ctx, actorID); err != nil {
		return EmployeeStatsResponse{}, err
	}

	return resp, nil
}

func (s *service) ManagerStats(ctx context.Context) (ManagerStatsResponse, error) {
	var resp ManagerStatsResponse
	var err error

	if resp.TotalEmployees, err = s.users.CountByRole(ctx, auth.RoleEmployee); err != nil {
		return ManagerStatsResponse{}, err
	}
	if resp.TotalRequests, err = s.requests.CountAll(ctx, nil); err != nil {
		return ManagerStatsResponse{}, err
	}
	for status, target := range map[leave.Status]*int64{
		leave.StatusPending:  &resp.PendingRequests,
		leave.StatusApproved: &resp.ApprovedRequests,
		leave.StatusRejected: &resp.RejectedRequests,
	} {
		st := status
		if *target, err = s.requests.CountAll(ctx, &st); err != nil {
			return ManagerStatsResponse{}, err
		}
	}

	return resp, nil
}
