package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go-leavedesk/internal/events"
	leaveerrors "go-leavedesk/internal/leave/errors"
	"go-leavedesk/internal/ledger"
	"go-leavedesk/internal/messaging/kafka"
	"go-leavedesk/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultApproveComment = "Approved"
	defaultRejectComment  = "Rejected"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	ListOwn(ctx context.Context, actorID string) ([]LeaveResponse, error)
	ListAll(ctx context.Context) ([]LeaveResponse, error)
	ListPending(ctx context.Context) ([]LeaveResponse, error)
	Cancel(ctx context.Context, actorID, id string) error
	Approve(ctx context.Context, actorID, id, comment string) (LeaveResponse, error)
	Reject(ctx context.Context, actorID, id, comment string) (LeaveResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	balances  ledger.Service
	ledgerTxn ledger.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	balances ledger.Service,
	ledgerTxn ledger.Repository,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, balances, ledgerTxn, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	balances ledger.Service,
	ledgerTxn ledger.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		balances:  balances,
		ledgerTxn: ledgerTxn,
		outbox:    outboxRepo,
		logger:    l,
	}
}

// Create validates the date range, computes the inclusive day count and runs
// the advisory balance check before persisting a pending request. The check
// reserves nothing: approval re-validates against the balance at commit time.
func (s *service) Create(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave request",
		zap.String("request_id", rid),
		zap.String("actor_id", actorID),
		zap.String("category", req.Category),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	requesterID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	category := ledger.Category(req.Category)
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	totalDays := int(endDate.Sub(startDate).Hours()/24) + 1

	sufficient, err := s.balances.CheckSufficient(ctx, actorID, category, totalDays)
	if err != nil {
		s.logger.Error("create leave balance check failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	if !sufficient {
		s.logger.Warn("create leave insufficient balance",
			zap.String("actor_id", actorID),
			zap.String("category", req.Category),
			zap.Int("total_days", totalDays),
		)
		return LeaveResponse{}, leaveerrors.ErrInsufficientBalance
	}

	l := &LeaveRequest{
		ID:          uuid.New(),
		RequesterID: requesterID,
		Category:    category,
		StartDate:   startDate,
		EndDate:     endDate,
		TotalDays:   totalDays,
		Reason:      req.Reason,
		Status:      StatusPending,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	l.CreatedAt = time.Now().UTC()
	s.logger.Info("create leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("requester_id", actorID),
		zap.Int("total_days", totalDays),
	)

	return mapToResponse(*l), nil
}

func (s *service) ListOwn(ctx context.Context, actorID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return nil, leaveerrors.ErrInvalidActorID
	}

	requests, err := s.repo.FindByRequester(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) ListAll(ctx context.Context) ([]LeaveResponse, error) {
	requests, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) ListPending(ctx context.Context) ([]LeaveResponse, error) {
	requests, err := s.repo.FindByStatus(ctx, StatusPending)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

// Cancel removes a pending request. Only the requester may cancel, only while
// pending, and the ledger is never touched (nothing was debited yet).
func (s *service) Cancel(ctx context.Context, actorID, id string) error {
	s.logger.Debug("cancel leave request",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
	)

	if _, err := uuid.Parse(actorID); err != nil {
		return leaveerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return leaveerrors.ErrInvalidRequestID
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if l.RequesterID.String() != actorID {
		s.logger.Warn("cancel leave forbidden",
			zap.String("leave_id", id),
			zap.String("actor_id", actorID),
			zap.String("requester_id", l.RequesterID.String()),
		)
		return leaveerrors.ErrNotRequestOwner
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel leave begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	deleted, err := qtx.DeleteIfPending(ctx, id)
	if err != nil {
		s.logger.Error("cancel leave delete failed", zap.String("leave_id", id), zap.Error(err))
		return err
	}
	if !deleted {
		return leaveerrors.ErrAlreadyResolved
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("cancel leave success", zap.String("leave_id", id))

	return nil
}

// Approve debits the requester's balance and marks the request approved as
// one atomic unit. The debit's guarded UPDATE re-validates sufficiency at
// commit time; either failure rolls back the whole transaction and the
// request stays pending.
func (s *service) Approve(ctx context.Context, actorID, id, comment string) (LeaveResponse, error) {
	if comment == "" {
		comment = defaultApproveComment
	}
	return s.resolve(ctx, actorID, id, StatusApproved, comment)
}

// Reject marks the request rejected without any ledger interaction.
func (s *service) Reject(ctx context.Context, actorID, id, comment string) (LeaveResponse, error) {
	if comment == "" {
		comment = defaultRejectComment
	}
	return s.resolve(ctx, actorID, id, StatusRejected, comment)
}

func (s *service) resolve(ctx context.Context, actorID, id string, target Status, comment string) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("resolve leave request",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("target_status", string(target)),
	)

	if _, err := uuid.Parse(actorID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidRequestID
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if l.Status != StatusPending {
		s.logger.Warn("resolve leave not pending",
			zap.String("leave_id", id),
			zap.String("status", string(l.Status)),
		)
		return LeaveResponse{}, leaveerrors.ErrAlreadyResolved
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("resolve leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	if target == StatusApproved {
		qledger := s.ledgerTxn.WithTx(tx)
		debited, err := qledger.Debit(ctx, l.RequesterID.String(), l.Category, l.TotalDays)
		if err != nil {
			s.logger.Error("resolve leave debit failed", zap.String("leave_id", id), zap.Error(err))
			return LeaveResponse{}, err
		}
		if !debited {
			s.logger.Warn("resolve leave insufficient balance",
				zap.String("leave_id", id),
				zap.String("requester_id", l.RequesterID.String()),
				zap.String("category", string(l.Category)),
				zap.Int("total_days", l.TotalDays),
			)
			return LeaveResponse{}, leaveerrors.ErrInsufficientBalance
		}
	}

	qtx := s.repo.WithTx(tx)
	updated, err := qtx.UpdateStatusIfPending(ctx, id, target, comment, actorID)
	if err != nil {
		s.logger.Error("resolve leave status update failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if !updated {
		// Lost the race against a concurrent resolution or cancellation.
		// Rollback undoes the debit, if any.
		return LeaveResponse{}, leaveerrors.ErrAlreadyResolved
	}

	if s.outbox != nil {
		if err := s.queueResolvedEvent(ctx, tx, l, target, rid); err != nil {
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("resolve leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if target == StatusApproved {
		s.balances.Invalidate(ctx, l.RequesterID.String())
	}

	resolverID := uuid.MustParse(actorID)
	now := time.Now().UTC()
	l.Status = target
	l.ResolutionComment = comment
	l.ResolvedBy = &resolverID
	l.ResolvedAt = &now

	s.logger.Info("resolve leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("status", string(target)),
	)

	return mapToResponse(*l), nil
}

func (s *service) queueResolvedEvent(ctx context.Context, tx *sql.Tx, l *LeaveRequest, target Status, rid string) error {
	event := events.LeaveResolvedEvent{
		EventType:   events.EventTypeLeaveResolved,
		RequestID:   l.ID.String(),
		RequesterID: l.RequesterID.String(),
		Category:    string(l.Category),
		TotalDays:   l.TotalDays,
		Status:      string(target),
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal leave resolved event failed", zap.Error(err))
		return err
	}

	qoutbox := s.outbox.WithTx(tx)
	if err := qoutbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: kafka.AggregateLeaveRequest,
		AggregateID:   l.ID.String(),
		EventType:     event.EventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("queue leave resolved event failed",
			zap.String("leave_id", l.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:                l.ID.String(),
		RequesterID:       l.RequesterID.String(),
		Category:          string(l.Category),
		StartDate:         l.StartDate.Format("2006-01-02"),
		EndDate:           l.EndDate.Format("2006-01-02"),
		TotalDays:         l.TotalDays,
		Reason:            l.Reason,
		Status:            string(l.Status),
		ResolutionComment: l.ResolutionComment,
		CreatedAt:         l.CreatedAt.Format(time.RFC3339),
	}
	if l.Requester != nil {
		resp.RequesterName = l.Requester.Name
		resp.RequesterEmail = l.Requester.Email
	}
	if l.ResolvedBy != nil {
		v := l.ResolvedBy.String()
		resp.ResolvedBy = &v
	}
	if l.ResolvedAt != nil {
		v := l.ResolvedAt.Format(time.RFC3339)
		resp.ResolvedAt = &v
	}
	return resp
}

func mapToListResponse(requests []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(requests))
	for i, l := range requests {
		resp[i] = mapToResponse(l)
	}
	return resp
}
