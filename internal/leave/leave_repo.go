package leave

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindByRequester(ctx context.Context, requesterID string) ([]LeaveRequest, error)
	FindAll(ctx context.Context) ([]LeaveRequest, error)
	FindByStatus(ctx context.Context, status Status) ([]LeaveRequest, error)
	UpdateStatusIfPending(ctx context.Context, id string, status Status, comment, resolverID string) (bool, error)
	DeleteIfPending(ctx context.Context, id string) (bool, error)
	CountByRequester(ctx context.Context, requesterID string, status *Status) (int64, error)
	CountAll(ctx context.Context, status *Status) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	if r.tx != nil {
		query := `
        INSERT INTO leave_requests (
            id, requester_id, category, start_date, end_date,
            total_days, reason, status, resolution_comment, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, '', NOW(), NOW())
    `
		_, err := r.tx.ExecContext(ctx, query,
			l.ID, l.RequesterID, string(l.Category),
			l.StartDate, l.EndDate, l.TotalDays, l.Reason, string(l.Status),
		)
		return err
	}
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindByRequester(ctx context.Context, requesterID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindByStatus(ctx context.Context, status Status) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Where("status = ?", string(status)).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// UpdateStatusIfPending commits the terminal transition only when the row is
// still pending. Zero rows affected means another resolution or a
// cancellation won the race.
func (r *repository) UpdateStatusIfPending(ctx context.Context, id string, status Status, comment, resolverID string) (bool, error) {
	query := `
UPDATE leave_requests
SET status = $2,
	resolution_comment = $3,
	resolved_by = $4,
	resolved_at = NOW(),
	updated_at = NOW()
WHERE id = $1
	AND status = 'pending'
`

	if r.tx != nil {
		res, err := r.tx.ExecContext(ctx, query, id, string(status), comment, resolverID)
		if err != nil {
			return false, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return false, err
		}
		return affected > 0, nil
	}

	res := r.db.WithContext(ctx).Exec(query, id, string(status), comment, resolverID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteIfPending removes the row only while it is still pending; resolved
// requests are immutable history and can never be deleted.
func (r *repository) DeleteIfPending(ctx context.Context, id string) (bool, error) {
	query := `
DELETE FROM leave_requests
WHERE id = $1
	AND status = 'pending'
`

	if r.tx != nil {
		res, err := r.tx.ExecContext(ctx, query, id)
		if err != nil {
			return false, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return false, err
		}
		return affected > 0, nil
	}

	res := r.db.WithContext(ctx).Exec(query, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) CountByRequester(ctx context.Context, requesterID string, status *Status) (int64, error) {
	db := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("requester_id = ?", requesterID)
	if status != nil {
		db = db.Where("status = ?", string(*status))
	}

	var count int64
	err := db.Count(&count).Error
	return count, err
}

func (r *repository) CountAll(ctx context.Context, status *Status) (int64, error) {
	db := r.db.WithContext(ctx).Model(&LeaveRequest{})
	if status != nil {
		db = db.Where("status = ?", string(*status))
	}

	var count int64
	err := db.Count(&count).Error
	return count, err
}
