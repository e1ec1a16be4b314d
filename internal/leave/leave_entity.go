package leave

import (
	"time"

	"go-leavedesk/internal/auth"
	"go-leavedesk/internal/ledger"

	"github.com/google/uuid"
)

// Status is the closed set of request states. pending is the only mutable
// state; approved and rejected are terminal. Cancellation deletes the record
// instead of storing a fourth state.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// LeaveRequest is a single leave application. Once the status leaves pending
// the record is immutable: every transition and the cancellation delete are
// guarded by a status = 'pending' predicate in the repository.
type LeaveRequest struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequesterID uuid.UUID       `gorm:"type:uuid;not null;index:idx_leave_requests_requester"`
	Category    ledger.Category `gorm:"type:varchar(20);not null"`

	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	TotalDays int       `gorm:"type:int;not null"`
	Reason    string    `gorm:"type:text;not null"`

	Status            Status     `gorm:"type:varchar(20);not null;default:'pending';index:idx_leave_requests_status"`
	ResolutionComment string     `gorm:"type:text;not null;default:''"`
	ResolvedBy        *uuid.UUID `gorm:"type:uuid"`
	ResolvedAt        *time.Time

	CreatedAt time.Time `gorm:"index:idx_leave_requests_created_at,sort:desc"`
	UpdatedAt time.Time

	Requester *auth.User `gorm:"foreignKey:RequesterID"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
