package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Category is a closed set of recognized leave types.
type Category string

const (
	CategorySick     Category = "sick"
	CategoryCasual   Category = "casual"
	CategoryVacation Category = "vacation"
)

// Categories lists every recognized category in a stable order.
func Categories() []Category {
	return []Category{CategorySick, CategoryCasual, CategoryVacation}
}

func (c Category) Valid() bool {
	switch c {
	case CategorySick, CategoryCasual, CategoryVacation:
		return true
	default:
		return false
	}
}

// Entitlement granted to every new employee, in whole days.
var DefaultEntitlement = map[Category]int{
	CategorySick:     10,
	CategoryCasual:   10,
	CategoryVacation: 15,
}

// LeaveBalance is one employee's remaining entitlement for one category.
// RemainingDays never goes below zero; the only write path is the debit
// performed when a request is approved.
type LeaveBalance struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_balances_employee_category"`
	Category      Category  `gorm:"type:varchar(20);not null;uniqueIndex:uq_balances_employee_category"`
	RemainingDays int       `gorm:"type:int;not null;default:0;check:remaining_days >= 0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}
