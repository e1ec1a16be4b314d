package auth

import (
	"time"

	"github.com/google/uuid"
)

// Role is fixed at registration and never transitions.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"type:varchar(120);not null"`
	Email    string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email"`
	Password string    `gorm:"type:varchar(255);not null"`
	Role     Role      `gorm:"type:varchar(20);not null;default:'employee'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}
