// Package domain contains persistence models and contracts for user
// profiles. Authentication itself is handled outside this service; a
// profile only records who a user is and what role they hold.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/mizanapp/mizan/internal/schema"
)

// Roles a profile can hold.
const (
	RoleSystemAdmin = "system_admin"
	RoleManager     = "manager"
	RoleEmployee    = "employee"
)

type Profile struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	FullName  string       `gorm:"type:text;not null" json:"full_name"`
	Email     string       `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Phone     string       `gorm:"type:text" json:"phone,omitempty"`
	Role      string       `gorm:"type:text;not null" json:"role"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

type Service interface {
	Create(ctx context.Context, rec schema.Record) (*Profile, error)
	Update(ctx context.Context, id string, rec schema.Record) (*Profile, error)
	Get(ctx context.Context, id string) (*Profile, error)
	List(ctx context.Context) ([]*Profile, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrNotFound       = errors.New("not_found")
	ErrInvalidID      = errors.New("invalid_id")
	ErrDuplicateEmail = errors.New("duplicate_email")
)
