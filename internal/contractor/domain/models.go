// Package domain contains persistence models and contracts for contractors
// and suppliers.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/mizanapp/mizan/internal/schema"
)

type Contractor struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	Name       string       `gorm:"type:text;not null" json:"name"`
	Phone      string       `gorm:"type:text" json:"phone,omitempty"`
	Specialty  string       `gorm:"type:text" json:"specialty,omitempty"`
	NationalID string       `gorm:"type:text" json:"national_id,omitempty"`
	Status     string       `gorm:"type:text" json:"status,omitempty"`
	Notes      string       `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Contractor) TableName() string { return "contractors" }

type Supplier struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Phone     string       `gorm:"type:text" json:"phone,omitempty"`
	Category  string       `gorm:"type:text" json:"category,omitempty"`
	Notes     string       `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Supplier) TableName() string { return "suppliers" }

type ContractorService interface {
	Create(ctx context.Context, rec schema.Record) (*Contractor, error)
	Update(ctx context.Context, id string, rec schema.Record) (*Contractor, error)
	Get(ctx context.Context, id string) (*Contractor, error)
	List(ctx context.Context) ([]*Contractor, error)
	Delete(ctx context.Context, id string) error
}

type SupplierService interface {
	Create(ctx context.Context, rec schema.Record) (*Supplier, error)
	Update(ctx context.Context, id string, rec schema.Record) (*Supplier, error)
	Get(ctx context.Context, id string) (*Supplier, error)
	List(ctx context.Context) ([]*Supplier, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrNotFound  = errors.New("not_found")
	ErrInvalidID = errors.New("invalid_id")
)
