// Package domain contains persistence models and contracts for unit sales.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/mizanapp/mizan/internal/schema"
)

// Sale represents a unit sale or reservation in a project.
type Sale struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	ProjectID     string       `gorm:"type:text;index" json:"project_id,omitempty"`
	ProjectName   string       `gorm:"type:text;not null" json:"project_name"`
	CustomerName  string       `gorm:"type:text;not null" json:"customer_name"`
	CustomerPhone string       `gorm:"type:text" json:"customer_phone,omitempty"`
	UnitType      string       `gorm:"type:text;not null" json:"unit_type"`
	UnitNumber    string       `gorm:"type:text;not null" json:"unit_number"`
	Area          float64      `gorm:"not null" json:"area"`
	Price         float64      `gorm:"not null" json:"price"`
	Status        string       `gorm:"type:text;not null" json:"status"`
	SaleDate      string       `gorm:"type:text" json:"sale_date,omitempty"`
	Notes         string       `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Sale) TableName() string { return "sales" }

type ListFilter struct {
	ProjectName string
	Status      string
}

type Service interface {
	Create(ctx context.Context, rec schema.Record) (*Sale, error)
	Update(ctx context.Context, id string, rec schema.Record) (*Sale, error)
	Get(ctx context.Context, id string) (*Sale, error)
	List(ctx context.Context, filter ListFilter) ([]*Sale, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrNotFound  = errors.New("not_found")
	ErrInvalidID = errors.New("invalid_id")
)
