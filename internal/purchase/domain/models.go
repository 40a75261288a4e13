// Package domain contains persistence models and contracts for purchases.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/mizanapp/mizan/internal/schema"
)

type Purchase struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	SupplierName string       `gorm:"type:text;not null" json:"supplier_name"`
	Description  string       `gorm:"type:text" json:"description,omitempty"`
	Amount       float64      `gorm:"not null" json:"amount"`
	PurchaseDate string       `gorm:"type:text;not null" json:"purchase_date"`
	Status       string       `gorm:"type:text;not null" json:"status"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Purchase) TableName() string { return "purchases" }

type ListFilter struct {
	SupplierName string
	Status       string
}

type Service interface {
	Create(ctx context.Context, rec schema.Record) (*Purchase, error)
	Update(ctx context.Context, id string, rec schema.Record) (*Purchase, error)
	Get(ctx context.Context, id string) (*Purchase, error)
	List(ctx context.Context, filter ListFilter) ([]*Purchase, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrNotFound  = errors.New("not_found")
	ErrInvalidID = errors.New("invalid_id")
)
