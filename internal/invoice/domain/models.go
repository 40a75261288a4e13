// Package domain contains persistence models and contracts for invoices.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/mizanapp/mizan/internal/schema"
)

// Invoice represents a client invoice with a due date.
type Invoice struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	InvoiceNumber string       `gorm:"type:text;not null;uniqueIndex" json:"invoice_number"`
	ClientName    string       `gorm:"type:text;not null" json:"client_name"`
	Amount        float64      `gorm:"not null" json:"amount"`
	InvoiceDate   string       `gorm:"type:text;not null" json:"invoice_date"`
	DueDate       string       `gorm:"type:text;not null" json:"due_date"`
	Status        string       `gorm:"type:text;not null" json:"status"`
	Description   string       `gorm:"type:text" json:"description,omitempty"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Invoice) TableName() string { return "invoices" }

type ListFilter struct {
	ClientName string
	Status     string
}

type Service interface {
	Create(ctx context.Context, rec schema.Record) (*Invoice, error)
	Update(ctx context.Context, id string, rec schema.Record) (*Invoice, error)
	Get(ctx context.Context, id string) (*Invoice, error)
	List(ctx context.Context, filter ListFilter) ([]*Invoice, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrNotFound        = errors.New("not_found")
	ErrInvalidID       = errors.New("invalid_id")
	ErrDuplicateNumber = errors.New("duplicate_invoice_number")
)
