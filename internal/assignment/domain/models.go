// Package domain contains persistence models and contracts for assignment
// orders (work awarded to a contractor).
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/mizanapp/mizan/internal/schema"
)

// AssignmentOrder awards a scope of work to a contractor for an agreed
// amount. Shares the tax breakdown shape with extracts.
type AssignmentOrder struct {
	ID               snowflake.ID `gorm:"primaryKey" json:"id"`
	OrderNumber      string       `gorm:"type:text;not null" json:"order_number"`
	ProjectID        string       `gorm:"type:text;index" json:"project_id,omitempty"`
	ProjectName      string       `gorm:"type:text;not null" json:"project_name"`
	ContractorName   string       `gorm:"type:text;not null" json:"contractor_name"`
	WorkDescription  string       `gorm:"type:text" json:"work_description,omitempty"`
	Amount           float64      `gorm:"not null" json:"amount"`
	TaxIncluded      bool         `gorm:"not null;default:false" json:"tax_included"`
	AmountBeforeTax  float64      `gorm:"not null;default:0" json:"amount_before_tax"`
	TaxAmount        float64      `gorm:"not null;default:0" json:"tax_amount"`
	OrderDate        string       `gorm:"type:text;not null" json:"order_date"`
	Status           string       `gorm:"type:text;not null" json:"status"`
	AttachedFileURL  string       `gorm:"type:text" json:"attached_file_url,omitempty"`
	AttachedFileName string       `gorm:"type:text" json:"attached_file_name,omitempty"`
	CreatedAt        time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (AssignmentOrder) TableName() string { return "assignment_orders" }

type ListFilter struct {
	ProjectName    string
	ContractorName string
	Status         string
}

type Service interface {
	Create(ctx context.Context, rec schema.Record) (*AssignmentOrder, error)
	Update(ctx context.Context, id string, rec schema.Record) (*AssignmentOrder, error)
	Get(ctx context.Context, id string) (*AssignmentOrder, error)
	List(ctx context.Context, filter ListFilter) ([]*AssignmentOrder, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrNotFound  = errors.New("not_found")
	ErrInvalidID = errors.New("invalid_id")
)
