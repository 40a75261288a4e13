// Package domain contains the notification fan-out and messaging-relay
// contracts.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/mizanapp/mizan/pkg/db/pagination"
	"gorm.io/datatypes"
)

// Notification types.
const (
	TypeInfo    = "info"
	TypeWarning = "warning"
	TypeError   = "error"
	TypeSuccess = "success"
)

// Notification is one delivered row per recipient profile.
type Notification struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	RecipientID snowflake.ID      `gorm:"not null;index" json:"recipient_id"`
	Title       string            `gorm:"type:text;not null" json:"title"`
	Message     string            `gorm:"type:text;not null" json:"message"`
	Type        string            `gorm:"type:text;not null" json:"type"`
	Read        bool              `gorm:"not null;default:false" json:"read"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

// DispatchRequest fans one message out to many recipients. SenderID must
// belong to a system-administrator profile.
type DispatchRequest struct {
	SenderID   string   `json:"sender_id"`
	Title      string   `json:"title"`
	Message    string   `json:"message"`
	Type       string   `json:"type"`
	Recipients []string `json:"recipients"`
}

type DispatchResult struct {
	Dispatched int `json:"dispatched"`
}

// RelayRequest forwards one message to an external phone number through
// the messaging provider.
type RelayRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

type RelayResult struct {
	To string `json:"to"` // provider-formatted address actually used
}

// NotificationPage is one cursor-paginated slice of a recipient's feed.
type NotificationPage struct {
	Notifications []*Notification     `json:"notifications"`
	PageInfo      pagination.PageInfo `json:"page_info"`
}

type Service interface {
	Dispatch(ctx context.Context, req DispatchRequest) (*DispatchResult, error)
	Relay(ctx context.Context, req RelayRequest) (*RelayResult, error)
	ListByRecipient(ctx context.Context, recipientID string, page pagination.Pagination) (*NotificationPage, error)
	MarkRead(ctx context.Context, id string) error
}

// Provider delivers a relayed message to the external messaging service.
type Provider interface {
	Send(ctx context.Context, to string, message string) error
}

var (
	ErrForbidden         = errors.New("forbidden")
	ErrSenderNotFound    = errors.New("sender_not_found")
	ErrNoRecipients      = errors.New("no_recipients")
	ErrTooManyRecipients = errors.New("too_many_recipients")
	ErrInvalidRecipient  = errors.New("invalid_recipient")
	ErrEmptyMessage      = errors.New("empty_message")
	ErrInvalidPhone      = errors.New("invalid_phone_number")
	ErrNotFound          = errors.New("not_found")
	ErrInvalidID         = errors.New("invalid_id")
)
