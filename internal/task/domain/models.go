// Package domain contains persistence models and contracts for tasks and
// task progress reports.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/mizanapp/mizan/internal/schema"
)

type Task struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"type:text;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description,omitempty"`
	AssignedTo  string       `gorm:"type:text;not null" json:"assigned_to"`
	Priority    string       `gorm:"type:text;not null" json:"priority"`
	Status      string       `gorm:"type:text;not null" json:"status"`
	DueDate     string       `gorm:"type:text" json:"due_date,omitempty"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Task) TableName() string { return "tasks" }

// TaskReport is a dated progress note against a task.
type TaskReport struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	TaskID     snowflake.ID `gorm:"not null;index" json:"task_id"`
	Reporter   string       `gorm:"type:text;not null" json:"reporter"`
	Content    string       `gorm:"type:text;not null" json:"content"`
	ReportDate string       `gorm:"type:text;not null" json:"report_date"`
	Progress   float64      `gorm:"not null;default:0" json:"progress"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (TaskReport) TableName() string { return "task_reports" }

type ListFilter struct {
	AssignedTo string
	Status     string
}

type TaskService interface {
	Create(ctx context.Context, rec schema.Record) (*Task, error)
	Update(ctx context.Context, id string, rec schema.Record) (*Task, error)
	Get(ctx context.Context, id string) (*Task, error)
	List(ctx context.Context, filter ListFilter) ([]*Task, error)
	Delete(ctx context.Context, id string) error
}

type ReportService interface {
	Create(ctx context.Context, rec schema.Record) (*TaskReport, error)
	ListByTask(ctx context.Context, taskID string) ([]*TaskReport, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrNotFound     = errors.New("not_found")
	ErrInvalidID    = errors.New("invalid_id")
	ErrTaskNotFound = errors.New("task_not_found")
)
