// Package domain contains the backup-export contracts.
package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Tables enumerates every persisted table included in an export. Order is
// the order tables appear in the exported document.
var Tables = []string{
	"sales",
	"invoices",
	"purchases",
	"extracts",
	"assignment_orders",
	"contractors",
	"suppliers",
	"tasks",
	"task_reports",
	"profiles",
	"notifications",
	"backup_logs",
}

// Document is a full-database export: one JSON document holding every row
// of every table.
type Document struct {
	ID        string                      `json:"id"`
	CreatedAt time.Time                   `json:"created_at"`
	Version   string                      `json:"version"`
	Tables    map[string][]map[string]any `json:"tables"`
}

// BackupLog records one completed export.
type BackupLog struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	Version   string            `gorm:"type:text;not null" json:"version"`
	RowCounts datatypes.JSONMap `gorm:"type:jsonb" json:"row_counts"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (BackupLog) TableName() string { return "backup_logs" }

type Service interface {
	Export(ctx context.Context) (*Document, error)
	ListLogs(ctx context.Context) ([]*BackupLog, error)
}
