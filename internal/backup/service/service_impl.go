package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	backupdomain "github.com/mizanapp/mizan/internal/backup/domain"
	"github.com/mizanapp/mizan/internal/config"
	"github.com/mizanapp/mizan/internal/observability/metrics"
	"github.com/mizanapp/mizan/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	settings *config.SettingsHolder
	metrics  *metrics.DocumentMetrics
	logs     repository.Repository[backupdomain.BackupLog]
}

type ServiceParam struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Settings *config.SettingsHolder
	Metrics  *metrics.DocumentMetrics `optional:"true"`
}

func NewService(p ServiceParam) backupdomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("backup.service"),
		genID:    p.GenID,
		settings: p.Settings,
		metrics:  p.Metrics,
		logs:     repository.ProvideStore[backupdomain.BackupLog](p.DB),
	}
}

// Export bulk-selects every row of every enumerated table into a single
// document, then records the export in backup_logs.
func (s *Service) Export(ctx context.Context) (*backupdomain.Document, error) {
	doc := &backupdomain.Document{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Version:   s.settings.Get().Backup.Version,
		Tables:    make(map[string][]map[string]any, len(backupdomain.Tables)),
	}

	rowCounts := map[string]any{}
	for _, table := range backupdomain.Tables {
		rows := []map[string]any{}
		if err := s.db.WithContext(ctx).Table(table).Find(&rows).Error; err != nil {
			return nil, err
		}
		doc.Tables[table] = rows
		rowCounts[table] = len(rows)
	}

	entry := &backupdomain.BackupLog{
		ID:        s.genID.Generate(),
		Version:   doc.Version,
		RowCounts: rowCounts,
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.metrics.RecordBackup()
	s.log.Info("backup exported",
		zap.String("document_id", doc.ID),
		zap.Int("tables", len(doc.Tables)),
	)
	return doc, nil
}

func (s *Service) ListLogs(ctx context.Context) ([]*backupdomain.BackupLog, error) {
	return s.logs.Find(ctx, &backupdomain.BackupLog{},
		repository.WithOrder("created_at desc, id desc"))
}
