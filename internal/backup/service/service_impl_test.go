package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	assignmentdomain "github.com/mizanapp/mizan/internal/assignment/domain"
	backupdomain "github.com/mizanapp/mizan/internal/backup/domain"
	"github.com/mizanapp/mizan/internal/config"
	contractordomain "github.com/mizanapp/mizan/internal/contractor/domain"
	extractdomain "github.com/mizanapp/mizan/internal/extract/domain"
	invoicedomain "github.com/mizanapp/mizan/internal/invoice/domain"
	notificationdomain "github.com/mizanapp/mizan/internal/notification/domain"
	profiledomain "github.com/mizanapp/mizan/internal/profile/domain"
	purchasedomain "github.com/mizanapp/mizan/internal/purchase/domain"
	saledomain "github.com/mizanapp/mizan/internal/sale/domain"
	taskdomain "github.com/mizanapp/mizan/internal/task/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (backupdomain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&saledomain.Sale{},
		&invoicedomain.Invoice{},
		&purchasedomain.Purchase{},
		&extractdomain.Extract{},
		&assignmentdomain.AssignmentOrder{},
		&contractordomain.Contractor{},
		&contractordomain.Supplier{},
		&taskdomain.Task{},
		&taskdomain.TaskReport{},
		&profiledomain.Profile{},
		&notificationdomain.Notification{},
		&backupdomain.BackupLog{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := NewService(ServiceParam{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Settings: config.NewStaticSettingsHolder(config.DefaultSettings()),
	})
	return svc, db
}

func TestExport_IncludesEveryTable(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	require.NoError(t, db.Create(&saledomain.Sale{
		ID:           node.Generate(),
		ProjectName:  "مشروع النرجس",
		CustomerName: "أحمد الغامدي",
		UnitType:     "شقة",
		UnitNumber:   "A-12",
		Area:         120,
		Price:        450000,
		Status:       "متاح",
	}).Error)
	require.NoError(t, db.Create(&contractordomain.Contractor{
		ID:   node.Generate(),
		Name: "مؤسسة البناء الحديث",
	}).Error)

	doc, err := svc.Export(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.False(t, doc.CreatedAt.IsZero())
	assert.Equal(t, config.DefaultSettings().Backup.Version, doc.Version)

	require.Len(t, doc.Tables, len(backupdomain.Tables))
	for _, table := range backupdomain.Tables {
		_, ok := doc.Tables[table]
		assert.True(t, ok, "missing table %s", table)
	}
	assert.Len(t, doc.Tables["sales"], 1)
	assert.Len(t, doc.Tables["contractors"], 1)
	assert.Empty(t, doc.Tables["invoices"])
}

func TestExport_WritesBackupLog(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Export(ctx)
	require.NoError(t, err)
	_, err = svc.Export(ctx)
	require.NoError(t, err)

	logs, err := svc.ListLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.NotEmpty(t, logs[0].Version)
}
