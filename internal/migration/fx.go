package migration

import (
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
	"github.com/mizanapp/mizan/internal/seed"
	taskdomain "github.com/mizanapp/mizan/internal/task/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// Versioned SQL migrations target postgres; other dialects
			// sync the schema from the models instead.
			if err := conn.AutoMigrate(
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
			); err != nil {
				return err
			}
		}

		return seed.EnsureDefaultAdmin(conn)
	}),
)
