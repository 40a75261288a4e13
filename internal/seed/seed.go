// Package seed bootstraps the default records a fresh installation needs.
package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	profiledomain "github.com/mizanapp/mizan/internal/profile/domain"
	"gorm.io/gorm"
)

const (
	defaultAdminEmail = "admin@mizan.app"
	defaultAdminName  = "مدير النظام"
)

// EnsureDefaultAdmin seeds a system administrator profile so a fresh
// installation always has at least one account able to dispatch
// notifications and manage users.
func EnsureDefaultAdmin(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&profiledomain.Profile{}).
			Where("role = ?", profiledomain.RoleSystemAdmin).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		admin := profiledomain.Profile{
			ID:       node.Generate(),
			FullName: defaultAdminName,
			Email:    defaultAdminEmail,
			Role:     profiledomain.RoleSystemAdmin,
		}
		return tx.Create(&admin).Error
	})
}
