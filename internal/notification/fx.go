package notification

import (
	notificationdomain "github.com/mizanapp/mizan/internal/notification/domain"
	"github.com/mizanapp/mizan/internal/notification/service"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("notification.service",
	fx.Provide(NewProvider),
	fx.Provide(service.NewService),
)

// NewProvider selects the messaging provider. There is no real provider
// binding yet, so messages land in the log.
func NewProvider(log *zap.Logger) notificationdomain.Provider {
	return &LogProvider{Log: log.Named("messaging.provider")}
}
