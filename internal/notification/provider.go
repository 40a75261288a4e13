package notification

import (
	"context"

	notificationdomain "github.com/mizanapp/mizan/internal/notification/domain"
	"go.uber.org/zap"
)

// NoOpProvider drops relayed messages. Used when no messaging provider is
// configured; the relay endpoint still validates and formats the address.
type NoOpProvider struct{}

func (p *NoOpProvider) Send(ctx context.Context, to string, message string) error {
	_ = ctx
	_ = to
	_ = message
	return nil
}

// LogProvider writes relayed messages to the application log instead of an
// external service. Useful in development.
type LogProvider struct {
	Log *zap.Logger
}

func (p *LogProvider) Send(ctx context.Context, to string, message string) error {
	_ = ctx
	p.Log.Info("message relayed",
		zap.String("to", to),
		zap.Int("length", len(message)),
	)
	return nil
}

var _ notificationdomain.Provider = (*NoOpProvider)(nil)
var _ notificationdomain.Provider = (*LogProvider)(nil)
