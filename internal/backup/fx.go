package backup

import (
	"github.com/mizanapp/mizan/internal/backup/service"
	"go.uber.org/fx"
)

var Module = fx.Module("backup",
	fx.Provide(service.NewService),
)
