package extract

import (
	"github.com/mizanapp/mizan/internal/extract/service"
	"go.uber.org/fx"
)

var Module = fx.Module("extract.service",
	fx.Provide(service.NewService),
)
