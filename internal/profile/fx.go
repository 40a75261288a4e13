package profile

import (
	"github.com/mizanapp/mizan/internal/profile/service"
	"go.uber.org/fx"
)

var Module = fx.Module("profile.service",
	fx.Provide(service.NewService),
)
