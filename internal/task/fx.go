package task

import (
	"github.com/mizanapp/mizan/internal/task/service"
	"go.uber.org/fx"
)

var Module = fx.Module("task.service",
	fx.Provide(
		service.NewTaskService,
		service.NewReportService,
	),
)
