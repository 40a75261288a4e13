package observability

import (
	"github.com/mizanapp/mizan/internal/observability/metrics"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(
		metrics.NewHTTPMetrics,
		metrics.NewDocumentMetrics,
	),
)
