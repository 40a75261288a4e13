package contractor

import (
	"github.com/mizanapp/mizan/internal/contractor/service"
	"go.uber.org/fx"
)

var Module = fx.Module("contractor.service",
	fx.Provide(
		service.NewContractorService,
		service.NewSupplierService,
	),
)
