package company

import (
	"github.com/atriumhq/atrium/internal/company/repository"
	"github.com/atriumhq/atrium/internal/company/service"
	"go.uber.org/fx"
)

var Module = fx.Module("company.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
