package investment

import (
	"github.com/atriumhq/atrium/internal/investment/repository"
	"github.com/atriumhq/atrium/internal/investment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("investment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
