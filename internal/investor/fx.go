package investor

import (
	"github.com/atriumhq/atrium/internal/investor/repository"
	"github.com/atriumhq/atrium/internal/investor/service"
	"go.uber.org/fx"
)

var Module = fx.Module("investor.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
