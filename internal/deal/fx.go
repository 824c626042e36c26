package deal

import (
	"github.com/atriumhq/atrium/internal/deal/repository"
	"github.com/atriumhq/atrium/internal/deal/service"
	"go.uber.org/fx"
)

var Module = fx.Module("deal.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
