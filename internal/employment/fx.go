package employment

import (
	"github.com/atriumhq/atrium/internal/employment/repository"
	"github.com/atriumhq/atrium/internal/employment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("employment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
