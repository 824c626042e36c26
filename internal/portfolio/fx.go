package portfolio

import (
	"github.com/atriumhq/atrium/internal/portfolio/service"
	"go.uber.org/fx"
)

var Module = fx.Module("portfolio.service",
	fx.Provide(service.New),
)
