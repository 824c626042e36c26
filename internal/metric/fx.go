package metric

import (
	"github.com/atriumhq/atrium/internal/metric/repository"
	"github.com/atriumhq/atrium/internal/metric/service"
	"go.uber.org/fx"
)

var Module = fx.Module("metric.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
