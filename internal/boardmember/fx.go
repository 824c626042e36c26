package boardmember

import (
	"github.com/atriumhq/atrium/internal/boardmember/repository"
	"github.com/atriumhq/atrium/internal/boardmember/service"
	"go.uber.org/fx"
)

var Module = fx.Module("boardmember.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
