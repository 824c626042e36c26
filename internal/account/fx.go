package account

import (
	"github.com/atriumhq/atrium/internal/account/repository"
	"github.com/atriumhq/atrium/internal/account/service"
	"go.uber.org/fx"
)

var Module = fx.Module("account.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
