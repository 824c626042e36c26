package person

import (
	"github.com/atriumhq/atrium/internal/person/repository"
	"github.com/atriumhq/atrium/internal/person/service"
	"go.uber.org/fx"
)

var Module = fx.Module("person.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
