package clasificacion

import (
	"github.com/estudioandino/cobranza/internal/clasificacion/repository"
	"github.com/estudioandino/cobranza/internal/clasificacion/service"
	"go.uber.org/fx"
)

var Module = fx.Module("clasificacion.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
