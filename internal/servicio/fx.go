package servicio

import (
	"github.com/estudioandino/cobranza/internal/servicio/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("servicio.repository",
	fx.Provide(repository.Provide),
)
