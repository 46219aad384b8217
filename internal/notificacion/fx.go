package notificacion

import (
	"github.com/estudioandino/cobranza/internal/notificacion/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("notificacion.repository",
	fx.Provide(repository.Provide),
)
