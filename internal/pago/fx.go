package pago

import (
	"github.com/estudioandino/cobranza/internal/pago/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("pago.repository",
	fx.Provide(repository.Provide),
)
