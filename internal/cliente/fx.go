package cliente

import (
	"github.com/estudioandino/cobranza/internal/cliente/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("cliente.repository",
	fx.Provide(repository.Provide),
)
