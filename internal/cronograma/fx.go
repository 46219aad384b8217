package cronograma

import (
	"github.com/estudioandino/cobranza/internal/cronograma/repository"
	"github.com/estudioandino/cobranza/internal/cronograma/service"
	"go.uber.org/fx"
)

var Module = fx.Module("cronograma.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
