package recordatorio

import (
	"github.com/estudioandino/cobranza/internal/recordatorio/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("recordatorio.repository",
	fx.Provide(repository.Provide),
)
