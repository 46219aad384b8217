package proceso

import (
	"context"

	"github.com/estudioandino/cobranza/internal/config"
	"github.com/estudioandino/cobranza/internal/proceso/domain"
	"github.com/estudioandino/cobranza/internal/proceso/repository"
	"github.com/estudioandino/cobranza/internal/proceso/service"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("proceso",
	fx.Provide(
		repository.New,
		service.New,
	),
	fx.Invoke(registerLoop),
)

// registerLoop runs the automation loop for the process lifetime when enabled.
func registerLoop(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, svc domain.Service) {
	if !cfg.ProcesoEnabled {
		log.Warn("proceso automatico deshabilitado por configuracion")
		return
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go svc.RunForever(loopCtx)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			return nil
		},
	})
}
