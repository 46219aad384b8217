package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/estudioandino/cobranza/internal/clasificacion"
	"github.com/estudioandino/cobranza/internal/cliente"
	"github.com/estudioandino/cobranza/internal/clock"
	"github.com/estudioandino/cobranza/internal/config"
	"github.com/estudioandino/cobranza/internal/cronograma"
	"github.com/estudioandino/cobranza/internal/logger"
	"github.com/estudioandino/cobranza/internal/migration"
	"github.com/estudioandino/cobranza/internal/notificacion"
	"github.com/estudioandino/cobranza/internal/notifier"
	"github.com/estudioandino/cobranza/internal/observability/metrics"
	"github.com/estudioandino/cobranza/internal/pago"
	"github.com/estudioandino/cobranza/internal/proceso"
	"github.com/estudioandino/cobranza/internal/providers"
	"github.com/estudioandino/cobranza/internal/recibo"
	"github.com/estudioandino/cobranza/internal/recordatorio"
	"github.com/estudioandino/cobranza/internal/seed"
	"github.com/estudioandino/cobranza/internal/server"
	"github.com/estudioandino/cobranza/internal/servicio"
	"github.com/estudioandino/cobranza/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		clock.Module,
		db.Module,
		migration.Module,
		metrics.Module,

		// Outbound providers
		providers.Module,
		notifier.Module,

		// Functional domains
		cliente.Module,
		servicio.Module,
		pago.Module,
		cronograma.Module,
		clasificacion.Module,
		recordatorio.Module,
		notificacion.Module,
		recibo.Module,
		proceso.Module,

		seed.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
