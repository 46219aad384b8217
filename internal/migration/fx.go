package migration

import (
	"github.com/estudioandino/cobranza/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Module applies schema migrations on startup. Migrations are written for
// PostgreSQL; other dialects (used by tests) create their schema via
// AutoMigrate instead.
var Module = fx.Module("migration",
	fx.Invoke(run),
)

func run(cfg config.Config, gdb *gorm.DB, log *zap.Logger) error {
	if cfg.DBType != "postgres" {
		log.Warn("skipping SQL migrations for non-postgres database", zap.String("db_type", cfg.DBType))
		return nil
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return RunMigrations(sqlDB)
}
