package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	InsertLog(ctx context.Context, db *gorm.DB, log *LogProcesoAutomatico) error
	ListLogs(ctx context.Context, db *gorm.DB, limit int) ([]LogProcesoAutomatico, error)
}
