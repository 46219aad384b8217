package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	ListPorAnioDigito(ctx context.Context, db *gorm.DB, anio, digito int) ([]CronogramaSunat, error)
	Insert(ctx context.Context, db *gorm.DB, rows []CronogramaSunat) error
}
