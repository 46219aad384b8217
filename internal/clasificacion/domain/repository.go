package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	ListCatalogo(ctx context.Context, db *gorm.DB) ([]Clasificacion, error)
	InsertHistorial(ctx context.Context, db *gorm.DB, historial *HistorialClasificacion) error
}
