package repository

import (
	"context"

	"github.com/estudioandino/cobranza/internal/clasificacion/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListCatalogo(ctx context.Context, db *gorm.DB) ([]domain.Clasificacion, error) {
	var catalogo []domain.Clasificacion
	err := db.WithContext(ctx).
		Order("id").
		Find(&catalogo).Error
	if err != nil {
		return nil, err
	}
	return catalogo, nil
}

func (r *repo) InsertHistorial(ctx context.Context, db *gorm.DB, historial *domain.HistorialClasificacion) error {
	return db.WithContext(ctx).Create(historial).Error
}
