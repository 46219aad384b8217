package repository

import (
	"context"

	"github.com/estudioandino/cobranza/internal/cronograma/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListPorAnioDigito(ctx context.Context, db *gorm.DB, anio, digito int) ([]domain.CronogramaSunat, error) {
	var rows []domain.CronogramaSunat
	err := db.WithContext(ctx).
		Where("anio = ? AND digito = ?", anio, digito).
		Order("mes").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, rows []domain.CronogramaSunat) error {
	if len(rows) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&rows).Error
}
