package repository

import (
	"context"

	"github.com/estudioandino/cobranza/internal/proceso/domain"
	"gorm.io/gorm"
)

type repository struct{}

func New() domain.Repository {
	return &repository{}
}

func (r *repository) InsertLog(ctx context.Context, db *gorm.DB, log *domain.LogProcesoAutomatico) error {
	return db.WithContext(ctx).Create(log).Error
}

func (r *repository) ListLogs(ctx context.Context, db *gorm.DB, limit int) ([]domain.LogProcesoAutomatico, error) {
	if limit <= 0 {
		limit = 30
	}
	var logs []domain.LogProcesoAutomatico
	err := db.WithContext(ctx).
		Order("fecha DESC, id DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
