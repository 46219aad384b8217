package repository

import (
	"context"

	"github.com/estudioandino/cobranza/internal/notificacion/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, notificacion *domain.Notificacion) error {
	return db.WithContext(ctx).Create(notificacion).Error
}
