package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/estudioandino/cobranza/internal/pago/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Pago, error) {
	var pago domain.Pago
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&pago).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &pago, nil
}

func (r *repo) SumConfirmadoPorCliente(ctx context.Context, db *gorm.DB, clienteID snowflake.ID) (float64, error) {
	var total float64
	err := db.WithContext(ctx).
		Model(&domain.Pago{}).
		Select("COALESCE(SUM(monto), 0)").
		Where("cliente_id = ? AND estado = ?", clienteID, domain.EstadoPagoConfirmado).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
