package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/estudioandino/cobranza/internal/cliente/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Cliente, error) {
	var cliente domain.Cliente
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&cliente).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &cliente, nil
}

func (r *repo) ListActivosConClasificacion(ctx context.Context, db *gorm.DB) ([]domain.ClienteConClasificacion, error) {
	var clientes []domain.ClienteConClasificacion
	err := db.WithContext(ctx).
		Table("clientes").
		Select("clientes.*, c.codigo AS codigo_clasificacion").
		Joins("LEFT JOIN clasificaciones c ON c.id = clientes.clasificacion_id").
		Where("clientes.estado = ?", domain.EstadoClienteActivo).
		Order("clientes.id").
		Find(&clientes).Error
	if err != nil {
		return nil, err
	}
	return clientes, nil
}

func (r *repo) ListElegiblesCorte(ctx context.Context, db *gorm.DB) ([]domain.Cliente, error) {
	var clientes []domain.Cliente
	err := db.WithContext(ctx).
		Where("estado = ?", domain.EstadoClienteActivo).
		Or("estado = ? AND id IN (?)",
			domain.EstadoClienteInactivo,
			db.Model(&domain.CompromisoPago{}).
				Select("cliente_id").
				Where("estado = ?", domain.EstadoCompromisoPendiente),
		).
		Order("id").
		Find(&clientes).Error
	if err != nil {
		return nil, err
	}
	return clientes, nil
}

func (r *repo) UpdateClasificacion(ctx context.Context, db *gorm.DB, id snowflake.ID, clasificacionID int64, ts time.Time) error {
	return db.WithContext(ctx).
		Model(&domain.Cliente{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"clasificacion_id":    clasificacionID,
			"fecha_actualizacion": ts,
		}).Error
}
