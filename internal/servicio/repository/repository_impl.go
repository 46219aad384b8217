package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/estudioandino/cobranza/internal/servicio/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, servicio *domain.ServicioAdicional) error {
	return db.WithContext(ctx).Create(servicio).Error
}

func (r *repo) Exists(ctx context.Context, db *gorm.DB, clienteID snowflake.ID, periodo, nombre string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.ServicioAdicional{}).
		Where("cliente_id = ? AND periodo = ? AND nombre_servicio = ?", clienteID, periodo, nombre).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) SumFacturadoPorCliente(ctx context.Context, db *gorm.DB, clienteID snowflake.ID) (float64, error) {
	var total float64
	err := db.WithContext(ctx).
		Model(&domain.ServicioAdicional{}).
		Select("COALESCE(SUM(monto), 0)").
		Where("cliente_id = ? AND estado = ? AND tipo_servicio = ?", clienteID, domain.EstadoServicioFacturado, domain.TipoServicioAdicional).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *repo) ListPorClientePeriodo(ctx context.Context, db *gorm.DB, clienteID snowflake.ID, periodo string) ([]domain.ServicioAdicional, error) {
	var servicios []domain.ServicioAdicional
	err := db.WithContext(ctx).
		Where("cliente_id = ? AND periodo = ?", clienteID, periodo).
		Order("fecha_servicio").
		Find(&servicios).Error
	if err != nil {
		return nil, err
	}
	return servicios, nil
}
