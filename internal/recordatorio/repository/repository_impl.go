package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	clientedomain "github.com/estudioandino/cobranza/internal/cliente/domain"
	"github.com/estudioandino/cobranza/internal/recordatorio/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func soloFecha(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, recordatorio *domain.RecordatorioProgramado) error {
	recordatorio.FechaProgramada = soloFecha(recordatorio.FechaProgramada)
	return db.WithContext(ctx).Create(recordatorio).Error
}

func (r *repo) ExistsParaFecha(ctx context.Context, db *gorm.DB, clienteID snowflake.ID, fecha time.Time) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.RecordatorioProgramado{}).
		Where("cliente_id = ? AND fecha_programada = ?", clienteID, soloFecha(fecha)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) ListPendientesPorFecha(ctx context.Context, db *gorm.DB, fecha time.Time) ([]domain.RecordatorioConCliente, error) {
	var pendientes []domain.RecordatorioConCliente
	err := db.WithContext(ctx).
		Table("recordatorios_programados").
		Select("recordatorios_programados.*, clientes.razon_social, clientes.email, clientes.telefono").
		Joins("JOIN clientes ON clientes.id = recordatorios_programados.cliente_id").
		Where("recordatorios_programados.fecha_programada = ?", soloFecha(fecha)).
		Where("recordatorios_programados.estado = ?", domain.EstadoRecordatorioProgramado).
		Where("clientes.estado = ?", clientedomain.EstadoClienteActivo).
		Order("recordatorios_programados.id").
		Find(&pendientes).Error
	if err != nil {
		return nil, err
	}
	return pendientes, nil
}

func (r *repo) MarcarEnviado(ctx context.Context, db *gorm.DB, id snowflake.ID, ts time.Time) (bool, error) {
	res := db.WithContext(ctx).
		Model(&domain.RecordatorioProgramado{}).
		Where("id = ? AND estado = ?", id, domain.EstadoRecordatorioProgramado).
		Updates(map[string]any{
			"estado":      domain.EstadoRecordatorioEnviado,
			"fecha_envio": ts,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) MarcarError(ctx context.Context, db *gorm.DB, id snowflake.ID, ts time.Time) error {
	return db.WithContext(ctx).
		Model(&domain.RecordatorioProgramado{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"estado":      domain.EstadoRecordatorioError,
			"fecha_envio": ts,
		}).Error
}
