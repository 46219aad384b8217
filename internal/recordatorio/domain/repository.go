package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, recordatorio *RecordatorioProgramado) error
	ExistsParaFecha(ctx context.Context, db *gorm.DB, clienteID snowflake.ID, fecha time.Time) (bool, error)
	// ListPendientesPorFecha returns PROGRAMADO reminders for the given date
	// joined to active clients.
	ListPendientesPorFecha(ctx context.Context, db *gorm.DB, fecha time.Time) ([]RecordatorioConCliente, error)
	// MarcarEnviado transitions PROGRAMADO -> ENVIADO; returns false when the
	// row was already transitioned by a concurrent run.
	MarcarEnviado(ctx context.Context, db *gorm.DB, id snowflake.ID, ts time.Time) (bool, error)
	MarcarError(ctx context.Context, db *gorm.DB, id snowflake.ID, ts time.Time) error
}
