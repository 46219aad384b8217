package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, servicio *ServicioAdicional) error
	Exists(ctx context.Context, db *gorm.DB, clienteID snowflake.ID, periodo, nombre string) (bool, error)
	// SumFacturadoPorCliente aggregates billed ADICIONAL line items; MENSUAL
	// rows are excluded because the fixed fee already accounts for them.
	SumFacturadoPorCliente(ctx context.Context, db *gorm.DB, clienteID snowflake.ID) (float64, error)
	ListPorClientePeriodo(ctx context.Context, db *gorm.DB, clienteID snowflake.ID, periodo string) ([]ServicioAdicional, error)
}
