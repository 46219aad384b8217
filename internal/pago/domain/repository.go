package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Pago, error)
	SumConfirmadoPorCliente(ctx context.Context, db *gorm.DB, clienteID snowflake.ID) (float64, error)
}
