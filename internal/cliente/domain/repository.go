package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Cliente, error)
	// ListActivosConClasificacion returns every active client joined with its
	// current tier code; input for the classification calculator.
	ListActivosConClasificacion(ctx context.Context, db *gorm.DB) ([]ClienteConClasificacion, error)
	// ListElegiblesCorte returns active clients plus inactive clients that
	// still have pending payment compromisos.
	ListElegiblesCorte(ctx context.Context, db *gorm.DB) ([]Cliente, error)
	UpdateClasificacion(ctx context.Context, db *gorm.DB, id snowflake.ID, clasificacionID int64, ts time.Time) error
}
