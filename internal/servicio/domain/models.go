package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type EstadoServicio string

const (
	EstadoServicioFacturado EstadoServicio = "FACTURADO"
	EstadoServicioPagado    EstadoServicio = "PAGADO"
)

type TipoServicio string

const (
	TipoServicioMensual   TipoServicio = "MENSUAL"
	TipoServicioAdicional TipoServicio = "ADICIONAL"
)

// NombreServicioMensual is the fixed name of the auto-generated monthly fee
// line; together with (cliente, periodo) it forms the idempotency key.
const NombreServicioMensual = "Servicio contable mensual"

// ServicioAdicional is a billable line item. Rows of tipo MENSUAL are created
// by the daily automation, ADICIONAL rows by ad-hoc flows. Periodo has the
// form YYYY-MM.
type ServicioAdicional struct {
	ID             snowflake.ID   `gorm:"primaryKey" json:"id"`
	ClienteID      snowflake.ID   `gorm:"not null;uniqueIndex:ux_servicios_cliente_periodo_nombre" json:"cliente_id"`
	NombreServicio string         `gorm:"not null;uniqueIndex:ux_servicios_cliente_periodo_nombre" json:"nombre_servicio"`
	Descripcion    string         `gorm:"not null;default:''" json:"descripcion,omitempty"`
	Monto          float64        `gorm:"type:numeric(12,2);not null" json:"monto"`
	FechaServicio  time.Time      `gorm:"not null" json:"fecha_servicio"`
	Estado         EstadoServicio `gorm:"not null;default:'FACTURADO'" json:"estado"`
	TipoServicio   TipoServicio   `gorm:"not null;default:'ADICIONAL'" json:"tipo_servicio"`
	Periodo        string         `gorm:"type:char(7);not null;uniqueIndex:ux_servicios_cliente_periodo_nombre" json:"periodo"`
	CreatedAt      time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (ServicioAdicional) TableName() string { return "servicios_adicionales" }
