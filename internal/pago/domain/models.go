package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type EstadoPago string

const (
	EstadoPagoPendiente  EstadoPago = "PENDIENTE"
	EstadoPagoConfirmado EstadoPago = "CONFIRMADO"
)

// Pago is read-only from the automation core's point of view: only confirmed
// amounts are aggregated. Creation and confirmation happen in back-office flows.
type Pago struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	ClienteID   snowflake.ID `gorm:"not null;index" json:"cliente_id"`
	Monto       float64      `gorm:"type:numeric(12,2);not null" json:"monto"`
	FechaPago   time.Time    `gorm:"not null" json:"fecha_pago"`
	Estado      EstadoPago   `gorm:"not null;default:'PENDIENTE'" json:"estado"`
	Concepto    string       `gorm:"not null;default:''" json:"concepto,omitempty"`
	MetodoPago  string       `gorm:"not null;default:''" json:"metodo_pago,omitempty"`
	Banco       string       `gorm:"not null;default:''" json:"banco,omitempty"`
	MesServicio string       `gorm:"type:char(7);not null;default:''" json:"mes_servicio,omitempty"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Pago) TableName() string { return "pagos" }
