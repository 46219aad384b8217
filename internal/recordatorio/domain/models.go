package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type EstadoRecordatorio string

const (
	EstadoRecordatorioProgramado EstadoRecordatorio = "PROGRAMADO"
	EstadoRecordatorioEnviado    EstadoRecordatorio = "ENVIADO"
	EstadoRecordatorioError      EstadoRecordatorio = "ERROR"
)

type TipoRecordatorio string

const TipoRecordatorioPagoPendiente TipoRecordatorio = "PAGO_PENDIENTE"

// RecordatorioProgramado is a reminder scheduled by the daily automation the
// day a monthly service is generated, dated the following day. The unique
// index on (cliente, fecha_programada) is the idempotency guard.
type RecordatorioProgramado struct {
	ID              snowflake.ID       `gorm:"primaryKey" json:"id"`
	ClienteID       snowflake.ID       `gorm:"not null;uniqueIndex:ux_recordatorios_cliente_fecha" json:"cliente_id"`
	FechaProgramada time.Time          `gorm:"type:date;not null;uniqueIndex:ux_recordatorios_cliente_fecha" json:"fecha_programada"`
	Tipo            TipoRecordatorio   `gorm:"not null;default:'PAGO_PENDIENTE'" json:"tipo"`
	Mensaje         string             `gorm:"not null;default:''" json:"mensaje"`
	Estado          EstadoRecordatorio `gorm:"not null;default:'PROGRAMADO'" json:"estado"`
	FechaEnvio      *time.Time         `json:"fecha_envio,omitempty"`
	CreatedAt       time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (RecordatorioProgramado) TableName() string { return "recordatorios_programados" }

// RecordatorioConCliente carries a due reminder joined with the contact data
// needed to dispatch it.
type RecordatorioConCliente struct {
	RecordatorioProgramado
	RazonSocial string `gorm:"column:razon_social" json:"razon_social"`
	Email       string `gorm:"column:email" json:"email"`
	Telefono    string `gorm:"column:telefono" json:"telefono"`
}
