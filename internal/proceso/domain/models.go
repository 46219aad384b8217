package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type EstadoProceso string

const (
	EstadoProcesoExitoso    EstadoProceso = "EXITOSO"
	EstadoProcesoConErrores EstadoProceso = "CON_ERRORES"
)

// LogProcesoAutomatico is the append-only record of one automation run.
// Errores carries the serialized error list; an empty run stores '[]'.
type LogProcesoAutomatico struct {
	ID                    snowflake.ID   `gorm:"primaryKey" json:"id"`
	Fecha                 time.Time      `gorm:"type:date;not null" json:"fecha"`
	ClientesProcesados    int            `gorm:"not null;default:0" json:"clientes_procesados"`
	ServiciosGenerados    int            `gorm:"not null;default:0" json:"servicios_generados"`
	RecordatoriosEnviados int            `gorm:"not null;default:0" json:"recordatorios_enviados"`
	Errores               datatypes.JSON `gorm:"not null;default:'[]'" json:"errores"`
	Resumen               string         `gorm:"not null;default:''" json:"resumen"`
	Estado                EstadoProceso  `gorm:"not null;default:'EXITOSO'" json:"estado"`
	CreatedAt             time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (LogProcesoAutomatico) TableName() string { return "log_proceso_automatico" }

// Resultado is the in-memory outcome of one run; RunOnce always returns one.
type Resultado struct {
	Fecha                 time.Time     `json:"fecha"`
	ClientesProcesados    int           `json:"clientes_procesados"`
	ServiciosGenerados    int           `json:"servicios_generados"`
	RecordatoriosEnviados int           `json:"recordatorios_enviados"`
	Errores               []string      `json:"errores"`
	Resumen               string        `json:"resumen"`
	Estado                EstadoProceso `json:"estado"`
}
