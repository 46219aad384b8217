package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Codigo is the risk tier code: A = current, B = 1-2 months in arrears,
// C = 3 or more months in arrears.
type Codigo string

const (
	CodigoA Codigo = "A"
	CodigoB Codigo = "B"
	CodigoC Codigo = "C"
)

// CodigoPorMorosidad maps arrears months to a tier. Total and boundary-exact:
// 0 -> A, 1-2 -> B, >=3 -> C.
func CodigoPorMorosidad(mesesMorosidad int) Codigo {
	switch {
	case mesesMorosidad <= 0:
		return CodigoA
	case mesesMorosidad <= 2:
		return CodigoB
	default:
		return CodigoC
	}
}

// Clasificacion is a row of the tier catalog seeded by migration.
type Clasificacion struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Codigo      Codigo    `gorm:"type:char(1);not null;uniqueIndex" json:"codigo"`
	Nombre      string    `gorm:"not null" json:"nombre"`
	Descripcion string    `gorm:"not null;default:''" json:"descripcion,omitempty"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Clasificacion) TableName() string { return "clasificaciones" }

// ResultadoClasificacion is the per-client output of the calculator.
type ResultadoClasificacion struct {
	ClienteID           snowflake.ID `json:"cliente_id"`
	RazonSocial         string       `json:"razon_social"`
	ClasificacionActual Codigo       `json:"clasificacion_actual"`
	ClasificacionNueva  Codigo       `json:"clasificacion_nueva"`
	MesesMorosidad      int          `json:"meses_morosidad"`
	MontoEsperado       float64      `json:"monto_esperado"`
	TotalPagado         float64      `json:"total_pagado"`
	Deuda               float64      `json:"deuda"`
	RequiereCambio      bool         `json:"requiere_cambio"`
	ProximoVencimiento  *time.Time   `json:"proximo_vencimiento,omitempty"`
}

// HistorialClasificacion is the append-only audit trail of tier changes,
// written exclusively by the applier. MontoDeuda keeps the raw
// esperado-pagado delta without clamping, so a credit balance shows negative.
type HistorialClasificacion struct {
	ID                      snowflake.ID `gorm:"primaryKey" json:"id"`
	ClienteID               snowflake.ID `gorm:"not null;index" json:"cliente_id"`
	ClasificacionAnteriorID int64        `gorm:"not null" json:"clasificacion_anterior_id"`
	ClasificacionNuevaID    int64        `gorm:"not null" json:"clasificacion_nueva_id"`
	Motivo                  string       `gorm:"not null;default:''" json:"motivo"`
	MesesMorosidad          int          `gorm:"not null;default:0" json:"meses_morosidad"`
	MontoDeuda              float64      `gorm:"type:numeric(12,2);not null;default:0" json:"monto_deuda"`
	UsuarioID               *int64       `json:"usuario_id,omitempty"`
	CreatedAt               time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (HistorialClasificacion) TableName() string { return "historial_clasificacion" }

// MotivoClasificacionAutomatica is the fixed audit reason recorded by the applier.
const MotivoClasificacionAutomatica = "clasificacion automatica segun cronograma mensual SUNAT"
