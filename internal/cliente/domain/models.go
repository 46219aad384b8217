package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type EstadoCliente string

const (
	EstadoClienteActivo   EstadoCliente = "ACTIVO"
	EstadoClienteInactivo EstadoCliente = "INACTIVO"
)

// Cliente is a client of the firm. UltimoDigitoRUC drives the SUNAT filing
// schedule; ClasificacionID points at the risk tier catalog and is mutated
// only by the classification applier.
type Cliente struct {
	ID                 snowflake.ID  `gorm:"primaryKey" json:"id"`
	RUC                string        `gorm:"type:char(11);not null;uniqueIndex" json:"ruc"`
	UltimoDigitoRUC    int           `gorm:"not null" json:"ultimo_digito_ruc"`
	RazonSocial        string        `gorm:"not null" json:"razon_social"`
	Email              string        `gorm:"not null;default:''" json:"email,omitempty"`
	Telefono           string        `gorm:"not null;default:''" json:"telefono,omitempty"`
	MontoFijoMensual   float64       `gorm:"type:numeric(12,2);not null;default:0" json:"monto_fijo_mensual"`
	AplicaMontoFijo    bool          `gorm:"not null;default:true" json:"aplica_monto_fijo"`
	ClasificacionID    int64         `gorm:"not null;default:1" json:"clasificacion_id"`
	Estado             EstadoCliente `gorm:"not null;default:'ACTIVO'" json:"estado"`
	FechaRegistro      time.Time     `gorm:"not null" json:"fecha_registro"`
	FechaActualizacion time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"fecha_actualizacion"`
	CreatedAt          time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Cliente) TableName() string { return "clientes" }

type EstadoCompromiso string

const (
	EstadoCompromisoPendiente EstadoCompromiso = "PENDIENTE"
	EstadoCompromisoCumplido  EstadoCompromiso = "CUMPLIDO"
)

// CompromisoPago is a promise-to-pay agreed with a client. Inactive clients
// with pending compromisos still take part in the monthly cutoff.
type CompromisoPago struct {
	ID              snowflake.ID     `gorm:"primaryKey" json:"id"`
	ClienteID       snowflake.ID     `gorm:"not null;index" json:"cliente_id"`
	Monto           float64          `gorm:"type:numeric(12,2);not null" json:"monto"`
	FechaCompromiso time.Time        `gorm:"not null" json:"fecha_compromiso"`
	Estado          EstadoCompromiso `gorm:"not null;default:'PENDIENTE'" json:"estado"`
	CreatedAt       time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (CompromisoPago) TableName() string { return "compromisos_pago" }

// ClienteConClasificacion carries a client row joined with its current tier code.
type ClienteConClasificacion struct {
	Cliente
	CodigoClasificacion string `gorm:"column:codigo_clasificacion" json:"codigo_clasificacion"`
}
