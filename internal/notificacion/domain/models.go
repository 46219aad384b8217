package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type EstadoNotificacion string

const (
	EstadoNotificacionEnviado EstadoNotificacion = "ENVIADO"
	EstadoNotificacionError   EstadoNotificacion = "ERROR"
)

// Notificacion is the append-only history of outbound messages.
type Notificacion struct {
	ID           snowflake.ID       `gorm:"primaryKey" json:"id"`
	ClienteID    snowflake.ID       `gorm:"not null;index" json:"cliente_id"`
	Tipo         string             `gorm:"not null;default:''" json:"tipo"`
	Canal        string             `gorm:"not null;default:''" json:"canal"`
	Destinatario string             `gorm:"not null;default:''" json:"destinatario"`
	Asunto       string             `gorm:"not null;default:''" json:"asunto"`
	Mensaje      string             `gorm:"not null;default:''" json:"mensaje"`
	Estado       EstadoNotificacion `gorm:"not null;default:''" json:"estado"`
	MessageID    string             `gorm:"not null;default:''" json:"message_id,omitempty"`
	FechaEnvio   *time.Time         `json:"fecha_envio,omitempty"`
	CreatedAt    time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Notificacion) TableName() string { return "notificaciones" }
