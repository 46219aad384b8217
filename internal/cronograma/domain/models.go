package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// DigitoBuenosContribuyentes is the sentinel digit group for SUNAT's "Buenos
// Contribuyentes" category. It is reference data only: it is never derived
// from a client's RUC digit, it can only be looked up directly.
const DigitoBuenosContribuyentes = 99

// CronogramaSunat is one row of SUNAT's annual digit-based filing calendar:
// for fiscal year Anio, canonical digit group Digito and obligation month Mes,
// the filing day is Dia and the due month is MesVencimiento.
type CronogramaSunat struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	Anio           int          `gorm:"not null;uniqueIndex:ux_cronograma_anio_digito_mes" json:"anio"`
	Digito         int          `gorm:"not null;uniqueIndex:ux_cronograma_anio_digito_mes" json:"digito"`
	Mes            int          `gorm:"not null;uniqueIndex:ux_cronograma_anio_digito_mes" json:"mes"`
	Dia            int          `gorm:"not null" json:"dia"`
	MesVencimiento int          `gorm:"not null" json:"mes_vencimiento"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (CronogramaSunat) TableName() string { return "cronograma_sunat" }

// EntradaVencimiento is a schedule row augmented with its resolved due date.
type EntradaVencimiento struct {
	CronogramaSunat
	FechaVencimiento time.Time `json:"fecha_vencimiento"`
}

// DigitoCanonico normalizes a RUC last digit to the canonical lookup key used
// by the schedule table: {2,3}->2, {4,5}->4, {6,7}->6, {8,9}->8, 0 and 1 pass
// through unchanged.
func DigitoCanonico(ultimoDigito int) int {
	switch ultimoDigito {
	case 2, 3:
		return 2
	case 4, 5:
		return 4
	case 6, 7:
		return 6
	case 8, 9:
		return 8
	default:
		return ultimoDigito
	}
}

// ResolverFechaVencimiento computes the due date of a schedule row. A due
// month of 12 rolls over into January of the following fiscal year.
func ResolverFechaVencimiento(row CronogramaSunat) time.Time {
	anio := row.Anio
	mes := time.Month(row.MesVencimiento)
	if row.MesVencimiento == 12 {
		anio = row.Anio + 1
		mes = time.January
	}
	return time.Date(anio, mes, row.Dia, 0, 0, 0, 0, time.UTC)
}

// ProximoVencimiento picks the earliest due date on or after hoy (date-only
// comparison); if every entry is in the past it falls back to the latest one;
// with no entries it returns nil.
func ProximoVencimiento(entradas []EntradaVencimiento, hoy time.Time) *time.Time {
	if len(entradas) == 0 {
		return nil
	}

	truncar := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	dia := truncar(hoy)

	var proximo *time.Time
	var ultimo *time.Time
	for i := range entradas {
		fecha := truncar(entradas[i].FechaVencimiento)
		if ultimo == nil || fecha.After(*ultimo) {
			f := fecha
			ultimo = &f
		}
		if fecha.Before(dia) {
			continue
		}
		if proximo == nil || fecha.Before(*proximo) {
			f := fecha
			proximo = &f
		}
	}
	if proximo != nil {
		return proximo
	}
	return ultimo
}
