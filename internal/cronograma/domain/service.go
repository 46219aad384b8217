package domain

import (
	"context"
	"errors"
)

// ErrDigitoInvalido is returned for RUC last digits outside [0,9] that are not
// the Buenos Contribuyentes sentinel.
var ErrDigitoInvalido = errors.New("ultimo digito RUC fuera de rango")

type Service interface {
	// ResolveVencimientos returns every schedule row for the canonical digit
	// group of ultimoDigito in the given year, each with its resolved due
	// date. An empty slice means no schedule is configured for that year;
	// callers treat it as "no next due date", not as a failure.
	ResolveVencimientos(ctx context.Context, ultimoDigito, anio int) ([]EntradaVencimiento, error)
}
