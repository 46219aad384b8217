package domain

import "context"

type Service interface {
	// ComputeClassifications evaluates the whole active portfolio. It is
	// read-only and fault-isolated: an error computing one client is logged
	// and skipped, never aborting the batch.
	ComputeClassifications(ctx context.Context) ([]ResultadoClasificacion, error)
	// ApplyChanges persists the entries with RequiereCambio set: updates the
	// client's tier and appends one historial row per change, each client in
	// its own transaction. Unknown tier codes fail the single item only.
	ApplyChanges(ctx context.Context, cambios []ResultadoClasificacion, usuarioID *int64) error
}
