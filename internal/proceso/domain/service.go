package domain

import "context"

type Service interface {
	// RunOnce executes one automation pass: cutoff detection, monthly service
	// generation, reminder scheduling, reminder dispatch and classification.
	// It never fails past its boundary; the returned Resultado mirrors the
	// persisted run log.
	RunOnce(ctx context.Context) *Resultado
	// RunForever runs RunOnce on the configured cadence until ctx is done.
	RunForever(ctx context.Context)
}
