package pdf

import (
	"context"
	"io"
)

// Provider renders receipt artifacts.
type Provider interface {
	GenerateRecibo(ctx context.Context, data ReciboData) (io.Reader, error)
}
