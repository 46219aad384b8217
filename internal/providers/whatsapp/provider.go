package whatsapp

import (
	"context"
	"errors"
)

// Provider sends a WhatsApp text message and returns the gateway message id.
type Provider interface {
	SendText(ctx context.Context, number string, message string) (string, error)
	Configured() bool
}

type NoOpProvider struct{}

func (p *NoOpProvider) SendText(ctx context.Context, number string, message string) (string, error) {
	return "", nil
}

func (p *NoOpProvider) Configured() bool { return true }

// DisabledProvider is wired when no gateway configuration is present.
type DisabledProvider struct{}

func (p *DisabledProvider) SendText(ctx context.Context, number string, message string) (string, error) {
	return "", errors.New("whatsapp no configurado: falta configuracion del gateway")
}

func (p *DisabledProvider) Configured() bool { return false }
