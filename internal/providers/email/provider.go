package email

import (
	"context"
	"errors"
)

type Provider interface {
	Send(ctx context.Context, to []string, subject string, htmlBody string) error
}

type NoOpProvider struct{}

func (p *NoOpProvider) Send(ctx context.Context, to []string, subject string, htmlBody string) error {
	return nil
}

// DisabledProvider is wired when no SMTP configuration is present; every send
// reports a descriptive failure so callers can fall through to other channels.
type DisabledProvider struct{}

func (p *DisabledProvider) Send(ctx context.Context, to []string, subject string, htmlBody string) error {
	return errors.New("email no configurado: faltan variables SMTP")
}
