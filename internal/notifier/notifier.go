package notifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/estudioandino/cobranza/internal/config"
	"github.com/estudioandino/cobranza/internal/providers/email"
	"github.com/estudioandino/cobranza/internal/providers/whatsapp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Canal string

const (
	CanalEmail    Canal = "EMAIL"
	CanalWhatsApp Canal = "WHATSAPP"
)

type Destinatario struct {
	ClienteID snowflake.ID
	Nombre    string
	Email     string
	Telefono  string
}

type Mensaje struct {
	Asunto string
	Cuerpo string
}

// Resultado reports which channel, if any, accepted the message.
type Resultado struct {
	Enviado   bool
	Canal     Canal
	MessageID string
	Err       error
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Config   config.Config
	Email    email.Provider
	WhatsApp whatsapp.Provider
}

// Dispatcher tries an ordered list of channels (email first, then WhatsApp)
// until one accepts the message. Each channel attempt is bounded by a timeout;
// a timed-out channel counts as failed and the next one is tried.
type Dispatcher struct {
	log      *zap.Logger
	email    email.Provider
	whatsapp whatsapp.Provider
	timeout  time.Duration
}

func New(p Params) *Dispatcher {
	timeout := p.Config.DispatchTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{
		log:      p.Log.Named("notifier"),
		email:    p.Email,
		whatsapp: p.WhatsApp,
		timeout:  timeout,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, dest Destinatario, msg Mensaje) Resultado {
	var intentos error

	if dest.Email != "" {
		err := d.conTimeout(ctx, func(ctx context.Context) error {
			return d.email.Send(ctx, []string{dest.Email}, msg.Asunto, msg.Cuerpo)
		})
		if err == nil {
			return Resultado{Enviado: true, Canal: CanalEmail}
		}
		intentos = errors.Join(intentos, fmt.Errorf("email: %w", err))
		d.log.Warn("envio por email fallido, intentando whatsapp",
			zap.String("cliente_id", dest.ClienteID.String()),
			zap.Error(err),
		)
	} else {
		intentos = errors.Join(intentos, errors.New("email: cliente sin correo"))
	}

	if d.whatsapp.Configured() && dest.Telefono != "" {
		var messageID string
		err := d.conTimeout(ctx, func(ctx context.Context) error {
			var sendErr error
			messageID, sendErr = d.whatsapp.SendText(ctx, dest.Telefono, msg.Asunto+"\n\n"+msg.Cuerpo)
			return sendErr
		})
		if err == nil {
			return Resultado{Enviado: true, Canal: CanalWhatsApp, MessageID: messageID}
		}
		intentos = errors.Join(intentos, fmt.Errorf("whatsapp: %w", err))
	}

	return Resultado{Enviado: false, Err: intentos}
}

func (d *Dispatcher) conTimeout(parent context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- fn(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Module wires the notification dispatcher. It is constructed once at process
// start from config and injected wherever messages are sent.
var Module = fx.Module("notifier",
	fx.Provide(New),
)
