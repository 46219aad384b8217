package whatsapp

import (
	"github.com/estudioandino/cobranza/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("providers.whatsapp",
	fx.Provide(NewFromConfig),
)

func NewFromConfig(cfg config.Config) Provider {
	waCfg := Config{
		BaseURL:  cfg.WhatsAppBaseURL,
		Instance: cfg.WhatsAppInstance,
		Token:    cfg.WhatsAppToken,
	}
	if !waCfg.Configured() {
		return &DisabledProvider{}
	}
	return NewGateway(waCfg)
}
