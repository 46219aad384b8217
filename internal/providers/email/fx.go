package email

import (
	"github.com/estudioandino/cobranza/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("providers.email",
	fx.Provide(NewFromConfig),
)

func NewFromConfig(cfg config.Config) Provider {
	emailCfg := Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}
	if !emailCfg.Configured() {
		return &DisabledProvider{}
	}
	return NewSMTP(emailCfg)
}
