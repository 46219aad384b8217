package providers

import (
	"github.com/estudioandino/cobranza/internal/providers/email"
	"github.com/estudioandino/cobranza/internal/providers/pdf"
	"github.com/estudioandino/cobranza/internal/providers/whatsapp"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	email.Module,
	whatsapp.Module,
	pdf.Module,
)
