package seed

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	clientedomain "github.com/estudioandino/cobranza/internal/cliente/domain"
	"github.com/estudioandino/cobranza/internal/clock"
	"github.com/estudioandino/cobranza/internal/config"
	cronogramadomain "github.com/estudioandino/cobranza/internal/cronograma/domain"
	"github.com/estudioandino/cobranza/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// digitosCronograma are the canonical digit groups SUNAT publishes, plus the
// Buenos Contribuyentes sentinel.
var digitosCronograma = []int{0, 1, 2, 4, 6, 8, cronogramadomain.DigitoBuenosContribuyentes}

var Module = fx.Module("seed",
	fx.Invoke(Run),
)

type Params struct {
	fx.In

	Log            *zap.Logger
	Config         config.Config
	DB             *gorm.DB
	GenID          *snowflake.Node
	Clock          clock.Clock
	CronogramaRepo cronogramadomain.Repository
}

// Run seeds a development cronograma for the current fiscal year plus a pair
// of demo clients. Every insert tolerates duplicates so restarts are safe.
func Run(p Params) error {
	if !p.Config.SeedDemo {
		return nil
	}
	log := p.Log.Named("seed")
	ctx := context.Background()
	anio := p.Clock.Now().Year()

	if err := seedCronograma(ctx, p, anio); err != nil {
		return fmt.Errorf("seed cronograma: %w", err)
	}
	if err := seedClientes(ctx, p); err != nil {
		return fmt.Errorf("seed clientes: %w", err)
	}

	log.Info("datos de demostracion cargados", zap.Int("anio", anio))
	return nil
}

func seedCronograma(ctx context.Context, p Params, anio int) error {
	var existentes int64
	err := p.DB.WithContext(ctx).
		Model(&cronogramadomain.CronogramaSunat{}).
		Where("anio = ?", anio).
		Count(&existentes).Error
	if err != nil {
		return err
	}
	if existentes > 0 {
		return nil
	}

	var rows []cronogramadomain.CronogramaSunat
	for _, digito := range digitosCronograma {
		for mes := 1; mes <= 12; mes++ {
			// Obligations of month M fall due in month M+1; December's roll
			// over into January of the next year via the resolver.
			mesVencimiento := mes + 1
			if mes == 12 {
				mesVencimiento = 12
			}

			rows = append(rows, cronogramadomain.CronogramaSunat{
				ID:             p.GenID.Generate(),
				Anio:           anio,
				Digito:         digito,
				Mes:            mes,
				Dia:            diaPorDigito(digito),
				MesVencimiento: mesVencimiento,
				CreatedAt:      p.Clock.Now(),
			})
		}
	}
	return p.CronogramaRepo.Insert(ctx, p.DB, rows)
}

// diaPorDigito staggers filing days across digit groups the way the published
// calendar does: lower digits file earlier in the month.
func diaPorDigito(digito int) int {
	if digito == cronogramadomain.DigitoBuenosContribuyentes {
		return 22
	}
	return 12 + digito
}

func seedClientes(ctx context.Context, p Params) error {
	registro := p.Clock.Now().AddDate(0, -6, 0)
	clientes := []clientedomain.Cliente{
		{
			ID:               p.GenID.Generate(),
			RUC:              "20512345670",
			UltimoDigitoRUC:  0,
			RazonSocial:      "Comercial Los Andes SAC",
			Email:            "contabilidad@losandes.pe",
			Telefono:         "51999111222",
			MontoFijoMensual: 350,
			AplicaMontoFijo:  true,
			ClasificacionID:  1,
			Estado:           clientedomain.EstadoClienteActivo,
			FechaRegistro:    registro,
		},
		{
			ID:               p.GenID.Generate(),
			RUC:              "20609876547",
			UltimoDigitoRUC:  7,
			RazonSocial:      "Transportes Titicaca EIRL",
			Email:            "gerencia@titicaca.pe",
			Telefono:         "51988333444",
			MontoFijoMensual: 500,
			AplicaMontoFijo:  true,
			ClasificacionID:  1,
			Estado:           clientedomain.EstadoClienteActivo,
			FechaRegistro:    registro,
		},
	}

	for i := range clientes {
		clientes[i].FechaActualizacion = p.Clock.Now()
		if err := p.DB.WithContext(ctx).Create(&clientes[i]).Error; err != nil {
			if db.IsDuplicateKeyErr(err) {
				continue
			}
			return err
		}
	}
	return nil
}
