package service

import (
	"context"

	"github.com/estudioandino/cobranza/internal/cronograma/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p ServiceParam) domain.Service {
	return &service{
		db:   p.DB,
		log:  p.Log.Named("cronograma"),
		repo: p.Repo,
	}
}

func (s *service) ResolveVencimientos(ctx context.Context, ultimoDigito, anio int) ([]domain.EntradaVencimiento, error) {
	digito := ultimoDigito
	if digito != domain.DigitoBuenosContribuyentes {
		if digito < 0 || digito > 9 {
			return nil, domain.ErrDigitoInvalido
		}
		digito = domain.DigitoCanonico(digito)
	}

	rows, err := s.repo.ListPorAnioDigito(ctx, s.db, anio, digito)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		s.log.Debug("sin cronograma configurado",
			zap.Int("anio", anio),
			zap.Int("digito", digito),
		)
		return nil, nil
	}

	entradas := make([]domain.EntradaVencimiento, 0, len(rows))
	for _, row := range rows {
		entradas = append(entradas, domain.EntradaVencimiento{
			CronogramaSunat:  row,
			FechaVencimiento: domain.ResolverFechaVencimiento(row),
		})
	}
	return entradas, nil
}
