package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/estudioandino/cobranza/internal/clasificacion/domain"
	clientedomain "github.com/estudioandino/cobranza/internal/cliente/domain"
	"github.com/estudioandino/cobranza/internal/clock"
	cronogramadomain "github.com/estudioandino/cobranza/internal/cronograma/domain"
	pagodomain "github.com/estudioandino/cobranza/internal/pago/domain"
	serviciodomain "github.com/estudioandino/cobranza/internal/servicio/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	GenID         *snowflake.Node
	Clock         clock.Clock
	ClienteRepo   clientedomain.Repository
	ServicioRepo  serviciodomain.Repository
	PagoRepo      pagodomain.Repository
	Repo          domain.Repository
	CronogramaSvc cronogramadomain.Service
}

type service struct {
	db            *gorm.DB
	log           *zap.Logger
	genID         *snowflake.Node
	clock         clock.Clock
	clienteRepo   clientedomain.Repository
	servicioRepo  serviciodomain.Repository
	pagoRepo      pagodomain.Repository
	repo          domain.Repository
	cronogramaSvc cronogramadomain.Service
}

func New(p ServiceParam) domain.Service {
	return &service{
		db:            p.DB,
		log:           p.Log.Named("clasificacion"),
		genID:         p.GenID,
		clock:         p.Clock,
		clienteRepo:   p.ClienteRepo,
		servicioRepo:  p.ServicioRepo,
		pagoRepo:      p.PagoRepo,
		repo:          p.Repo,
		cronogramaSvc: p.CronogramaSvc,
	}
}

func (s *service) ComputeClassifications(ctx context.Context) ([]domain.ResultadoClasificacion, error) {
	clientes, err := s.clienteRepo.ListActivosConClasificacion(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("listar clientes activos: %w", err)
	}

	hoy := s.clock.Now()
	resultados := make([]domain.ResultadoClasificacion, 0, len(clientes))
	for _, cliente := range clientes {
		resultado, err := s.computeCliente(ctx, cliente, hoy)
		if err != nil {
			// One client failing must not abort the batch.
			s.log.Error("clasificacion de cliente fallida",
				zap.String("cliente_id", cliente.ID.String()),
				zap.Error(err),
			)
			continue
		}
		resultados = append(resultados, *resultado)
	}
	return resultados, nil
}

func (s *service) computeCliente(ctx context.Context, cliente clientedomain.ClienteConClasificacion, hoy time.Time) (*domain.ResultadoClasificacion, error) {
	mesesTranscurridos := mesesTranscurridos(cliente.FechaRegistro, hoy)

	montoFijo := 0.0
	if cliente.AplicaMontoFijo {
		montoFijo = cliente.MontoFijoMensual
	}
	esperadoFijo := montoFijo * float64(mesesTranscurridos)

	adicionalFacturado, err := s.servicioRepo.SumFacturadoPorCliente(ctx, s.db, cliente.ID)
	if err != nil {
		return nil, fmt.Errorf("sumar servicios facturados: %w", err)
	}
	totalPagado, err := s.pagoRepo.SumConfirmadoPorCliente(ctx, s.db, cliente.ID)
	if err != nil {
		return nil, fmt.Errorf("sumar pagos confirmados: %w", err)
	}

	montoEsperado := esperadoFijo + adicionalFacturado
	deuda := montoEsperado - totalPagado
	if deuda < 0 {
		deuda = 0
	}

	mesesMorosidad := 0
	if montoFijo > 0 {
		mesesMorosidad = int(math.Floor(deuda / montoFijo))
	}

	nueva := domain.CodigoPorMorosidad(mesesMorosidad)
	actual := domain.Codigo(cliente.CodigoClasificacion)

	entradas, err := s.cronogramaSvc.ResolveVencimientos(ctx, cliente.UltimoDigitoRUC, hoy.Year())
	if err != nil {
		return nil, fmt.Errorf("resolver cronograma: %w", err)
	}

	return &domain.ResultadoClasificacion{
		ClienteID:           cliente.ID,
		RazonSocial:         cliente.RazonSocial,
		ClasificacionActual: actual,
		ClasificacionNueva:  nueva,
		MesesMorosidad:      mesesMorosidad,
		MontoEsperado:       montoEsperado,
		TotalPagado:         totalPagado,
		Deuda:               deuda,
		RequiereCambio:      actual != nueva,
		ProximoVencimiento:  cronogramadomain.ProximoVencimiento(entradas, hoy),
	}, nil
}

// mesesTranscurridos counts calendar months since registration, inclusive of
// the current month, never less than 1.
func mesesTranscurridos(fechaRegistro, hoy time.Time) int {
	meses := (hoy.Year()-fechaRegistro.Year())*12 + int(hoy.Month()) - int(fechaRegistro.Month()) + 1
	if meses < 1 {
		return 1
	}
	return meses
}

func (s *service) ApplyChanges(ctx context.Context, cambios []domain.ResultadoClasificacion, usuarioID *int64) error {
	catalogo, err := s.repo.ListCatalogo(ctx, s.db)
	if err != nil {
		return fmt.Errorf("cargar catalogo de clasificaciones: %w", err)
	}
	porCodigo := make(map[domain.Codigo]int64, len(catalogo))
	for _, c := range catalogo {
		porCodigo[c.Codigo] = c.ID
	}

	ahora := s.clock.Now()
	var applyErr error
	for _, cambio := range cambios {
		if !cambio.RequiereCambio {
			continue
		}

		anteriorID, okAnterior := porCodigo[cambio.ClasificacionActual]
		nuevaID, okNueva := porCodigo[cambio.ClasificacionNueva]
		if !okAnterior || !okNueva {
			// Unknown tier code fails the single item, not the batch.
			s.log.Error("codigo de clasificacion desconocido",
				zap.String("cliente_id", cambio.ClienteID.String()),
				zap.String("actual", string(cambio.ClasificacionActual)),
				zap.String("nueva", string(cambio.ClasificacionNueva)),
			)
			applyErr = errors.Join(applyErr, fmt.Errorf("cliente %s: codigo de clasificacion desconocido", cambio.ClienteID))
			continue
		}

		historial := &domain.HistorialClasificacion{
			ID:                      s.genID.Generate(),
			ClienteID:               cambio.ClienteID,
			ClasificacionAnteriorID: anteriorID,
			ClasificacionNuevaID:    nuevaID,
			Motivo:                  domain.MotivoClasificacionAutomatica,
			MesesMorosidad:          cambio.MesesMorosidad,
			// Raw delta on purpose, unlike the clamped Deuda used for the tier.
			MontoDeuda: cambio.MontoEsperado - cambio.TotalPagado,
			UsuarioID:  usuarioID,
			CreatedAt:  ahora,
		}

		txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := s.clienteRepo.UpdateClasificacion(ctx, tx, cambio.ClienteID, nuevaID, ahora); err != nil {
				return err
			}
			return s.repo.InsertHistorial(ctx, tx, historial)
		})
		if txErr != nil {
			s.log.Error("aplicar cambio de clasificacion fallido",
				zap.String("cliente_id", cambio.ClienteID.String()),
				zap.Error(txErr),
			)
			applyErr = errors.Join(applyErr, fmt.Errorf("cliente %s: %w", cambio.ClienteID, txErr))
			continue
		}

		s.log.Info("clasificacion actualizada",
			zap.String("cliente_id", cambio.ClienteID.String()),
			zap.String("anterior", string(cambio.ClasificacionActual)),
			zap.String("nueva", string(cambio.ClasificacionNueva)),
			zap.Int("meses_morosidad", cambio.MesesMorosidad),
		)
	}
	return applyErr
}
