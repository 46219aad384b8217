package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	clasificaciondomain "github.com/estudioandino/cobranza/internal/clasificacion/domain"
	clientedomain "github.com/estudioandino/cobranza/internal/cliente/domain"
	"github.com/estudioandino/cobranza/internal/clock"
	"github.com/estudioandino/cobranza/internal/config"
	cronogramadomain "github.com/estudioandino/cobranza/internal/cronograma/domain"
	notificaciondomain "github.com/estudioandino/cobranza/internal/notificacion/domain"
	"github.com/estudioandino/cobranza/internal/notifier"
	"github.com/estudioandino/cobranza/internal/observability/metrics"
	"github.com/estudioandino/cobranza/internal/proceso/domain"
	"github.com/estudioandino/cobranza/internal/providers/email"
	recordatoriodomain "github.com/estudioandino/cobranza/internal/recordatorio/domain"
	serviciodomain "github.com/estudioandino/cobranza/internal/servicio/domain"
	"github.com/estudioandino/cobranza/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AsuntoRecordatorioPago is the subject line of every payment reminder.
const AsuntoRecordatorioPago = "Recordatorio de pago pendiente"

// MensajeRecordatorioPago is the fixed reminder body scheduled the day a
// monthly service is generated.
const MensajeRecordatorioPago = "Estimado cliente, le recordamos que tiene pagos pendientes por sus servicios contables. Por favor regularice su situacion a la brevedad."

var nombresMes = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

type ServiceParam struct {
	fx.In

	DB               *gorm.DB
	Log              *zap.Logger
	Config           config.Config
	GenID            *snowflake.Node
	Clock            clock.Clock
	Metrics          *metrics.Metrics
	ClienteRepo      clientedomain.Repository
	ServicioRepo     serviciodomain.Repository
	RecordatorioRepo recordatoriodomain.Repository
	NotificacionRepo notificaciondomain.Repository
	Repo             domain.Repository
	CronogramaSvc    cronogramadomain.Service
	ClasificacionSvc clasificaciondomain.Service
	Dispatcher       *notifier.Dispatcher
	Email            email.Provider
}

type service struct {
	db               *gorm.DB
	log              *zap.Logger
	cfg              config.Config
	genID            *snowflake.Node
	clock            clock.Clock
	metrics          *metrics.Metrics
	clienteRepo      clientedomain.Repository
	servicioRepo     serviciodomain.Repository
	recordatorioRepo recordatoriodomain.Repository
	notificacionRepo notificaciondomain.Repository
	repo             domain.Repository
	cronogramaSvc    cronogramadomain.Service
	clasificacionSvc clasificaciondomain.Service
	dispatcher       *notifier.Dispatcher
	email            email.Provider
}

func New(p ServiceParam) domain.Service {
	return &service{
		db:               p.DB,
		log:              p.Log.Named("proceso"),
		cfg:              p.Config,
		genID:            p.GenID,
		clock:            p.Clock,
		metrics:          p.Metrics,
		clienteRepo:      p.ClienteRepo,
		servicioRepo:     p.ServicioRepo,
		recordatorioRepo: p.RecordatorioRepo,
		notificacionRepo: p.NotificacionRepo,
		repo:             p.Repo,
		cronogramaSvc:    p.CronogramaSvc,
		clasificacionSvc: p.ClasificacionSvc,
		dispatcher:       p.Dispatcher,
		email:            p.Email,
	}
}

func (s *service) RunOnce(ctx context.Context) *domain.Resultado {
	hoy := soloFecha(s.clock.Now())
	res := &domain.Resultado{Fecha: hoy}

	s.log.Info("proceso automatico iniciado", zap.Time("fecha", hoy))
	s.ejecutar(ctx, hoy, res)

	res.Resumen = construirResumen(res)
	res.Estado = domain.EstadoProcesoExitoso
	if len(res.Errores) > 0 {
		res.Estado = domain.EstadoProcesoConErrores
	}

	s.metrics.ProcesoRuns.WithLabelValues(string(res.Estado)).Inc()
	s.metrics.ErroresProceso.Add(float64(len(res.Errores)))

	s.persistirLog(ctx, res)

	s.log.Info("proceso automatico finalizado",
		zap.String("estado", string(res.Estado)),
		zap.String("resumen", res.Resumen),
		zap.Int("clientes_procesados", res.ClientesProcesados),
		zap.Int("servicios_generados", res.ServiciosGenerados),
		zap.Int("recordatorios_enviados", res.RecordatoriosEnviados),
		zap.Int("errores", len(res.Errores)),
	)
	return res
}

// ejecutar runs every step in order; each step records its own failures in the
// result and never aborts the ones after it. A panic anywhere is captured as a
// generic error so the run still produces a log row.
func (s *service) ejecutar(ctx context.Context, hoy time.Time, res *domain.Resultado) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("proceso automatico interrumpido por panico", zap.Any("panic", r))
			res.Errores = append(res.Errores, fmt.Sprintf("error inesperado: %v", r))
		}
	}()

	corte := s.clientesEnCorte(ctx, hoy, res)
	res.ClientesProcesados = len(corte)

	s.generarServiciosMensuales(ctx, hoy, corte, res)
	if res.ServiciosGenerados > 0 {
		s.programarRecordatorios(ctx, hoy, corte, res)
	}
	s.enviarRecordatorios(ctx, hoy, res)
	s.clasificarCartera(ctx, res)
}

// clientesEnCorte returns the eligible clients whose SUNAT due date falls on
// hoy. In January the previous fiscal year is also resolved, since December
// due months roll over into January.
func (s *service) clientesEnCorte(ctx context.Context, hoy time.Time, res *domain.Resultado) []clientedomain.Cliente {
	clientes, err := s.clienteRepo.ListElegiblesCorte(ctx, s.db)
	if err != nil {
		res.Errores = append(res.Errores, fmt.Sprintf("listar clientes elegibles: %v", err))
		return nil
	}

	anios := []int{hoy.Year()}
	if hoy.Month() == time.January {
		anios = append(anios, hoy.Year()-1)
	}

	var corte []clientedomain.Cliente
	for _, cliente := range clientes {
		vence, err := s.venceHoy(ctx, cliente.UltimoDigitoRUC, anios, hoy)
		if err != nil {
			res.Errores = append(res.Errores, fmt.Sprintf("cronograma de cliente %s: %v", cliente.ID, err))
			continue
		}
		if vence {
			corte = append(corte, cliente)
		}
	}
	return corte
}

func (s *service) venceHoy(ctx context.Context, ultimoDigito int, anios []int, hoy time.Time) (bool, error) {
	for _, anio := range anios {
		entradas, err := s.cronogramaSvc.ResolveVencimientos(ctx, ultimoDigito, anio)
		if err != nil {
			return false, err
		}
		for _, entrada := range entradas {
			if soloFecha(entrada.FechaVencimiento).Equal(hoy) {
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *service) generarServiciosMensuales(ctx context.Context, hoy time.Time, corte []clientedomain.Cliente, res *domain.Resultado) {
	periodo := hoy.Format("2006-01")

	for _, cliente := range corte {
		if !cliente.AplicaMontoFijo || cliente.MontoFijoMensual <= 0 {
			continue
		}

		existe, err := s.servicioRepo.Exists(ctx, s.db, cliente.ID, periodo, serviciodomain.NombreServicioMensual)
		if err != nil {
			res.Errores = append(res.Errores, fmt.Sprintf("verificar servicio de cliente %s: %v", cliente.ID, err))
			continue
		}
		if existe {
			continue
		}

		servicio := &serviciodomain.ServicioAdicional{
			ID:             s.genID.Generate(),
			ClienteID:      cliente.ID,
			NombreServicio: serviciodomain.NombreServicioMensual,
			Descripcion:    fmt.Sprintf("Honorarios contables de %s %d", nombresMes[hoy.Month()-1], hoy.Year()),
			Monto:          cliente.MontoFijoMensual,
			FechaServicio:  hoy,
			Estado:         serviciodomain.EstadoServicioFacturado,
			TipoServicio:   serviciodomain.TipoServicioMensual,
			Periodo:        periodo,
			CreatedAt:      s.clock.Now(),
		}
		if err := s.servicioRepo.Insert(ctx, s.db, servicio); err != nil {
			if db.IsDuplicateKeyErr(err) {
				// A concurrent run already generated it.
				continue
			}
			res.Errores = append(res.Errores, fmt.Sprintf("generar servicio de cliente %s: %v", cliente.ID, err))
			continue
		}

		res.ServiciosGenerados++
		s.metrics.ServiciosGenerados.Inc()
		s.avisarServicioGenerado(ctx, cliente, servicio)
	}
}

// avisarServicioGenerado is best-effort: a failed email never rolls back the
// service row nor marks the run as failed.
func (s *service) avisarServicioGenerado(ctx context.Context, cliente clientedomain.Cliente, servicio *serviciodomain.ServicioAdicional) {
	if cliente.Email == "" {
		return
	}

	subject := "Servicio contable generado - " + servicio.Periodo
	body := fmt.Sprintf(
		"<p>Estimado cliente %s,</p><p>Se genero su %s por S/ %.2f (%s). Le recordamos mantener sus pagos al dia.</p><p>%s</p>",
		cliente.RazonSocial,
		strings.ToLower(servicio.NombreServicio),
		servicio.Monto,
		servicio.Descripcion,
		s.cfg.EmpresaNombre,
	)

	timeout := s.cfg.DispatchTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	sendCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := s.email.Send(sendCtx, []string{cliente.Email}, subject, body); err != nil {
		s.log.Warn("aviso de servicio generado no enviado",
			zap.String("cliente_id", cliente.ID.String()),
			zap.Error(err),
		)
	}
}

func (s *service) programarRecordatorios(ctx context.Context, hoy time.Time, corte []clientedomain.Cliente, res *domain.Resultado) {
	manana := hoy.AddDate(0, 0, 1)

	for _, cliente := range corte {
		existe, err := s.recordatorioRepo.ExistsParaFecha(ctx, s.db, cliente.ID, manana)
		if err != nil {
			res.Errores = append(res.Errores, fmt.Sprintf("verificar recordatorio de cliente %s: %v", cliente.ID, err))
			continue
		}
		if existe {
			continue
		}

		recordatorio := &recordatoriodomain.RecordatorioProgramado{
			ID:              s.genID.Generate(),
			ClienteID:       cliente.ID,
			FechaProgramada: manana,
			Tipo:            recordatoriodomain.TipoRecordatorioPagoPendiente,
			Mensaje:         MensajeRecordatorioPago,
			Estado:          recordatoriodomain.EstadoRecordatorioProgramado,
			CreatedAt:       s.clock.Now(),
		}
		if err := s.recordatorioRepo.Insert(ctx, s.db, recordatorio); err != nil {
			if db.IsDuplicateKeyErr(err) {
				continue
			}
			res.Errores = append(res.Errores, fmt.Sprintf("programar recordatorio de cliente %s: %v", cliente.ID, err))
		}
	}
}

func (s *service) enviarRecordatorios(ctx context.Context, hoy time.Time, res *domain.Resultado) {
	pendientes, err := s.recordatorioRepo.ListPendientesPorFecha(ctx, s.db, hoy)
	if err != nil {
		res.Errores = append(res.Errores, fmt.Sprintf("listar recordatorios pendientes: %v", err))
		return
	}

	for _, recordatorio := range pendientes {
		dest := notifier.Destinatario{
			ClienteID: recordatorio.ClienteID,
			Nombre:    recordatorio.RazonSocial,
			Email:     recordatorio.Email,
			Telefono:  recordatorio.Telefono,
		}
		salida := s.dispatcher.Dispatch(ctx, dest, notifier.Mensaje{
			Asunto: AsuntoRecordatorioPago,
			Cuerpo: recordatorio.Mensaje,
		})
		ahora := s.clock.Now()

		if !salida.Enviado {
			if err := s.recordatorioRepo.MarcarError(ctx, s.db, recordatorio.ID, ahora); err != nil {
				s.log.Error("marcar recordatorio en error fallido",
					zap.String("recordatorio_id", recordatorio.ID.String()),
					zap.Error(err),
				)
			}
			s.metrics.RecordatoriosFallidos.Inc()
			res.Errores = append(res.Errores, fmt.Sprintf("recordatorio de cliente %s: %v", recordatorio.ClienteID, salida.Err))
			s.registrarNotificacion(ctx, recordatorio, salida, ahora)
			continue
		}

		marcado, err := s.recordatorioRepo.MarcarEnviado(ctx, s.db, recordatorio.ID, ahora)
		if err != nil {
			res.Errores = append(res.Errores, fmt.Sprintf("marcar recordatorio enviado de cliente %s: %v", recordatorio.ClienteID, err))
			continue
		}
		if !marcado {
			// A concurrent run already transitioned it.
			continue
		}

		res.RecordatoriosEnviados++
		s.metrics.RecordatoriosEnviados.Inc()
		s.registrarNotificacion(ctx, recordatorio, salida, ahora)
	}
}

// registrarNotificacion appends the delivery attempt to the notification
// history; failing to record it never fails the run.
func (s *service) registrarNotificacion(ctx context.Context, recordatorio recordatoriodomain.RecordatorioConCliente, salida notifier.Resultado, ahora time.Time) {
	notificacion := &notificaciondomain.Notificacion{
		ID:        s.genID.Generate(),
		ClienteID: recordatorio.ClienteID,
		Tipo:      string(recordatorio.Tipo),
		Asunto:    AsuntoRecordatorioPago,
		Mensaje:   recordatorio.Mensaje,
		CreatedAt: ahora,
	}
	if salida.Enviado {
		notificacion.Estado = notificaciondomain.EstadoNotificacionEnviado
		notificacion.Canal = string(salida.Canal)
		notificacion.MessageID = salida.MessageID
		notificacion.FechaEnvio = &ahora
		switch salida.Canal {
		case notifier.CanalEmail:
			notificacion.Destinatario = recordatorio.Email
		case notifier.CanalWhatsApp:
			notificacion.Destinatario = recordatorio.Telefono
		}
	} else {
		notificacion.Estado = notificaciondomain.EstadoNotificacionError
		notificacion.Destinatario = recordatorio.Email
		if salida.Err != nil {
			notificacion.Mensaje = salida.Err.Error()
		}
	}

	if err := s.notificacionRepo.Insert(ctx, s.db, notificacion); err != nil {
		s.log.Error("registrar notificacion fallido",
			zap.String("cliente_id", recordatorio.ClienteID.String()),
			zap.Error(err),
		)
	}
}

func (s *service) clasificarCartera(ctx context.Context, res *domain.Resultado) {
	resultados, err := s.clasificacionSvc.ComputeClassifications(ctx)
	if err != nil {
		res.Errores = append(res.Errores, fmt.Sprintf("clasificacion: %v", err))
		return
	}

	var cambios []clasificaciondomain.ResultadoClasificacion
	for _, resultado := range resultados {
		if resultado.RequiereCambio {
			cambios = append(cambios, resultado)
		}
	}
	if len(cambios) == 0 {
		return
	}

	if err := s.clasificacionSvc.ApplyChanges(ctx, cambios, nil); err != nil {
		res.Errores = append(res.Errores, fmt.Sprintf("aplicar clasificaciones: %v", err))
	}
}

func (s *service) persistirLog(ctx context.Context, res *domain.Resultado) {
	errores := res.Errores
	if errores == nil {
		errores = []string{}
	}
	serialized, err := json.Marshal(errores)
	if err != nil {
		serialized = []byte("[]")
	}

	entry := &domain.LogProcesoAutomatico{
		ID:                    s.genID.Generate(),
		Fecha:                 res.Fecha,
		ClientesProcesados:    res.ClientesProcesados,
		ServiciosGenerados:    res.ServiciosGenerados,
		RecordatoriosEnviados: res.RecordatoriosEnviados,
		Errores:               serialized,
		Resumen:               res.Resumen,
		Estado:                res.Estado,
		CreatedAt:             s.clock.Now(),
	}
	if err := s.repo.InsertLog(ctx, s.db, entry); err != nil {
		s.log.Error("persistir log de proceso fallido", zap.Error(err))
	}
}

func (s *service) RunForever(ctx context.Context) {
	interval := s.cfg.ProcesoRunInterval
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		s.RunOnce(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func construirResumen(res *domain.Resultado) string {
	var partes []string
	if res.ServiciosGenerados > 0 {
		partes = append(partes, fmt.Sprintf("%d servicios generados", res.ServiciosGenerados))
	}
	if res.RecordatoriosEnviados > 0 {
		partes = append(partes, fmt.Sprintf("%d recordatorios enviados", res.RecordatoriosEnviados))
	}
	if len(res.Errores) > 0 {
		partes = append(partes, fmt.Sprintf("%d errores", len(res.Errores)))
	}
	if len(partes) == 0 {
		return "sin actividad programada para hoy"
	}
	return strings.Join(partes, ", ")
}

func soloFecha(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
