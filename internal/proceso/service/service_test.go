package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	clasificaciondomain "github.com/estudioandino/cobranza/internal/clasificacion/domain"
	clasificacionrepo "github.com/estudioandino/cobranza/internal/clasificacion/repository"
	clasificacionservice "github.com/estudioandino/cobranza/internal/clasificacion/service"
	clientedomain "github.com/estudioandino/cobranza/internal/cliente/domain"
	clienterepo "github.com/estudioandino/cobranza/internal/cliente/repository"
	"github.com/estudioandino/cobranza/internal/clock"
	"github.com/estudioandino/cobranza/internal/config"
	cronogramadomain "github.com/estudioandino/cobranza/internal/cronograma/domain"
	cronogramarepo "github.com/estudioandino/cobranza/internal/cronograma/repository"
	cronogramaservice "github.com/estudioandino/cobranza/internal/cronograma/service"
	notificaciondomain "github.com/estudioandino/cobranza/internal/notificacion/domain"
	notificacionrepo "github.com/estudioandino/cobranza/internal/notificacion/repository"
	"github.com/estudioandino/cobranza/internal/notifier"
	"github.com/estudioandino/cobranza/internal/observability/metrics"
	pagodomain "github.com/estudioandino/cobranza/internal/pago/domain"
	pagorepo "github.com/estudioandino/cobranza/internal/pago/repository"
	"github.com/estudioandino/cobranza/internal/proceso/domain"
	procesorepo "github.com/estudioandino/cobranza/internal/proceso/repository"
	recordatoriodomain "github.com/estudioandino/cobranza/internal/recordatorio/domain"
	recordatoriorepo "github.com/estudioandino/cobranza/internal/recordatorio/repository"
	serviciodomain "github.com/estudioandino/cobranza/internal/servicio/domain"
	serviciorepo "github.com/estudioandino/cobranza/internal/servicio/repository"
	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// hoyTest is a day with a seeded SUNAT due date for digit group 0.
var hoyTest = time.Date(2026, time.August, 17, 9, 30, 0, 0, time.UTC)

type emailStub struct {
	err   error
	calls int
}

func (s *emailStub) Send(ctx context.Context, to []string, subject string, htmlBody string) error {
	s.calls++
	return s.err
}

type whatsappStub struct {
	err        error
	configured bool
	calls      int
}

func (s *whatsappStub) SendText(ctx context.Context, number string, message string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "wamid-999", nil
}

func (s *whatsappStub) Configured() bool { return s.configured }

type testEnv struct {
	svc      domain.Service
	db       *gorm.DB
	node     *snowflake.Node
	clock    *clock.FakeClock
	email    *emailStub
	whatsapp *whatsappStub
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&clasificaciondomain.Clasificacion{},
		&clasificaciondomain.HistorialClasificacion{},
		&clientedomain.Cliente{},
		&clientedomain.CompromisoPago{},
		&serviciodomain.ServicioAdicional{},
		&pagodomain.Pago{},
		&cronogramadomain.CronogramaSunat{},
		&recordatoriodomain.RecordatorioProgramado{},
		&notificaciondomain.Notificacion{},
		&domain.LogProcesoAutomatico{},
	))

	require.NoError(t, db.Create([]clasificaciondomain.Clasificacion{
		{ID: 1, Codigo: clasificaciondomain.CodigoA, Nombre: "Cliente al dia"},
		{ID: 2, Codigo: clasificaciondomain.CodigoB, Nombre: "Morosidad leve"},
		{ID: 3, Codigo: clasificaciondomain.CodigoC, Nombre: "Morosidad critica"},
	}).Error)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(hoyTest)
	cfg := config.Config{
		DispatchTimeout: time.Second,
		EmpresaNombre:   "Estudio Test",
	}

	emailProv := &emailStub{}
	whatsappProv := &whatsappStub{configured: true}
	dispatcher := notifier.New(notifier.Params{
		Log:      zap.NewNop(),
		Config:   cfg,
		Email:    emailProv,
		WhatsApp: whatsappProv,
	})

	cronogramaSvc := cronogramaservice.New(cronogramaservice.ServiceParam{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: cronogramarepo.Provide(),
	})
	clasificacionSvc := clasificacionservice.New(clasificacionservice.ServiceParam{
		DB:            db,
		Log:           zap.NewNop(),
		GenID:         node,
		Clock:         fake,
		ClienteRepo:   clienterepo.Provide(),
		ServicioRepo:  serviciorepo.Provide(),
		PagoRepo:      pagorepo.Provide(),
		Repo:          clasificacionrepo.Provide(),
		CronogramaSvc: cronogramaSvc,
	})

	svc := New(ServiceParam{
		DB:               db,
		Log:              zap.NewNop(),
		Config:           cfg,
		GenID:            node,
		Clock:            fake,
		Metrics:          metrics.New(prometheus.NewRegistry()),
		ClienteRepo:      clienterepo.Provide(),
		ServicioRepo:     serviciorepo.Provide(),
		RecordatorioRepo: recordatoriorepo.Provide(),
		NotificacionRepo: notificacionrepo.Provide(),
		Repo:             procesorepo.New(),
		CronogramaSvc:    cronogramaSvc,
		ClasificacionSvc: clasificacionSvc,
		Dispatcher:       dispatcher,
		Email:            emailProv,
	})

	return &testEnv{
		svc:      svc,
		db:       db,
		node:     node,
		clock:    fake,
		email:    emailProv,
		whatsapp: whatsappProv,
	}
}

func (e *testEnv) crearCliente(t *testing.T, ruc string, digito int, fee float64) *clientedomain.Cliente {
	t.Helper()
	cliente := &clientedomain.Cliente{
		ID:               e.node.Generate(),
		RUC:              ruc,
		UltimoDigitoRUC:  digito,
		RazonSocial:      "Cliente " + ruc,
		Email:            "cliente@" + ruc + ".pe",
		Telefono:         "51999000111",
		MontoFijoMensual: fee,
		AplicaMontoFijo:  true,
		ClasificacionID:  1,
		Estado:           clientedomain.EstadoClienteActivo,
		FechaRegistro:    hoyTest.AddDate(0, 0, -10),
	}
	require.NoError(t, e.db.Create(cliente).Error)
	return cliente
}

// seedCorteHoy inserts the schedule row that makes digit group 0 fall due on
// hoyTest: July's obligation, due August 17th.
func (e *testEnv) seedCorteHoy(t *testing.T) {
	t.Helper()
	require.NoError(t, e.db.Create(&cronogramadomain.CronogramaSunat{
		ID: e.node.Generate(), Anio: 2026, Digito: 0, Mes: 7, Dia: 17, MesVencimiento: 8,
	}).Error)
}

func (e *testEnv) seedRecordatorioHoy(t *testing.T, clienteID snowflake.ID) snowflake.ID {
	t.Helper()
	id := e.node.Generate()
	require.NoError(t, e.db.Create(&recordatoriodomain.RecordatorioProgramado{
		ID:              id,
		ClienteID:       clienteID,
		FechaProgramada: time.Date(2026, time.August, 17, 0, 0, 0, 0, time.UTC),
		Tipo:            recordatoriodomain.TipoRecordatorioPagoPendiente,
		Mensaje:         MensajeRecordatorioPago,
		Estado:          recordatoriodomain.EstadoRecordatorioProgramado,
	}).Error)
	return id
}

func TestRunOnceSinActividad(t *testing.T) {
	env := newTestEnv(t)

	res := env.svc.RunOnce(context.Background())
	assert.Equal(t, domain.EstadoProcesoExitoso, res.Estado)
	assert.Equal(t, "sin actividad programada para hoy", res.Resumen)
	assert.Zero(t, res.ClientesProcesados)
	assert.Empty(t, res.Errores)

	var logs []domain.LogProcesoAutomatico
	require.NoError(t, env.db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.EstadoProcesoExitoso, logs[0].Estado)
	assert.Equal(t, "sin actividad programada para hoy", logs[0].Resumen)
	assert.JSONEq(t, "[]", string(logs[0].Errores))
}

func TestRunOnceGeneraServicioMensualIdempotente(t *testing.T) {
	env := newTestEnv(t)
	env.seedCorteHoy(t)
	cliente := env.crearCliente(t, "20111111110", 0, 350)

	res := env.svc.RunOnce(context.Background())
	assert.Equal(t, 1, res.ClientesProcesados)
	assert.Equal(t, 1, res.ServiciosGenerados)

	var servicios []serviciodomain.ServicioAdicional
	require.NoError(t, env.db.Find(&servicios).Error)
	require.Len(t, servicios, 1)
	assert.Equal(t, cliente.ID, servicios[0].ClienteID)
	assert.Equal(t, serviciodomain.NombreServicioMensual, servicios[0].NombreServicio)
	assert.Equal(t, serviciodomain.TipoServicioMensual, servicios[0].TipoServicio)
	assert.Equal(t, serviciodomain.EstadoServicioFacturado, servicios[0].Estado)
	assert.Equal(t, "2026-08", servicios[0].Periodo)
	assert.Equal(t, 350.0, servicios[0].Monto)

	// The "service generated" notice went out.
	assert.Equal(t, 1, env.email.calls)

	// Tomorrow's reminder was scheduled.
	var recordatorios []recordatoriodomain.RecordatorioProgramado
	require.NoError(t, env.db.Find(&recordatorios).Error)
	require.Len(t, recordatorios, 1)
	assert.Equal(t, time.Date(2026, time.August, 18, 0, 0, 0, 0, time.UTC), recordatorios[0].FechaProgramada)
	assert.Equal(t, recordatoriodomain.EstadoRecordatorioProgramado, recordatorios[0].Estado)

	// A second run the same day changes nothing.
	res = env.svc.RunOnce(context.Background())
	assert.Zero(t, res.ServiciosGenerados)

	var totalServicios, totalRecordatorios int64
	require.NoError(t, env.db.Model(&serviciodomain.ServicioAdicional{}).Count(&totalServicios).Error)
	require.NoError(t, env.db.Model(&recordatoriodomain.RecordatorioProgramado{}).Count(&totalRecordatorios).Error)
	assert.Equal(t, int64(1), totalServicios)
	assert.Equal(t, int64(1), totalRecordatorios)
}

func TestRunOnceOmiteClienteSinMontoFijo(t *testing.T) {
	env := newTestEnv(t)
	env.seedCorteHoy(t)
	cliente := env.crearCliente(t, "20111111110", 0, 350)
	cliente.AplicaMontoFijo = false
	require.NoError(t, env.db.Save(cliente).Error)

	res := env.svc.RunOnce(context.Background())
	assert.Zero(t, res.ServiciosGenerados)

	var total int64
	require.NoError(t, env.db.Model(&serviciodomain.ServicioAdicional{}).Count(&total).Error)
	assert.Zero(t, total)
}

func TestRunOnceEnviaRecordatorioConFallbackWhatsApp(t *testing.T) {
	env := newTestEnv(t)
	cliente := env.crearCliente(t, "20111111110", 0, 350)
	recordatorioID := env.seedRecordatorioHoy(t, cliente.ID)
	env.email.err = errors.New("smtp caido")

	res := env.svc.RunOnce(context.Background())
	assert.Equal(t, 1, res.RecordatoriosEnviados)
	// WhatsApp delivered it, so the run records no error for this reminder.
	assert.Equal(t, domain.EstadoProcesoExitoso, res.Estado)
	assert.Empty(t, res.Errores)

	var recordatorio recordatoriodomain.RecordatorioProgramado
	require.NoError(t, env.db.First(&recordatorio, "id = ?", recordatorioID).Error)
	assert.Equal(t, recordatoriodomain.EstadoRecordatorioEnviado, recordatorio.Estado)
	require.NotNil(t, recordatorio.FechaEnvio)

	var notificaciones []notificaciondomain.Notificacion
	require.NoError(t, env.db.Find(&notificaciones).Error)
	require.Len(t, notificaciones, 1)
	assert.Equal(t, string(notifier.CanalWhatsApp), notificaciones[0].Canal)
	assert.Equal(t, notificaciondomain.EstadoNotificacionEnviado, notificaciones[0].Estado)
	assert.Equal(t, "wamid-999", notificaciones[0].MessageID)
	assert.Equal(t, cliente.Telefono, notificaciones[0].Destinatario)
	assert.Equal(t, 1, env.whatsapp.calls)
}

func TestRunOnceRecordatorioAmbosCanalesFallan(t *testing.T) {
	env := newTestEnv(t)
	cliente := env.crearCliente(t, "20111111110", 0, 350)
	recordatorioID := env.seedRecordatorioHoy(t, cliente.ID)
	env.email.err = errors.New("smtp caido")
	env.whatsapp.configured = false

	res := env.svc.RunOnce(context.Background())
	assert.Zero(t, res.RecordatoriosEnviados)
	assert.Equal(t, domain.EstadoProcesoConErrores, res.Estado)
	assert.NotEmpty(t, res.Errores)

	var recordatorio recordatoriodomain.RecordatorioProgramado
	require.NoError(t, env.db.First(&recordatorio, "id = ?", recordatorioID).Error)
	assert.Equal(t, recordatoriodomain.EstadoRecordatorioError, recordatorio.Estado)

	var notificaciones []notificaciondomain.Notificacion
	require.NoError(t, env.db.Find(&notificaciones).Error)
	require.Len(t, notificaciones, 1)
	assert.Equal(t, notificaciondomain.EstadoNotificacionError, notificaciones[0].Estado)

	var logEntry domain.LogProcesoAutomatico
	require.NoError(t, env.db.First(&logEntry).Error)
	assert.Equal(t, domain.EstadoProcesoConErrores, logEntry.Estado)
}

func TestRunOnceOmiteRecordatorioDeClienteInactivo(t *testing.T) {
	env := newTestEnv(t)
	cliente := env.crearCliente(t, "20111111110", 0, 350)
	env.seedRecordatorioHoy(t, cliente.ID)
	cliente.Estado = clientedomain.EstadoClienteInactivo
	require.NoError(t, env.db.Save(cliente).Error)

	res := env.svc.RunOnce(context.Background())
	assert.Zero(t, res.RecordatoriosEnviados)
	assert.Zero(t, env.email.calls)
	assert.Zero(t, env.whatsapp.calls)
}

func TestRunOnceClasificaCartera(t *testing.T) {
	env := newTestEnv(t)
	cliente := env.crearCliente(t, "20111111110", 0, 100)
	// Four elapsed months, 250 paid: one month in arrears, tier B.
	cliente.FechaRegistro = hoyTest.AddDate(0, -3, -5)
	require.NoError(t, env.db.Save(cliente).Error)
	require.NoError(t, env.db.Create(&pagodomain.Pago{
		ID:        env.node.Generate(),
		ClienteID: cliente.ID,
		Monto:     250,
		FechaPago: hoyTest,
		Estado:    pagodomain.EstadoPagoConfirmado,
	}).Error)

	res := env.svc.RunOnce(context.Background())
	assert.Equal(t, domain.EstadoProcesoExitoso, res.Estado)

	var actualizado clientedomain.Cliente
	require.NoError(t, env.db.First(&actualizado, "id = ?", cliente.ID).Error)
	assert.Equal(t, int64(2), actualizado.ClasificacionID)

	var historial []clasificaciondomain.HistorialClasificacion
	require.NoError(t, env.db.Find(&historial).Error)
	require.Len(t, historial, 1)
	assert.Equal(t, clasificaciondomain.MotivoClasificacionAutomatica, historial[0].Motivo)
}

func TestRunOnceIncluyeInactivoConCompromiso(t *testing.T) {
	env := newTestEnv(t)
	env.seedCorteHoy(t)
	cliente := env.crearCliente(t, "20111111110", 0, 350)
	cliente.Estado = clientedomain.EstadoClienteInactivo
	require.NoError(t, env.db.Save(cliente).Error)
	require.NoError(t, env.db.Create(&clientedomain.CompromisoPago{
		ID:              env.node.Generate(),
		ClienteID:       cliente.ID,
		Monto:           200,
		FechaCompromiso: hoyTest,
		Estado:          clientedomain.EstadoCompromisoPendiente,
	}).Error)

	res := env.svc.RunOnce(context.Background())
	assert.Equal(t, 1, res.ClientesProcesados)
	assert.Equal(t, 1, res.ServiciosGenerados)
}

func TestRunOnceResumenCombinado(t *testing.T) {
	env := newTestEnv(t)
	env.seedCorteHoy(t)
	cliente := env.crearCliente(t, "20111111110", 0, 350)
	env.seedRecordatorioHoy(t, cliente.ID)

	res := env.svc.RunOnce(context.Background())
	assert.Equal(t, "1 servicios generados, 1 recordatorios enviados", res.Resumen)
	assert.Equal(t, domain.EstadoProcesoExitoso, res.Estado)
}
