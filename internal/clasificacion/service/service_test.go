package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/estudioandino/cobranza/internal/clasificacion/domain"
	clasificacionrepo "github.com/estudioandino/cobranza/internal/clasificacion/repository"
	clientedomain "github.com/estudioandino/cobranza/internal/cliente/domain"
	clienterepo "github.com/estudioandino/cobranza/internal/cliente/repository"
	"github.com/estudioandino/cobranza/internal/clock"
	cronogramadomain "github.com/estudioandino/cobranza/internal/cronograma/domain"
	cronogramarepo "github.com/estudioandino/cobranza/internal/cronograma/repository"
	cronogramaservice "github.com/estudioandino/cobranza/internal/cronograma/service"
	pagodomain "github.com/estudioandino/cobranza/internal/pago/domain"
	pagorepo "github.com/estudioandino/cobranza/internal/pago/repository"
	serviciodomain "github.com/estudioandino/cobranza/internal/servicio/domain"
	serviciorepo "github.com/estudioandino/cobranza/internal/servicio/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var hoyTest = time.Date(2026, time.August, 15, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	svc   domain.Service
	db    *gorm.DB
	node  *snowflake.Node
	clock *clock.FakeClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Clasificacion{},
		&domain.HistorialClasificacion{},
		&clientedomain.Cliente{},
		&clientedomain.CompromisoPago{},
		&serviciodomain.ServicioAdicional{},
		&pagodomain.Pago{},
		&cronogramadomain.CronogramaSunat{},
	))

	require.NoError(t, db.Create([]domain.Clasificacion{
		{ID: 1, Codigo: domain.CodigoA, Nombre: "Cliente al dia"},
		{ID: 2, Codigo: domain.CodigoB, Nombre: "Morosidad leve"},
		{ID: 3, Codigo: domain.CodigoC, Nombre: "Morosidad critica"},
	}).Error)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(hoyTest)

	cronogramaSvc := cronogramaservice.New(cronogramaservice.ServiceParam{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: cronogramarepo.Provide(),
	})

	svc := New(ServiceParam{
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

	return &testEnv{svc: svc, db: db, node: node, clock: fake}
}

func (e *testEnv) crearCliente(t *testing.T, ruc string, digito int, fee float64, mesesAtras int, clasificacionID int64) *clientedomain.Cliente {
	t.Helper()
	cliente := &clientedomain.Cliente{
		ID:               e.node.Generate(),
		RUC:              ruc,
		UltimoDigitoRUC:  digito,
		RazonSocial:      "Cliente " + ruc,
		MontoFijoMensual: fee,
		AplicaMontoFijo:  true,
		ClasificacionID:  clasificacionID,
		Estado:           clientedomain.EstadoClienteActivo,
		FechaRegistro:    hoyTest.AddDate(0, -(mesesAtras - 1), -5),
	}
	require.NoError(t, e.db.Create(cliente).Error)
	return cliente
}

func (e *testEnv) pagar(t *testing.T, clienteID snowflake.ID, monto float64) {
	t.Helper()
	require.NoError(t, e.db.Create(&pagodomain.Pago{
		ID:        e.node.Generate(),
		ClienteID: clienteID,
		Monto:     monto,
		FechaPago: hoyTest,
		Estado:    pagodomain.EstadoPagoConfirmado,
	}).Error)
}

func TestCodigoPorMorosidad(t *testing.T) {
	cases := map[int]domain.Codigo{
		0:   domain.CodigoA,
		1:   domain.CodigoB,
		2:   domain.CodigoB,
		3:   domain.CodigoC,
		100: domain.CodigoC,
	}
	for meses, esperado := range cases {
		assert.Equal(t, esperado, domain.CodigoPorMorosidad(meses), "meses %d", meses)
	}
}

func TestMesesTranscurridosNuncaMenorAUno(t *testing.T) {
	assert.Equal(t, 1, mesesTranscurridos(hoyTest.AddDate(0, 0, -3), hoyTest))
	assert.Equal(t, 1, mesesTranscurridos(hoyTest, hoyTest))
	assert.Equal(t, 4, mesesTranscurridos(time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC), hoyTest))
	// Registered "in the future" still counts one month.
	assert.Equal(t, 1, mesesTranscurridos(hoyTest.AddDate(0, 2, 0), hoyTest))
}

func TestComputeMorosidadLeve(t *testing.T) {
	env := newTestEnv(t)
	cliente := env.crearCliente(t, "20111111110", 0, 100, 4, 1)
	env.pagar(t, cliente.ID, 250)

	resultados, err := env.svc.ComputeClassifications(context.Background())
	require.NoError(t, err)
	require.Len(t, resultados, 1)

	res := resultados[0]
	assert.Equal(t, 400.0, res.MontoEsperado)
	assert.Equal(t, 250.0, res.TotalPagado)
	assert.Equal(t, 150.0, res.Deuda)
	assert.Equal(t, 1, res.MesesMorosidad)
	assert.Equal(t, domain.CodigoB, res.ClasificacionNueva)
	assert.True(t, res.RequiereCambio)
}

func TestComputeClienteAlDia(t *testing.T) {
	env := newTestEnv(t)
	cliente := env.crearCliente(t, "20111111110", 0, 100, 4, 1)
	env.pagar(t, cliente.ID, 400)

	resultados, err := env.svc.ComputeClassifications(context.Background())
	require.NoError(t, err)
	require.Len(t, resultados, 1)

	res := resultados[0]
	assert.Equal(t, 0.0, res.Deuda)
	assert.Equal(t, domain.CodigoA, res.ClasificacionNueva)
	assert.False(t, res.RequiereCambio)
}

func TestComputeMorosidadCriticaConAdicionales(t *testing.T) {
	env := newTestEnv(t)
	cliente := env.crearCliente(t, "20111111110", 0, 100, 5, 1)
	require.NoError(t, env.db.Create(&serviciodomain.ServicioAdicional{
		ID:             env.node.Generate(),
		ClienteID:      cliente.ID,
		NombreServicio: "Constancia laboral",
		Monto:          50,
		FechaServicio:  hoyTest,
		Estado:         serviciodomain.EstadoServicioFacturado,
		TipoServicio:   serviciodomain.TipoServicioAdicional,
		Periodo:        "2026-08",
	}).Error)

	resultados, err := env.svc.ComputeClassifications(context.Background())
	require.NoError(t, err)
	require.Len(t, resultados, 1)

	res := resultados[0]
	assert.Equal(t, 550.0, res.MontoEsperado)
	assert.Equal(t, 550.0, res.Deuda)
	assert.Equal(t, 5, res.MesesMorosidad)
	assert.Equal(t, domain.CodigoC, res.ClasificacionNueva)
}

func TestComputeIgnoraPagosPendientes(t *testing.T) {
	env := newTestEnv(t)
	cliente := env.crearCliente(t, "20111111110", 0, 100, 4, 1)
	require.NoError(t, env.db.Create(&pagodomain.Pago{
		ID:        env.node.Generate(),
		ClienteID: cliente.ID,
		Monto:     400,
		FechaPago: hoyTest,
		Estado:    pagodomain.EstadoPagoPendiente,
	}).Error)

	resultados, err := env.svc.ComputeClassifications(context.Background())
	require.NoError(t, err)
	require.Len(t, resultados, 1)
	assert.Equal(t, 0.0, resultados[0].TotalPagado)
}

func TestComputeAislaFallaDeUnCliente(t *testing.T) {
	env := newTestEnv(t)
	env.crearCliente(t, "20111111110", 0, 100, 2, 1)
	// Corrupt digit makes the schedule resolver fail for this client only.
	env.crearCliente(t, "20222222227", 17, 100, 2, 1)
	env.crearCliente(t, "20333333334", 4, 100, 2, 1)

	resultados, err := env.svc.ComputeClassifications(context.Background())
	require.NoError(t, err)
	assert.Len(t, resultados, 2)
}

func TestComputeResuelveProximoVencimiento(t *testing.T) {
	env := newTestEnv(t)
	env.crearCliente(t, "20111111113", 3, 100, 1, 1)
	require.NoError(t, env.db.Create(&cronogramadomain.CronogramaSunat{
		ID: env.node.Generate(), Anio: 2026, Digito: 2, Mes: 8, Dia: 18, MesVencimiento: 9,
	}).Error)

	resultados, err := env.svc.ComputeClassifications(context.Background())
	require.NoError(t, err)
	require.Len(t, resultados, 1)
	require.NotNil(t, resultados[0].ProximoVencimiento)
	assert.Equal(t, time.Date(2026, time.September, 18, 0, 0, 0, 0, time.UTC), *resultados[0].ProximoVencimiento)
}

func TestApplyChangesActualizaYRegistraHistorial(t *testing.T) {
	env := newTestEnv(t)
	cliente := env.crearCliente(t, "20111111110", 0, 100, 4, 1)
	env.pagar(t, cliente.ID, 250)

	resultados, err := env.svc.ComputeClassifications(context.Background())
	require.NoError(t, err)
	require.NoError(t, env.svc.ApplyChanges(context.Background(), resultados, nil))

	var actualizado clientedomain.Cliente
	require.NoError(t, env.db.First(&actualizado, "id = ?", cliente.ID).Error)
	assert.Equal(t, int64(2), actualizado.ClasificacionID)

	var historial []domain.HistorialClasificacion
	require.NoError(t, env.db.Find(&historial).Error)
	require.Len(t, historial, 1)
	assert.Equal(t, int64(1), historial[0].ClasificacionAnteriorID)
	assert.Equal(t, int64(2), historial[0].ClasificacionNuevaID)
	assert.Equal(t, domain.MotivoClasificacionAutomatica, historial[0].Motivo)
	assert.Equal(t, 1, historial[0].MesesMorosidad)
	assert.Equal(t, 150.0, historial[0].MontoDeuda)
}

func TestApplyChangesGuardaDeudaSinRecortar(t *testing.T) {
	env := newTestEnv(t)
	cliente := env.crearCliente(t, "20111111110", 0, 100, 2, 3)
	// Overpaid: the historial keeps the raw negative delta for audit.
	env.pagar(t, cliente.ID, 500)

	resultados, err := env.svc.ComputeClassifications(context.Background())
	require.NoError(t, err)
	require.Len(t, resultados, 1)
	require.True(t, resultados[0].RequiereCambio)
	require.NoError(t, env.svc.ApplyChanges(context.Background(), resultados, nil))

	var historial domain.HistorialClasificacion
	require.NoError(t, env.db.First(&historial).Error)
	assert.Equal(t, -300.0, historial.MontoDeuda)
}

func TestApplyChangesOmiteSinCambio(t *testing.T) {
	env := newTestEnv(t)
	cliente := env.crearCliente(t, "20111111110", 0, 100, 4, 1)
	env.pagar(t, cliente.ID, 400)

	resultados, err := env.svc.ComputeClassifications(context.Background())
	require.NoError(t, err)
	require.NoError(t, env.svc.ApplyChanges(context.Background(), resultados, nil))

	var count int64
	require.NoError(t, env.db.Model(&domain.HistorialClasificacion{}).Count(&count).Error)
	assert.Zero(t, count)

	var actualizado clientedomain.Cliente
	require.NoError(t, env.db.First(&actualizado, "id = ?", cliente.ID).Error)
	assert.Equal(t, int64(1), actualizado.ClasificacionID)
}

func TestApplyChangesCodigoDesconocido(t *testing.T) {
	env := newTestEnv(t)
	bueno := env.crearCliente(t, "20111111110", 0, 100, 4, 1)
	env.pagar(t, bueno.ID, 250)

	resultados, err := env.svc.ComputeClassifications(context.Background())
	require.NoError(t, err)
	require.Len(t, resultados, 1)

	malo := resultados[0]
	malo.ClienteID = env.node.Generate()
	malo.ClasificacionNueva = domain.Codigo("Z")
	cambios := append(resultados, malo)

	err = env.svc.ApplyChanges(context.Background(), cambios, nil)
	assert.Error(t, err)

	// The well-formed change still landed.
	var actualizado clientedomain.Cliente
	require.NoError(t, env.db.First(&actualizado, "id = ?", bueno.ID).Error)
	assert.Equal(t, int64(2), actualizado.ClasificacionID)
}

func TestApplyChangesRegistraUsuario(t *testing.T) {
	env := newTestEnv(t)
	cliente := env.crearCliente(t, "20111111110", 0, 100, 4, 1)
	env.pagar(t, cliente.ID, 250)

	resultados, err := env.svc.ComputeClassifications(context.Background())
	require.NoError(t, err)

	usuario := int64(42)
	require.NoError(t, env.svc.ApplyChanges(context.Background(), resultados, &usuario))

	var historial domain.HistorialClasificacion
	require.NoError(t, env.db.First(&historial).Error)
	require.NotNil(t, historial.UsuarioID)
	assert.Equal(t, usuario, *historial.UsuarioID)
}
