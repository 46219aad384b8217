package recibo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bwmarrin/snowflake"
	clientedomain "github.com/estudioandino/cobranza/internal/cliente/domain"
	"github.com/estudioandino/cobranza/internal/config"
	pagodomain "github.com/estudioandino/cobranza/internal/pago/domain"
	"github.com/estudioandino/cobranza/internal/providers/email"
	"github.com/estudioandino/cobranza/internal/providers/pdf"
	serviciodomain "github.com/estudioandino/cobranza/internal/servicio/domain"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrPagoNoEncontrado = errors.New("pago no encontrado")
	ErrPagoNoConfirmado = errors.New("el pago no esta confirmado")
)

// Recibo is a rendered payment receipt ready to be stored or streamed.
type Recibo struct {
	Numero    string
	PagoID    snowflake.ID
	ClienteID snowflake.ID
	PDF       io.Reader
}

type Service interface {
	// EmitirRecibo renders a receipt for a confirmed payment and, when the
	// client has an email address, sends a best-effort notice.
	EmitirRecibo(ctx context.Context, pagoID snowflake.ID) (*Recibo, error)
}

type Params struct {
	fx.In

	Log       *zap.Logger
	DB        *gorm.DB
	Config    config.Config
	Pagos     pagodomain.Repository
	Clientes  clientedomain.Repository
	Servicios serviciodomain.Repository
	PDF       pdf.Provider
	Email     email.Provider
}

type service struct {
	log       *zap.Logger
	db        *gorm.DB
	cfg       config.Config
	pagos     pagodomain.Repository
	clientes  clientedomain.Repository
	servicios serviciodomain.Repository
	pdf       pdf.Provider
	email     email.Provider
}

func NewService(p Params) Service {
	return &service{
		log:       p.Log.Named("recibo"),
		db:        p.DB,
		cfg:       p.Config,
		pagos:     p.Pagos,
		clientes:  p.Clientes,
		servicios: p.Servicios,
		pdf:       p.PDF,
		email:     p.Email,
	}
}

func (s *service) EmitirRecibo(ctx context.Context, pagoID snowflake.ID) (*Recibo, error) {
	pago, err := s.pagos.FindByID(ctx, s.db, pagoID)
	if err != nil {
		return nil, err
	}
	if pago == nil {
		return nil, ErrPagoNoEncontrado
	}
	if pago.Estado != pagodomain.EstadoPagoConfirmado {
		return nil, ErrPagoNoConfirmado
	}

	cliente, err := s.clientes.FindByID(ctx, s.db, pago.ClienteID)
	if err != nil {
		return nil, fmt.Errorf("cargar cliente del pago: %w", err)
	}
	if cliente == nil {
		return nil, fmt.Errorf("cliente %s del pago no existe", pago.ClienteID)
	}

	periodo := pago.MesServicio
	if periodo == "" {
		periodo = pago.FechaPago.Format("2006-01")
	}

	var items []pdf.ReciboItem
	servicios, err := s.servicios.ListPorClientePeriodo(ctx, s.db, cliente.ID, periodo)
	if err != nil {
		return nil, fmt.Errorf("cargar servicios del periodo: %w", err)
	}
	for _, sv := range servicios {
		items = append(items, pdf.ReciboItem{
			Descripcion: sv.NombreServicio,
			Monto:       formatMonto(sv.Monto),
		})
	}
	if len(items) == 0 {
		concepto := pago.Concepto
		if concepto == "" {
			concepto = "Pago de honorarios"
		}
		items = append(items, pdf.ReciboItem{
			Descripcion: concepto,
			Monto:       formatMonto(pago.Monto),
		})
	}

	numero := uuid.NewString()
	data := pdf.ReciboData{
		NumeroRecibo:  numero,
		FechaPago:     pago.FechaPago.Format("02/01/2006"),
		Periodo:       periodo,
		EmpresaNombre: s.cfg.EmpresaNombre,
		EmpresaEmail:  s.cfg.EmpresaEmail,
		ClienteNombre: cliente.RazonSocial,
		ClienteRUC:    cliente.RUC,
		ClienteEmail:  cliente.Email,
		Items:         items,
		Total:         formatMonto(pago.Monto),
		MetodoPago:    pago.MetodoPago,
		Banco:         pago.Banco,
	}

	doc, err := s.pdf.GenerateRecibo(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("generar recibo: %w", err)
	}

	if cliente.Email != "" {
		s.enviarAviso(ctx, cliente, pago, numero)
	}

	return &Recibo{
		Numero:    numero,
		PagoID:    pago.ID,
		ClienteID: cliente.ID,
		PDF:       doc,
	}, nil
}

// enviarAviso is best-effort: a failed notice never blocks receipt emission.
func (s *service) enviarAviso(ctx context.Context, cliente *clientedomain.Cliente, pago *pagodomain.Pago, numero string) {
	subject := "Recibo de pago " + numero
	body := fmt.Sprintf(
		"<p>Estimado cliente %s,</p><p>Registramos su pago de %s con fecha %s. Su recibo es el N° %s.</p><p>%s</p>",
		cliente.RazonSocial,
		formatMonto(pago.Monto),
		pago.FechaPago.Format("02/01/2006"),
		numero,
		s.cfg.EmpresaNombre,
	)

	timeout := s.cfg.DispatchTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	sendCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := s.email.Send(sendCtx, []string{cliente.Email}, subject, body); err != nil {
		s.log.Warn("aviso de recibo no enviado",
			zap.String("cliente_id", cliente.ID.String()),
			zap.String("numero_recibo", numero),
			zap.Error(err),
		)
	}
}

func formatMonto(monto float64) string {
	return fmt.Sprintf("S/ %.2f", monto)
}
