package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type ReciboItem struct {
	Descripcion string
	Monto       string
}

type ReciboData struct {
	NumeroRecibo string
	FechaPago    string
	Periodo      string

	EmpresaNombre string
	EmpresaEmail  string

	ClienteNombre string
	ClienteRUC    string
	ClienteEmail  string

	Items      []ReciboItem
	Total      string
	MetodoPago string
	Banco      string
}

type MarotoProvider struct{}

func NewMaroto() *MarotoProvider {
	return &MarotoProvider{}
}

func (p *MarotoProvider) GenerateRecibo(ctx context.Context, data ReciboData) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Pagina {current} de {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(20,
		text.NewCol(12, "Recibo de pago", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(20,
		col.New(6).Add(
			text.New("Recibo: "+data.NumeroRecibo, props.Text{Top: 0}),
			text.New("Fecha de pago: "+data.FechaPago, props.Text{Top: 4}),
			text.New("Periodo: "+data.Periodo, props.Text{Top: 8}),
		),
		col.New(6),
	)

	m.AddRow(30,
		col.New(6).Add(
			text.New(data.EmpresaNombre, props.Text{Style: fontstyle.Bold}),
			text.New(data.EmpresaEmail, props.Text{Top: 5}),
		),
		col.New(6).Add(
			text.New("Cliente", props.Text{Style: fontstyle.Bold}),
			text.New(data.ClienteNombre, props.Text{Top: 5}),
			text.New("RUC: "+data.ClienteRUC, props.Text{Top: 9}),
			text.New(data.ClienteEmail, props.Text{Top: 13}),
		),
	)

	m.AddRow(15,
		text.NewCol(12, data.Total+" pagado el "+data.FechaPago, props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Top:   5,
		}),
	)

	m.AddRow(10,
		text.NewCol(8, "Descripcion", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(4, "Monto", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range data.Items {
		m.AddRow(12,
			text.NewCol(8, item.Descripcion, props.Text{Size: 9}),
			text.NewCol(4, item.Monto, props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Size: 9}),
		text.NewCol(2, data.Total, props.Text{Size: 9, Align: align.Right}),
	)

	if data.MetodoPago != "" {
		detalle := "Metodo de pago: " + data.MetodoPago
		if data.Banco != "" {
			detalle = fmt.Sprintf("%s (%s)", detalle, data.Banco)
		}
		m.AddRow(15,
			text.NewCol(12, detalle, props.Text{Size: 9, Top: 4}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}
