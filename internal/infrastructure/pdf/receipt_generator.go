// Package pdf genera el recibo de una orden del taller con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Taller + título de la orden │ N° orden + fecha      │
//	│  CLIENTE: nombre / teléfono / serie de la guitarra           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  MANO DE OBRA: Cant | Descripción | P.Unit | Subtotal        │
//	│  REPUESTOS:    Cant | Descripción | P.Unit | Subtotal        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Mano de obra / Repuestos / TOTAL                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/taller-api/internal/application/billing"
	"github.com/jhoicas/taller-api/internal/domain/money"
)

var _ billing.ReceiptGenerator = (*ReceiptGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 96, Green: 56, Blue: 19}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ReceiptGenerator implementa billing.ReceiptGenerator usando Maroto v2.
type ReceiptGenerator struct{}

// NewReceiptGenerator construye el generador.
func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// GenerateReceiptPDF genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateReceiptPDF(_ context.Context, rc *billing.Receipt) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo "+rc.Title, true).
		WithAuthor(rc.ShopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(rc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionRows("MANO DE OBRA", rc.Works)...)
	m.AddRows(sectionRows("REPUESTOS", rc.Parts)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(rc))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(rc *billing.Receipt) core.Row {
	date := rc.IssuedAt.Format("02.01.2006")
	if rc.PaidAt != nil {
		date = rc.PaidAt.UTC().Format("02.01.2006")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(rc.ShopName, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(rc.Title, props.Text{Size: 10, Top: 9}),
		),
		col.New(5).Add(
			text.New("RECIBO", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New("N° "+shortID(rc.OrderID), props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New("Fecha: "+date+"  ·  "+rc.Status, props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

func customerRow(rc *billing.Receipt) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("%s   |   Tel: %s   |   Serie: %s",
				nonEmpty(rc.CustomerName, "-"),
				nonEmpty(rc.CustomerPhone, "-"),
				nonEmpty(rc.GuitarSerial, "-"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// sectionRows título, cabecera y una fila por línea. Sección vacía = sólo el título.
func sectionRows(title string, lines []billing.ReceiptLine) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
		)),
	}
	if len(lines) == 0 {
		return append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Sin líneas", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
		)))
	}
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	rows = append(rows, row.New(6).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	))
	for _, l := range lines {
		rows = append(rows, row.New(6).Add(
			col.New(1).Add(text.New(fmt.Sprint(l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(l.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(money.Format(l.UnitPriceCents), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(money.Format(l.TotalCents), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func totalsRow(rc *billing.Receipt) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Mano de obra:"),
			label("Repuestos:"),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 10}),
		),
		col.New(3).Add(
			value(money.Format(rc.LaborSubtotalCents)),
			text.New(money.Format(rc.PartsSubtotalCents), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 5}),
			text.New(money.Format(rc.InvoiceTotalCents), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 10}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
