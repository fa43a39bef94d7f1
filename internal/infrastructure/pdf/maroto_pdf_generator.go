// Package pdf dibuja los comprobantes de venta con Maroto v2.
//
// Dos formatos según el tipo de documento de la venta:
//
//	ticket  (80 mm)               factura (carta)
//	┌──────────────────┐          ┌────────────────────────────────────┐
//	│ Empresa / RFC    │          │ Empresa + RFC   │ Folio + Fecha     │
//	│ Folio / Fecha    │          │ Emisor / Cliente                   │
//	│ Cant Desc Importe│          │ Cant | Descripción | P.Unit | Imp. │
//	│ Totales          │          │ Totales                            │
//	│ QR folio|total   │          │ QR + leyenda                       │
//	└──────────────────┘          └────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/PuntoVenta-api/internal/application/receipt"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/pkg/money"
)

var _ receipt.Generator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const ticketWidthMM = 80

var paymentLabels = map[entity.PaymentMethod]string{
	entity.PaymentCash:     "Efectivo",
	entity.PaymentCard:     "Tarjeta",
	entity.PaymentTransfer: "Transferencia",
	entity.PaymentCredit:   "Crédito",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa receipt.Generator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateReceipt genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReceipt(_ context.Context, data receipt.Data) ([]byte, error) {
	var m core.Maroto
	if data.Sale.DocumentType == entity.DocumentInvoice {
		m = invoiceLayout(data)
	} else {
		m = ticketLayout(data)
	}
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Ticket ────────────────────────────────────────────────────────────────────

func ticketLayout(data receipt.Data) core.Maroto {
	sale, company := data.Sale, data.Company
	// alto estimado: encabezado + renglones + totales + QR
	height := 120 + float64(len(sale.Items))*8
	cfg := config.NewBuilder().
		WithDimensions(ticketWidthMM, height).
		WithLeftMargin(4).WithRightMargin(4).
		WithTopMargin(4).WithBottomMargin(4).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 7}).
		WithTitle("Ticket "+sale.Folio, true).
		WithAuthor(company.Name, true).
		Build()
	m := maroto.New(cfg)

	center := func(s string, size float64, style fontstyle.Type) core.Row {
		return text.NewRow(size/2+2, s, props.Text{Size: size, Style: style, Align: align.Center})
	}
	m.AddRows(center(company.Name, 10, fontstyle.Bold))
	if company.RFC != "" {
		m.AddRows(center("RFC: "+company.RFC, 7, fontstyle.Normal))
	}
	if company.Address != "" {
		m.AddRows(center(company.Address, 6, fontstyle.Normal))
	}
	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.2}))
	m.AddRows(
		center("Folio: "+sale.Folio, 8, fontstyle.Bold),
		center(sale.CreatedAt.Format("02/01/2006 15:04"), 7, fontstyle.Normal),
	)
	if data.BranchName != "" {
		m.AddRows(center("Sucursal: "+data.BranchName, 7, fontstyle.Normal))
	}
	if data.CashierName != "" {
		m.AddRows(center("Cajero: "+data.CashierName, 7, fontstyle.Normal))
	}
	if data.Client != nil {
		m.AddRows(center("Cliente: "+data.Client.Name, 7, fontstyle.Normal))
	}
	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.2}))

	for _, it := range sale.Items {
		m.AddRows(row.New(4).Add(
			col.New(2).Add(text.New(money.Quantity(it.Quantity), props.Text{Size: 7})),
			col.New(6).Add(text.New(it.ProductName, props.Text{Size: 7})),
			col.New(4).Add(text.New(money.Format(it.Subtotal), props.Text{Size: 7, Align: align.Right})),
		))
	}
	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.2}))

	for _, t := range totalLines(sale) {
		style := fontstyle.Normal
		if t.grand {
			style = fontstyle.Bold
		}
		m.AddRows(row.New(4).Add(
			col.New(7).Add(text.New(t.label, props.Text{Size: 7, Style: style, Align: align.Right})),
			col.New(5).Add(text.New(t.value, props.Text{Size: 7, Style: style, Align: align.Right})),
		))
	}
	m.AddRows(center("Pago: "+paymentLabel(sale.PaymentMethod), 7, fontstyle.Normal))
	m.AddRows(row.New(30).Add(col.New(12).Add(code.NewQr(qrData(sale), props.Rect{Percent: 90, Center: true}))))
	m.AddRows(center("¡Gracias por su compra!", 7, fontstyle.Italic))
	return m
}

// ── Factura ───────────────────────────────────────────────────────────────────

func invoiceLayout(data receipt.Data) core.Maroto {
	sale, company := data.Sale, data.Company
	cfg := config.NewBuilder().
		WithPageSize(pagesize.Letter).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+sale.Folio, true).
		WithAuthor(company.Name, true).
		Build()
	m := maroto.New(cfg)

	m.AddRows(headerRow(sale, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(emisorRow(company, data.BranchName, data.CashierName))
	m.AddRows(clientRow(data.Client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(sale.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(sale))

	m.AddRows(line.NewRow(3))
	m.AddRows(row.New(40).Add(
		col.New(4).Add(code.NewQr(qrData(sale), props.Rect{Percent: 95, Center: true})),
		col.New(8).Add(
			text.New("Forma de pago: "+paymentLabel(sale.PaymentMethod), props.Text{
				Size: 9, Top: 4, Left: 3,
			}),
			text.New("Este documento es una representación impresa de la venta "+sale.Folio+".", props.Text{
				Size: 8, Top: 12, Left: 3, Color: colorGray,
			}),
		),
	))
	return m
}

// headerRow: razón social + RFC (izq) y folio + fecha (der).
func headerRow(sale *entity.Sale, company *entity.Company) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("RFC: "+nonEmpty(company.RFC, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(sale.Folio, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+sale.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func emisorRow(company *entity.Company, branch, cashier string) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("EMISOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Sucursal: %s   |   Cajero: %s",
				nonEmpty(company.Address, "—"),
				nonEmpty(company.Phone, "—"),
				nonEmpty(branch, "—"),
				nonEmpty(cashier, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func clientRow(client *entity.Client) core.Row {
	name, rfc, email := "Público en general", "XAXX010101000", "—"
	if client != nil {
		name = client.Name
		rfc = nonEmpty(client.RFC, rfc)
		email = nonEmpty(client.Email, email)
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("RFC: %s   |   Email: %s", rfc, email), props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Código", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Desc.", 1, align.Right),
		h("Importe", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableDetailRows(items []entity.SaleItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(money.Quantity(it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(it.ProductCode, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(it.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(money.Format(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(money.Format(it.Discount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(money.Format(it.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(sale *entity.Sale) core.Row {
	var labels, values []core.Component
	for _, t := range totalLines(sale) {
		p := props.Text{Size: 9, Align: align.Right, Right: 1}
		if t.grand {
			p.Style = fontstyle.Bold
			p.Size = 10
			p.Color = colorPrimary
		}
		l := p
		l.Style = fontstyle.Bold
		labels = append(labels, text.New(t.label, l))
		values = append(values, text.New(t.value, p))
	}
	return row.New(26).Add(
		col.New(6),
		col.New(3).Add(labels...),
		col.New(3).Add(values...),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

type totalLine struct {
	label, value string
	grand        bool
}

// totalLines subtotal, descuento (si aplica), IVA (si aplica) y total.
func totalLines(sale *entity.Sale) []totalLine {
	lines := []totalLine{{label: "Subtotal:", value: money.Format(sale.Subtotal)}}
	if sale.DiscountAmount.IsPositive() {
		lines = append(lines, totalLine{
			label: fmt.Sprintf("Descuento (%s%%):", sale.DiscountRate.String()),
			value: "-" + money.Format(sale.DiscountAmount),
		})
	}
	if sale.TaxAmount.IsPositive() {
		lines = append(lines, totalLine{
			label: fmt.Sprintf("IVA (%s%%):", sale.TaxRate.String()),
			value: money.Format(sale.TaxAmount),
		})
	}
	return append(lines, totalLine{label: "TOTAL:", value: money.Format(sale.Total), grand: true})
}

func qrData(sale *entity.Sale) string {
	return sale.Folio + "|" + sale.Total.StringFixed(2)
}

func paymentLabel(m entity.PaymentMethod) string {
	if l, ok := paymentLabels[m]; ok {
		return l
	}
	return string(m)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
