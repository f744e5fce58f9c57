// Package pdf genera la representación gráfica de la factura de maquila.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + NIT  │  N° Factura + Fechas         │
//	│  EMISOR: Dirección / Tel / Email                             │
//	│  CLIENTE: Nombre + CC/NIT + contacto                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Maquila | Café | Kg | Empaque | Valor                │
//	│  DETALLE: merma, entrega, fecha comprometida                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / IVA / TOTAL A PAGAR                     │
//	│  FOOTER: entrega + QR de verificación + notas                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Maquila-api/internal/application/ports"
	"github.com/jhoicas/Maquila-api/internal/domain/entity"
	"github.com/jhoicas/Maquila-api/pkg/nit"
)

var _ ports.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 92, Green: 54, Blue: 33} // café tostado
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var coffeeLabels = map[string]string{
	entity.CoffeeTypeCPS:     "Pergamino seco (CPS)",
	entity.CoffeeTypeExcelso: "Excelso",
}

var deliveryLabels = map[string]string{
	entity.DeliveryPickup:   "Recoge en planta",
	entity.DeliveryDelivery: "Entrega a domicilio",
	entity.DeliveryShipping: "Envío",
}

var statusLabels = map[string]string{
	entity.InvoiceStatusPending:   "PENDIENTE DE PAGO",
	entity.InvoiceStatusPaid:      "PAGADA",
	entity.InvoiceStatusOverdue:   "EN MORA",
	entity.InvoiceStatusCancelled: "ANULADA",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	invoice *entity.Invoice,
	order *entity.Order,
	company *entity.Company,
	client *entity.Client,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura de maquila "+invoice.Number, true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(invoice, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(emisorRow(company))
	m.AddRows(clientRow(client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(serviceRow(invoice, order))
	m.AddRows(orderDetailRow(order))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(invoice))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(invoice, company)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: razón social + NIT (izq) y número + fechas + estado (der).
func headerRow(invoice *entity.Invoice, company *entity.Company) core.Row {
	return row.New(24).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+nit.Format(company.NIT), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA DE SERVICIO DE MAQUILA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.Number, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 6,
			}),
			text.New(fmt.Sprintf("Emisión: %s   Vence: %s",
				invoice.IssueDate.Format("02/01/2006"),
				invoice.DueDate.Format("02/01/2006"),
			), props.Text{Size: 8, Align: align.Right, Top: 13, Color: colorGray}),
			text.New(nonEmpty(statusLabels[invoice.Status], invoice.Status), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 18, Color: colorPrimary,
			}),
		),
	)
}

func emisorRow(company *entity.Company) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DEL EMISOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(company.Address, "—"),
				nonEmpty(company.Phone, "—"),
				nonEmpty(company.Email, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func clientRow(client *entity.Client) core.Row {
	return row.New(20).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(client.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("%s: %s   |   Email: %s   |   Tel: %s",
				strings.ToUpper(client.DocumentType),
				client.DocumentNumber,
				nonEmpty(client.Email, "—"),
				nonEmpty(client.Phone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
			text.New(strings.TrimSpace(nonEmpty(client.Address, "—")+" "+client.City),
				props.Text{Size: 8, Top: 16, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla del servicio.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Maquila", 3, align.Left),
		h("Café", 3, align.Left),
		h("Kg", 1, align.Center),
		h("Empaque", 2, align.Left),
		h("Valor", 3, align.Right),
	)
}

// serviceRow: la maquila facturada es la única línea del documento.
func serviceRow(invoice *entity.Invoice, order *entity.Order) core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	coffee := nonEmpty(coffeeLabels[order.CoffeeType], order.CoffeeType)
	if order.OriginalCoffeeType != order.CoffeeType {
		coffee = nonEmpty(coffeeLabels[order.OriginalCoffeeType], order.OriginalCoffeeType) + " a " + coffee
	}
	return row.New(8).Add(
		cell(order.Number, 3, align.Left),
		cell(coffee, 3, align.Left),
		cell(order.QuantityKg.StringFixed(1), 1, align.Center),
		cell(order.PackagingType, 2, align.Left),
		cell("$"+money(invoice.Subtotal), 3, align.Right),
	)
}

// orderDetailRow: merma, entrega y fecha comprometida.
func orderDetailRow(order *entity.Order) core.Row {
	parts := []string{
		"Entrega: " + nonEmpty(deliveryLabels[order.DeliveryMethod], order.DeliveryMethod),
		"Comprometida: " + order.CommittedDate.Format("02/01/2006"),
	}
	if order.DeliveryAddress != "" {
		parts = append(parts, "Dirección: "+order.DeliveryAddress)
	}
	if order.KgAfterHulling != nil && order.ShrinkPct != nil {
		parts = append(parts, fmt.Sprintf("Trilla: %s kg (merma %s%%)",
			order.KgAfterHulling.StringFixed(1), order.ShrinkPct.StringFixed(2)))
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(strings.Join(parts, "   |   "), props.Text{Size: 7.5, Top: 2, Left: 1, Color: colorGray}),
	))
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(invoice *entity.Invoice) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := func(s string, right float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: right, Top: 12,
		})
	}

	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:"),
			text.New(fmt.Sprintf("IVA (%s%%):", invoice.TaxRate.StringFixed(0)), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 6,
			}),
			grand("TOTAL A PAGAR:", 2),
		),
		col.New(3).Add(
			value("$"+money(invoice.Subtotal), 0),
			value("$"+money(invoice.TaxAmount), 6),
			grand("$"+money(invoice.TotalAmount), 1),
		),
	)
}

// footerRows: entrega, QR de verificación y notas.
func footerRows(invoice *entity.Invoice, company *entity.Company) []core.Row {
	qr := fmt.Sprintf("NIT:%s|FAC:%s|TOTAL:%s|FECHA:%s",
		company.NIT, invoice.Number, invoice.TotalAmount.StringFixed(2), invoice.IssueDate.Format("2006-01-02"))

	rows := []core.Row{
		row.New(36).Add(
			col.New(3).Add(code.NewQr(qr, props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(
				text.New("ENTREGA", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 3}),
				text.New("Entregó: "+nonEmpty(invoice.DeliveryPerson, "—"), props.Text{Size: 8, Top: 8, Left: 3}),
				text.New("Recibió: "+nonEmpty(invoice.DeliveryRecipient, "—"), props.Text{Size: 8, Top: 13, Left: 3}),
				text.New("Escanee el código para verificar número y valor de la factura.", props.Text{
					Size: 7, Top: 24, Left: 3, Color: colorGray,
				}),
			),
		),
	}

	if invoice.Notes != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("Observaciones:", props.Text{Style: fontstyle.Bold, Size: 7, Top: 1}),
		)))
		for _, chunk := range splitEvery(invoice.Notes, 110) {
			rows = append(rows, row.New(4).Add(col.New(12).Add(
				text.New(chunk, props.Text{Size: 7, Color: colorGray, Top: 0.5, Left: 2}),
			)))
		}
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money redondea a pesos y agrega separadores de miles.
func money(d decimal.Decimal) string {
	s := d.StringFixed(0)
	if strings.HasPrefix(s, "-") {
		return "-" + formatMoney(s[1:])
	}
	return formatMoney(s)
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

// splitEvery divide s en trozos de max n runas.
func splitEvery(s string, n int) []string {
	var parts []string
	r := []rune(s)
	for len(r) > n {
		parts = append(parts, string(r[:n]))
		r = r[n:]
	}
	if len(r) > 0 {
		parts = append(parts, string(r))
	}
	return parts
}
