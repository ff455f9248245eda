// Package pdf genera el comprobante imprimible de un documento de material.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + tipo de movimiento │ N° documento + fechas │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Ubicación / Proveedor / Texto de cabecera                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Material | Descripción | Cant. | UM | Importe        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el número de documento                       │
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

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
)

var _ inventory.SlipGenerator = (*MarotoSlipGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// MarotoSlipGenerator implementa inventory.SlipGenerator con Maroto v2.
type MarotoSlipGenerator struct {
	author string
}

// NewMarotoSlipGenerator construye el generador; author va en los metadatos del PDF.
func NewMarotoSlipGenerator(author string) *MarotoSlipGenerator {
	return &MarotoSlipGenerator{author: author}
}

// GenerateSlip genera el PDF y devuelve sus bytes.
func (g *MarotoSlipGenerator) GenerateSlip(_ context.Context, slip inventory.DocumentSlip) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(slip.Title+" "+slip.DocumentNumber, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(slip))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(infoRow(slip))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	priced := hasPrices(slip.Lines)
	m.AddRows(tableHeaderRow(priced))
	m.AddRows(tableLineRows(slip.Lines, priced)...)

	if priced {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(totalRow(slip.Lines))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(slip))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(slip inventory.DocumentSlip) core.Row {
	movement := string(slip.MovementType)
	if slip.MovementLabel != "" {
		movement += " - " + slip.MovementLabel
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(strings.ToUpper(slip.Title), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Movimiento: "+movement, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(slip.DocumentNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Contabilización: "+slip.PostingDate, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Documento: "+slip.DocumentDate, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func infoRow(slip inventory.DocumentSlip) core.Row {
	details := "Ubicación: " + slip.Location
	if slip.PartnerLabel != "" {
		details += "   |   Proveedor: " + slip.PartnerLabel
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New(details, props.Text{Size: 9, Top: 2}),
			text.New(nonEmpty(slip.HeaderText, "-"), props.Text{Size: 8, Top: 8, Color: colorGray}),
		),
	)
}

func tableHeaderRow(priced bool) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	last := h("Centro de coste", 3, align.Left)
	if priced {
		last = h("Importe", 3, align.Right)
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Material", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("Cant.", 2, align.Right),
		h("UM", 1, align.Center),
		last,
	)
}

func tableLineRows(lines []inventory.SlipLine, priced bool) []core.Row {
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		last := l.CostCenter
		lastAlign := align.Left
		if priced {
			last = "-"
			if l.TotalAmount != nil {
				last = formatAmount(*l.TotalAmount, 2)
			}
			lastAlign = align.Right
		}
		out = append(out, row.New(7).Add(
			col.New(2).Add(text.New(l.MaterialCode, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(l.Description, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatAmount(l.Quantity, 3), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(l.UnitOfMeasure, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(last, props.Text{Size: 8, Align: lastAlign, Top: 1, Right: 1, Left: 1})),
		))
	}
	return out
}

func totalRow(lines []inventory.SlipLine) core.Row {
	total := decimal.Zero
	for _, l := range lines {
		if l.TotalAmount != nil {
			total = total.Add(*l.TotalAmount)
		}
	}
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New(formatAmount(total, 2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

func footerRow(slip inventory.DocumentSlip) core.Row {
	return row.New(35).Add(
		col.New(3).Add(code.NewQr(slip.DocumentNumber, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New(fmt.Sprintf("%d línea(s)", len(slip.Lines)), props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray}),
			text.New("Documento de material "+slip.DocumentNumber, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 14, Left: 3, Color: colorPrimary,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func hasPrices(lines []inventory.SlipLine) bool {
	for _, l := range lines {
		if l.TotalAmount != nil {
			return true
		}
	}
	return false
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatAmount fija los decimales e inserta puntos de miles con coma decimal.
// Ej: 1234567.5 con 2 decimales → "1.234.567,50"
func formatAmount(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if frac != "" {
		return sign + string(buf) + "," + frac
	}
	return sign + string(buf)
}
