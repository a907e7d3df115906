// Package pdf genera el reporte de inventario de activos con Maroto v2.
//
// Layout de la página A4 apaisada:
//
//	┌──────────────────────────────────────────────────────────────────────┐
//	│  HOSPITAL ASSET INVENTORY REPORT          │  Período + Generado el     │
//	│  ──────────────────────────────────────────────────────────────────  │
//	│  TABLA: Asset ID | Name | Branch | Dept | Serial | Status | Cond | $ │
//	│  ──────────────────────────────────────────────────────────────────  │
//	│  TOTAL: cantidad de activos + valor total                            │
//	└──────────────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/Fritz-nvm/management-system/internal/application/reporting"
	"github.com/Fritz-nvm/management-system/internal/domain/entity"
	"github.com/Fritz-nvm/management-system/pkg/money"
)

const reportTitle = "HOSPITAL ASSET INVENTORY REPORT"

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

var _ reporting.PDFGenerator = (*MarotoAssetReport)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoAssetReport implementa reporting.PDFGenerator usando Maroto v2.
type MarotoAssetReport struct {
	printer  *message.Printer
	currency string
}

// NewMarotoAssetReport construye el generador. Los montos usan agrupación en inglés.
func NewMarotoAssetReport() *MarotoAssetReport {
	return &MarotoAssetReport{printer: message.NewPrinter(language.English), currency: money.Currency}
}

// AssetReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoAssetReport) AssetReportPDF(_ context.Context, report *reporting.AssetReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(reportTitle, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(report.Assets) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("No assets found.", props.Text{Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	for i, a := range report.Assets {
		m.AddRows(g.assetRow(i, a))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalRow(len(report.Assets), report.TotalValue))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y período + fecha de generación (der).
func headerRow(report *reporting.AssetReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(reportTitle, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Inventory period: "+report.Period, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			}),
			text.New("Generated: "+report.GeneratedAt.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// columnas de la tabla; los tamaños suman 12.
var columns = []struct {
	label string
	size  int
	align align.Type
}{
	{"Asset ID", 2, align.Left},
	{"Name", 2, align.Left},
	{"Branch", 2, align.Left},
	{"Department", 1, align.Left},
	{"Serial Number", 2, align.Left},
	{"Status", 1, align.Center},
	{"Condition", 1, align.Center},
	{"Cost", 1, align.Right},
}

// tableHeaderRow: cabecera con fondo azul.
func tableHeaderRow() core.Row {
	cols := make([]core.Col, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// assetRow: una fila por activo, con franjas alternas.
func (g *MarotoAssetReport) assetRow(i int, a *entity.Asset) core.Row {
	values := []string{
		a.AssetID,
		a.Name,
		a.BranchDisplay(),
		a.DepartmentLabel(),
		a.SerialNumber,
		a.StatusLabel(),
		a.ConditionLabel(),
		g.formatMoney(a.PurchaseCost),
	}
	cols := make([]core.Col, 0, len(columns))
	for j, c := range columns {
		cols = append(cols, col.New(c.size).Add(text.New(values[j], props.Text{
			Size: 7.5, Align: c.align, Top: 1.5, Left: 1, Right: 1,
		})))
	}
	r := row.New(7).Add(cols...)
	if i%2 == 1 {
		r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return r
}

// totalRow: cantidad de activos y valor total alineados a la derecha.
func (g *MarotoAssetReport) totalRow(count int, total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(6).Add(text.New(g.printer.Sprintf("Total assets: %d", count), props.Text{
			Style: fontstyle.Bold, Size: 9, Top: 2,
		})),
		col.New(6).Add(text.New("TOTAL VALUE: "+g.formatMoney(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney monto con moneda y agrupación de miles del printer.
func (g *MarotoAssetReport) formatMoney(d decimal.Decimal) string {
	return g.currency + " " + money.FormatWith(g.printer, d)
}
