// Package xlsx exporta el inventario de activos a una hoja de cálculo con excelize.
package xlsx

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/Fritz-nvm/management-system/internal/application/reporting"
	"github.com/Fritz-nvm/management-system/internal/domain/entity"
)

// SheetName nombre de la única hoja del libro.
const SheetName = "Assets"

// Header cabecera fija de 12 columnas.
var Header = []string{
	"Asset ID",
	"Name",
	"Branch",
	"Department",
	"Manufacturer",
	"Serial Number",
	"Purchase Date",
	"Custodian Name",
	"Custodian Phone",
	"Status",
	"Condition",
	"Cost",
}

var _ reporting.SpreadsheetGenerator = (*ExcelizeGenerator)(nil)

// ExcelizeGenerator implementa reporting.SpreadsheetGenerator.
type ExcelizeGenerator struct{}

// NewExcelizeGenerator construye el generador.
func NewExcelizeGenerator() *ExcelizeGenerator { return &ExcelizeGenerator{} }

// AssetsXLSX arma el libro: cabecera en negrita, una fila por activo y anchos ajustados.
func (g *ExcelizeGenerator) AssetsXLSX(_ context.Context, assets []*entity.Asset) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	// widths[i] = largo máximo visto en la columna i
	widths := make([]int, len(Header))
	track := func(i int, s string) {
		if n := utf8.RuneCountInString(s); n > widths[i] {
			widths[i] = n
		}
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
		track(i, h)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(Header))
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", bold); err != nil {
		return nil, fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}

	for r, a := range assets {
		values := []string{
			a.AssetID,
			a.Name,
			a.BranchDisplay(),
			a.DepartmentLabel(),
			a.Brand,
			a.SerialNumber,
			purchaseDate(a),
			a.CustodianName,
			a.CustodianPhone,
			a.StatusLabel(),
			a.ConditionLabel(),
			a.PurchaseCost.StringFixed(2),
		}
		row := make([]any, len(values))
		for i, v := range values {
			row[i] = v
			track(i, v)
		}
		// el costo va como número para que la hoja pueda sumarlo
		row[len(row)-1] = a.PurchaseCost.InexactFloat64()

		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", r+2, err)
		}
	}

	for i, w := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, name, name, float64(w+2)); err != nil {
			return nil, fmt.Errorf("xlsx: ancho de columna %s: %w", name, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func purchaseDate(a *entity.Asset) string {
	if a.PurchaseDate.IsZero() {
		return ""
	}
	return a.PurchaseDate.Format("2006-01-02")
}
