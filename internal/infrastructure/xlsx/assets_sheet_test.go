package xlsx_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Fritz-nvm/management-system/internal/domain/entity"
	"github.com/Fritz-nvm/management-system/internal/infrastructure/xlsx"
)

func TestAssetsXLSX_CabeceraYFilas(t *testing.T) {
	assets := []*entity.Asset{{
		AssetID:        "AST-2026-00001",
		Name:           "X-Ray Machine",
		BranchName:     "Yaoundé Central",
		BranchCode:     "YAO-001",
		Department:     "radiology",
		Brand:          "Siemens",
		SerialNumber:   "SN-1",
		PurchaseDate:   time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC),
		CustodianName:  "Dr. Fokoua",
		CustodianPhone: "+237 699 123 456",
		Status:         "maintenance",
		Condition:      "good",
		PurchaseCost:   decimal.RequireFromString("15000000.50"),
	}}

	doc, err := xlsx.NewExcelizeGenerator().AssetsXLSX(context.Background(), assets)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(doc))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{xlsx.SheetName}, f.GetSheetList())

	rows, err := f.GetRows(xlsx.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, xlsx.Header, rows[0])
	assert.Equal(t, "Yaoundé Central (YAO-001)", rows[1][2])
	assert.Equal(t, "Radiology", rows[1][3])
	assert.Equal(t, "Siemens", rows[1][4])
	assert.Equal(t, "2025-01-15", rows[1][6])
	assert.Equal(t, "Under Maintenance", rows[1][9])

	cost, err := f.GetCellValue(xlsx.SheetName, "L2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "15000000.5", cost)

	styleID, err := f.GetCellStyle(xlsx.SheetName, "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)

	width, err := f.GetColWidth(xlsx.SheetName, "C")
	require.NoError(t, err)
	assert.Equal(t, float64(len([]rune("Yaoundé Central (YAO-001)"))+2), width)
}

func TestAssetsXLSX_SinActivosSoloCabecera(t *testing.T) {
	doc, err := xlsx.NewExcelizeGenerator().AssetsXLSX(context.Background(), nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(doc))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsx.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 12)
}
