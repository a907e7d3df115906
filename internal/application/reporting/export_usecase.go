// Package reporting orquesta las exportaciones del inventario (PDF y hoja de cálculo).
// El ámbito es el mismo del listado de activos.
package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Fritz-nvm/management-system/internal/application/dto"
	"github.com/Fritz-nvm/management-system/internal/application/usecase"
	"github.com/Fritz-nvm/management-system/internal/domain"
	"github.com/Fritz-nvm/management-system/internal/domain/access"
	"github.com/Fritz-nvm/management-system/internal/domain/entity"
	"github.com/Fritz-nvm/management-system/internal/domain/repository"
)

const (
	PDFFilename  = "inventory_report.pdf"
	XLSXFilename = "assets_inventory.xlsx"
)

// AssetReport snapshot que consume el generador de PDF.
type AssetReport struct {
	Period      string // ej. "MARCH 2026"
	GeneratedAt time.Time
	Assets      []*entity.Asset
	TotalValue  decimal.Decimal
}

// PDFGenerator genera el reporte de inventario en PDF.
type PDFGenerator interface {
	AssetReportPDF(ctx context.Context, report *AssetReport) ([]byte, error)
}

// SpreadsheetGenerator genera la hoja de cálculo de activos.
type SpreadsheetGenerator interface {
	AssetsXLSX(ctx context.Context, assets []*entity.Asset) ([]byte, error)
}

// ExportUseCase exportaciones de activos acotadas al principal.
type ExportUseCase struct {
	assets repository.AssetRepository
	pdf    PDFGenerator
	xlsx   SpreadsheetGenerator
	log    zerolog.Logger
	now    func() time.Time
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(assets repository.AssetRepository, pdf PDFGenerator, xlsx SpreadsheetGenerator, log zerolog.Logger) *ExportUseCase {
	return &ExportUseCase{
		assets: assets,
		pdf:    pdf,
		xlsx:   xlsx,
		log:    log.With().Str("component", "export_usecase").Logger(),
		now:    time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ExportUseCase) WithClock(clock func() time.Time) *ExportUseCase {
	cp := *uc
	cp.now = clock
	return &cp
}

// PeriodLabel etiqueta del período del reporte: mes y año en mayúsculas.
func PeriodLabel(t time.Time) string {
	return strings.ToUpper(t.Format("January 2006"))
}

// AssetsPDF reporte PDF de los activos visibles para p.
func (uc *ExportUseCase) AssetsPDF(ctx context.Context, p access.Principal, q dto.AssetListQuery) ([]byte, error) {
	list, err := uc.snapshot(ctx, p, q)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, a := range list {
		total = total.Add(a.PurchaseCost)
	}
	now := uc.now()
	doc, err := uc.pdf.AssetReportPDF(ctx, &AssetReport{
		Period:      PeriodLabel(now),
		GeneratedAt: now,
		Assets:      list,
		TotalValue:  total,
	})
	if err != nil {
		uc.log.Error().Err(err).Str("user_id", p.UserID).Msg("falló la generación del PDF")
		return nil, fmt.Errorf("reporte PDF: %w", err)
	}
	return doc, nil
}

// AssetsXLSX hoja de cálculo de los activos visibles para p.
func (uc *ExportUseCase) AssetsXLSX(ctx context.Context, p access.Principal, q dto.AssetListQuery) ([]byte, error) {
	list, err := uc.snapshot(ctx, p, q)
	if err != nil {
		return nil, err
	}
	doc, err := uc.xlsx.AssetsXLSX(ctx, list)
	if err != nil {
		uc.log.Error().Err(err).Str("user_id", p.UserID).Msg("falló la generación de la hoja de cálculo")
		return nil, fmt.Errorf("hoja de cálculo: %w", err)
	}
	return doc, nil
}

func (uc *ExportUseCase) snapshot(ctx context.Context, p access.Principal, q dto.AssetListQuery) ([]*entity.Asset, error) {
	if !access.CanExportAssets(p) {
		return nil, domain.ErrForbidden
	}
	list, err := uc.assets.List(ctx, usecase.ScopedFilter(p, q))
	if err != nil {
		return nil, fmt.Errorf("snapshot de activos: %w", err)
	}
	return list, nil
}
