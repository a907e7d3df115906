package reporting_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fritz-nvm/management-system/internal/application/dto"
	"github.com/Fritz-nvm/management-system/internal/application/reporting"
	"github.com/Fritz-nvm/management-system/internal/domain"
	"github.com/Fritz-nvm/management-system/internal/domain/access"
	"github.com/Fritz-nvm/management-system/internal/domain/entity"
	"github.com/Fritz-nvm/management-system/internal/domain/repository"
)

const branchA = "6f1c2a1e-3b7d-4c55-9a7e-0c1d2e3f4a01"

type listOnly struct {
	repository.AssetRepository
	got repository.AssetFilter
}

func (l *listOnly) List(_ context.Context, f repository.AssetFilter) ([]*entity.Asset, error) {
	l.got = f
	return []*entity.Asset{
		{AssetID: "AST-2026-00001", PurchaseCost: decimal.RequireFromString("100.50")},
		{AssetID: "AST-2026-00002", PurchaseCost: decimal.RequireFromString("20")},
	}, nil
}

type capturePDF struct {
	report *reporting.AssetReport
	err    error
}

func (c *capturePDF) AssetReportPDF(_ context.Context, r *reporting.AssetReport) ([]byte, error) {
	c.report = r
	return []byte("%PDF"), c.err
}

type captureXLSX struct{ n int }

func (c *captureXLSX) AssetsXLSX(_ context.Context, assets []*entity.Asset) ([]byte, error) {
	c.n = len(assets)
	return []byte("PK"), nil
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "MARCH 2026", reporting.PeriodLabel(time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)))
}

func TestAssetsPDF_AcotadoYConTotal(t *testing.T) {
	repo := &listOnly{}
	pdf := &capturePDF{}
	uc := reporting.NewExportUseCase(repo, pdf, &captureXLSX{}, zerolog.Nop()).
		WithClock(func() time.Time { return time.Date(2026, time.October, 1, 8, 0, 0, 0, time.UTC) })

	branch := branchA
	officer := access.Principal{UserID: "u", Assignment: &entity.UserRole{Role: entity.RoleInventoryOfficer, BranchID: &branch}}
	doc, err := uc.AssetsPDF(context.Background(), officer, dto.AssetListQuery{})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), doc)
	assert.Equal(t, []string{branchA}, repo.got.BranchIDs)
	require.NotNil(t, pdf.report)
	assert.Equal(t, "OCTOBER 2026", pdf.report.Period)
	assert.Equal(t, "120.5", pdf.report.TotalValue.String())
	assert.Len(t, pdf.report.Assets, 2)
}

func TestAssetsPDF_ErrorDelGenerador(t *testing.T) {
	uc := reporting.NewExportUseCase(&listOnly{}, &capturePDF{err: errors.New("fuente rota")}, &captureXLSX{}, zerolog.Nop())
	_, err := uc.AssetsPDF(context.Background(), access.Principal{UserID: "root", IsSuperuser: true}, dto.AssetListQuery{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fuente rota")
}

func TestAssetsXLSX(t *testing.T) {
	xlsx := &captureXLSX{}
	uc := reporting.NewExportUseCase(&listOnly{}, &capturePDF{}, xlsx, zerolog.Nop())

	_, err := uc.AssetsXLSX(context.Background(), access.Principal{}, dto.AssetListQuery{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	doc, err := uc.AssetsXLSX(context.Background(), access.Principal{UserID: "root", IsSuperuser: true}, dto.AssetListQuery{})
	require.NoError(t, err)
	assert.Equal(t, []byte("PK"), doc)
	assert.Equal(t, 2, xlsx.n)
}
