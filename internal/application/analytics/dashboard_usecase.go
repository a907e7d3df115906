// Package analytics contiene el caso de uso del dashboard: KPIs del inventario
// acotados al ámbito del usuario.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Fritz-nvm/management-system/internal/application/dto"
	"github.com/Fritz-nvm/management-system/internal/domain"
	"github.com/Fritz-nvm/management-system/internal/domain/access"
	"github.com/Fritz-nvm/management-system/internal/domain/entity"
	"github.com/Fritz-nvm/management-system/internal/domain/repository"
)

const dashboardRecentAssets = 5 // activos recientes en el widget del dashboard

// DashboardUseCase genera el resumen del dashboard.
//
// Fuente de datos: AssetRepository y BranchRepository (consultas read-only).
type DashboardUseCase struct {
	assets   repository.AssetRepository
	branches repository.BranchRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(assets repository.AssetRepository, branches repository.BranchRepository) *DashboardUseCase {
	return &DashboardUseCase{assets: assets, branches: branches}
}

// GetSummary construye el DashboardSummary para el principal.
//
// super_admin ve todas las sucursales; el resto solo la propia (1 sucursal) o nada si no
// tiene una asignada. Las consultas de activos corren en paralelo:
//  1. Count          → TotalAssets
//  2. List(limit 5)  → RecentAssets
//  3. CountByStatus  → ByStatus
//  4. TotalCost      → TotalValue
func (uc *DashboardUseCase) GetSummary(ctx context.Context, p access.Principal) (*dto.DashboardSummary, error) {
	if !access.CanViewDashboard(p) {
		return nil, domain.ErrUnauthorized
	}
	scope := access.AssetScope(p)
	summary := &dto.DashboardSummary{
		RoleLabel:    p.Role().Label(),
		BranchScoped: !scope.All,
		TotalValue:   decimal.Zero,
	}
	if scope.Empty() {
		return summary, nil
	}

	filter := repository.AssetFilter{}
	if scope.All {
		n, err := uc.branches.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("dashboard: total de sucursales: %w", err)
		}
		summary.TotalBranches = n
	} else {
		filter.BranchIDs = []string{scope.BranchID}
		summary.TotalBranches = 1
	}

	// ── Goroutines para paralelizar las consultas DB ───────────────────────────
	type countResult struct {
		n   int
		err error
	}
	type recentResult struct {
		assets []*entity.Asset
		err    error
	}
	type statusResult struct {
		counts []repository.StatusCount
		err    error
	}
	type costResult struct {
		total decimal.Decimal
		err   error
	}

	countCh := make(chan countResult, 1)
	recentCh := make(chan recentResult, 1)
	statusCh := make(chan statusResult, 1)
	costCh := make(chan costResult, 1)

	go func() {
		n, err := uc.assets.Count(ctx, filter)
		countCh <- countResult{n, err}
	}()
	go func() {
		f := filter
		f.Limit = dashboardRecentAssets
		list, err := uc.assets.List(ctx, f)
		recentCh <- recentResult{list, err}
	}()
	go func() {
		counts, err := uc.assets.CountByStatus(ctx, filter)
		statusCh <- statusResult{counts, err}
	}()
	go func() {
		total, err := uc.assets.TotalCost(ctx, filter)
		costCh <- costResult{total, err}
	}()

	count := <-countCh
	recent := <-recentCh
	status := <-statusCh
	cost := <-costCh

	if count.err != nil {
		return nil, fmt.Errorf("dashboard: total de activos: %w", count.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: activos recientes: %w", recent.err)
	}
	if status.err != nil {
		return nil, fmt.Errorf("dashboard: activos por estado: %w", status.err)
	}
	if cost.err != nil {
		return nil, fmt.Errorf("dashboard: valor total: %w", cost.err)
	}

	summary.TotalAssets = count.n
	summary.RecentAssets = recent.assets
	summary.TotalValue = cost.total.Round(2)
	summary.ByStatus = statusCounts(status.counts)
	return summary, nil
}

// statusCounts ordena los conteos según el orden de AssetStatuses y agrega la etiqueta.
func statusCounts(counts []repository.StatusCount) []dto.StatusCount {
	byStatus := make(map[string]int, len(counts))
	for _, c := range counts {
		byStatus[c.Status] += c.Count
	}
	out := make([]dto.StatusCount, 0, len(byStatus))
	for _, choice := range entity.AssetStatuses {
		if n, ok := byStatus[choice.Value]; ok {
			out = append(out, dto.StatusCount{Status: choice.Value, Label: choice.Label, Count: n})
			delete(byStatus, choice.Value)
		}
	}
	// estados fuera del catálogo (datos heredados) al final
	for s, n := range byStatus {
		out = append(out, dto.StatusCount{Status: s, Label: s, Count: n})
	}
	return out
}
