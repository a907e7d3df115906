package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Fritz-nvm/management-system/internal/domain/entity"
)

// DashboardSummary KPIs del dashboard, acotados a la sucursal del usuario salvo super_admin.
type DashboardSummary struct {
	RoleLabel     string
	BranchScoped  bool // false para super_admin
	TotalBranches int
	TotalAssets   int
	TotalValue    decimal.Decimal // suma de purchase_cost
	RecentAssets  []*entity.Asset // 5 más recientes
	ByStatus      []StatusCount
}

// StatusCount cantidad de activos por estado con su etiqueta visible.
type StatusCount struct {
	Status string
	Label  string
	Count  int
}
