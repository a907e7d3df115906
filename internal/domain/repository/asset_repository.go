package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Fritz-nvm/management-system/internal/domain/entity"
)

// AssetFilter criterios de búsqueda combinados con AND.
//   - BranchIDs: nil = sin restricción; slice vacío = ningún resultado.
//   - Search: substring case-insensitive sobre name O asset_id.
//   - Status: coincidencia exacta.
type AssetFilter struct {
	BranchIDs []string
	Search    string
	Status    string
	Limit     int // 0 = sin límite
}

// StatusCount cantidad de activos por estado.
type StatusCount struct {
	Status string
	Count  int
}

// AssetRepository define el puerto de persistencia para Asset (DIP).
// Los listados se ordenan del más reciente al más antiguo.
type AssetRepository interface {
	// NextAssetSequence siguiente valor de la secuencia atómica de asset_id.
	NextAssetSequence(ctx context.Context) (int64, error)
	// Create inserta el activo; unicidad de serial_number/asset_id -> *domain.FieldError (ErrDuplicate).
	Create(ctx context.Context, asset *entity.Asset) error
	GetByID(ctx context.Context, id string) (*entity.Asset, error)
	GetByManualPath(ctx context.Context, path string) (*entity.Asset, error)
	GetBySerialNumber(ctx context.Context, serial string) (*entity.Asset, error)
	// Update no modifica asset_id, created_by ni created_at.
	Update(ctx context.Context, asset *entity.Asset) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter AssetFilter) ([]*entity.Asset, error)
	Count(ctx context.Context, filter AssetFilter) (int, error)
	CountByStatus(ctx context.Context, filter AssetFilter) ([]StatusCount, error)
	TotalCost(ctx context.Context, filter AssetFilter) (decimal.Decimal, error)
	CountByBranch(ctx context.Context, branchID string) (int, error)
}
