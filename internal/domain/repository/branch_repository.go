package repository

import (
	"context"

	"github.com/Fritz-nvm/management-system/internal/domain/entity"
)

// BranchRepository define el puerto de persistencia para Branch (DIP).
// GetByID devuelve (nil, nil) si no existe.
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	GetByID(ctx context.Context, id string) (*entity.Branch, error)
	GetByCode(ctx context.Context, code string) (*entity.Branch, error)
	Update(ctx context.Context, branch *entity.Branch) error
	// List ordenado alfabéticamente por nombre.
	List(ctx context.Context) ([]*entity.Branch, error)
	Count(ctx context.Context) (int, error)
	// Delete falla con domain.ErrBranchHasAssets si hay activos que la referencian.
	Delete(ctx context.Context, id string) error
}
