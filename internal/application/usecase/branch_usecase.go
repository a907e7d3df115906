package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Fritz-nvm/management-system/internal/application/dto"
	"github.com/Fritz-nvm/management-system/internal/domain"
	"github.com/Fritz-nvm/management-system/internal/domain/access"
	"github.com/Fritz-nvm/management-system/internal/domain/entity"
	"github.com/Fritz-nvm/management-system/internal/domain/repository"
)

// BranchUseCase casos de uso CRUD para sucursales.
type BranchUseCase struct {
	repo   repository.BranchRepository
	assets repository.AssetRepository
	log    zerolog.Logger
	now    func() time.Time
}

// NewBranchUseCase construye el caso de uso.
func NewBranchUseCase(repo repository.BranchRepository, assets repository.AssetRepository, log zerolog.Logger) *BranchUseCase {
	return &BranchUseCase{
		repo:   repo,
		assets: assets,
		log:    log.With().Str("component", "branch_usecase").Logger(),
		now:    time.Now,
	}
}

// List todas las sucursales ordenadas por nombre (super_admin y branch_manager).
func (uc *BranchUseCase) List(ctx context.Context, p access.Principal) ([]*entity.Branch, error) {
	if !access.CanListBranches(p) {
		return nil, domain.ErrForbidden
	}
	return uc.repo.List(ctx)
}

// Get sucursal a editar. Requiere permiso de gestión.
func (uc *BranchUseCase) Get(ctx context.Context, p access.Principal, id string) (*entity.Branch, error) {
	if !access.CanManageBranches(p) {
		return nil, domain.ErrForbidden
	}
	return uc.get(ctx, id)
}

// Create alta de sucursal. code duplicado -> *domain.FieldError.
func (uc *BranchUseCase) Create(ctx context.Context, p access.Principal, form dto.BranchForm) (*entity.Branch, error) {
	if !access.CanManageBranches(p) {
		return nil, domain.ErrForbidden
	}
	form.Normalize()
	if err := dto.Validate(form); err != nil {
		return nil, err
	}
	now := uc.now()
	b := &entity.Branch{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	form.Apply(b)
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	uc.log.Info().Str("code", b.Code).Str("user_id", p.UserID).Msg("sucursal creada")
	return b, nil
}

// Update edición de sucursal.
func (uc *BranchUseCase) Update(ctx context.Context, p access.Principal, id string, form dto.BranchForm) (*entity.Branch, error) {
	b, err := uc.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}
	form.Normalize()
	if err := dto.Validate(form); err != nil {
		return nil, err
	}
	form.Apply(b)
	b.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Delete baja de sucursal; bloqueada mientras tenga activos.
func (uc *BranchUseCase) Delete(ctx context.Context, p access.Principal, id string) (*entity.Branch, error) {
	b, err := uc.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}
	n, err := uc.assets.CountByBranch(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		uc.log.Warn().Str("code", b.Code).Int("assets", n).Msg("baja de sucursal bloqueada")
		return b, domain.ErrBranchHasAssets
	}
	if err := uc.repo.Delete(ctx, b.ID); err != nil {
		return b, err
	}
	uc.log.Info().Str("code", b.Code).Str("user_id", p.UserID).Msg("sucursal eliminada")
	return b, nil
}

func (uc *BranchUseCase) get(ctx context.Context, id string) (*entity.Branch, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}
