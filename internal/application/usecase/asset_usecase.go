package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Fritz-nvm/management-system/internal/application/dto"
	"github.com/Fritz-nvm/management-system/internal/domain"
	"github.com/Fritz-nvm/management-system/internal/domain/access"
	"github.com/Fritz-nvm/management-system/internal/domain/assetid"
	"github.com/Fritz-nvm/management-system/internal/domain/entity"
	"github.com/Fritz-nvm/management-system/internal/domain/repository"
)

const manualsPrefix = "manuals/"

// DuplicateSerialMessage texto mostrado junto al campo serial_number cuando ya existe.
const DuplicateSerialMessage = "Asset with this Serial number already exists."

// AssetUseCase casos de uso de activos: política de acceso + persistencia.
type AssetUseCase struct {
	assets   repository.AssetRepository
	branches repository.BranchRepository
	tx       TxRunner
	ids      *assetid.Generator
	manuals  ManualStore
	log      zerolog.Logger
	now      func() time.Time
}

// NewAssetUseCase construye el caso de uso.
func NewAssetUseCase(
	assets repository.AssetRepository,
	branches repository.BranchRepository,
	tx TxRunner,
	ids *assetid.Generator,
	manuals ManualStore,
	log zerolog.Logger,
) *AssetUseCase {
	return &AssetUseCase{
		assets:   assets,
		branches: branches,
		tx:       tx,
		ids:      ids,
		manuals:  manuals,
		log:      log.With().Str("component", "asset_usecase").Logger(),
		now:      time.Now,
	}
}

// ScopedFilter traduce el ámbito del principal y la consulta del listado a un AssetFilter.
// El filtro por sucursal solo se respeta para super_admin.
func ScopedFilter(p access.Principal, q dto.AssetListQuery) repository.AssetFilter {
	f := repository.AssetFilter{
		Search: strings.TrimSpace(q.Search),
		Status: strings.TrimSpace(q.Status),
	}
	scope := access.AssetScope(p)
	switch {
	case scope.All:
		if b := strings.TrimSpace(q.Branch); b != "" {
			if _, err := uuid.Parse(b); err != nil {
				f.BranchIDs = []string{}
			} else {
				f.BranchIDs = []string{b}
			}
		}
	case scope.Empty():
		f.BranchIDs = []string{}
	default:
		f.BranchIDs = []string{scope.BranchID}
	}
	return f
}

// List listado de activos acotado al ámbito del principal.
func (uc *AssetUseCase) List(ctx context.Context, p access.Principal, q dto.AssetListQuery) (*dto.AssetListResult, error) {
	if !access.CanListAssets(p) {
		return nil, domain.ErrForbidden
	}
	list, err := uc.assets.List(ctx, ScopedFilter(p, q))
	if err != nil {
		return nil, err
	}
	branches, err := uc.FormBranches(ctx, p)
	if err != nil {
		return nil, err
	}
	return &dto.AssetListResult{
		Assets:          list,
		Branches:        branches,
		Query:           q,
		CanFilterBranch: access.AssetScope(p).All,
	}, nil
}

// Get detalle de un activo. Sin permiso se reporta como no encontrado.
func (uc *AssetUseCase) Get(ctx context.Context, p access.Principal, id string) (*entity.Asset, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	a, err := uc.assets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil || !access.CanAccess(p, a) {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

// FormBranches sucursales seleccionables: todas para super_admin, la propia para el resto.
func (uc *AssetUseCase) FormBranches(ctx context.Context, p access.Principal) ([]*entity.Branch, error) {
	scope := access.AssetScope(p)
	if scope.All {
		return uc.branches.List(ctx)
	}
	if scope.Empty() {
		return nil, nil
	}
	b, err := uc.branches.GetByID(ctx, scope.BranchID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}
	return []*entity.Branch{b}, nil
}

// Create registra un activo nuevo.
// Los roles con sucursal deben tenerla asignada antes de validar o subir nada; el activo
// queda en esa sucursal sin importar lo enviado.
func (uc *AssetUseCase) Create(ctx context.Context, p access.Principal, form dto.AssetForm, manual *ManualUpload) (*entity.Asset, error) {
	if !access.CanAddAsset(p) {
		return nil, domain.ErrForbidden
	}
	home, err := access.RequireBranch(p)
	if err != nil {
		return nil, err
	}
	in, err := form.Parse()
	if err != nil {
		return nil, err
	}
	branchID := home
	if home == "" {
		if branchID, err = uc.resolveBranch(ctx, in.Branch); err != nil {
			return nil, err
		}
	}

	now := uc.now()
	a := &entity.Asset{
		ID:        uuid.New().String(),
		BranchID:  branchID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.Apply(a)
	if p.UserID != "" {
		createdBy := p.UserID
		a.CreatedBy = &createdBy
	}

	if a.ManualPath, err = uc.saveManual(ctx, manual); err != nil {
		return nil, err
	}
	err = uc.tx.RunAssets(ctx, func(_ repository.BranchRepository, assets repository.AssetRepository) error {
		// nextval no se revierte: un serial repetido no debe consumir número de secuencia
		if err := ensureSerialFree(ctx, assets, a.SerialNumber, ""); err != nil {
			return err
		}
		id, err := uc.ids.NextFrom(ctx, assets)
		if err != nil {
			return err
		}
		a.AssetID = id
		return assets.Create(ctx, a)
	})
	if err != nil {
		uc.discardManual(ctx, a.ManualPath)
		return nil, err
	}
	uc.log.Info().Str("asset_id", a.AssetID).Str("branch_id", a.BranchID).Str("user_id", p.UserID).Msg("activo creado")
	return a, nil
}

// Update edita un activo existente. asset_id no cambia; los roles con sucursal no pueden moverlo.
func (uc *AssetUseCase) Update(ctx context.Context, p access.Principal, id string, form dto.AssetForm, manual *ManualUpload) (*entity.Asset, error) {
	a, err := uc.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}
	in, err := form.Parse()
	if err != nil {
		return nil, err
	}
	if access.AssetScope(p).All {
		if a.BranchID, err = uc.resolveBranch(ctx, in.Branch); err != nil {
			return nil, err
		}
	}
	in.Apply(a)
	a.UpdatedAt = uc.now()
	if err := ensureSerialFree(ctx, uc.assets, a.SerialNumber, a.ID); err != nil {
		return nil, err
	}

	previous := a.ManualPath
	uploaded, err := uc.saveManual(ctx, manual)
	if err != nil {
		return nil, err
	}
	if uploaded != "" {
		a.ManualPath = uploaded
	}
	if err := uc.assets.Update(ctx, a); err != nil {
		uc.discardManual(ctx, uploaded)
		return nil, err
	}
	if uploaded != "" && previous != "" {
		uc.discardManual(ctx, previous)
	}
	return a, nil
}

// ensureSerialFree rechaza un serial ya usado por otro activo distinto de selfID.
// La restricción única de la base sigue cubriendo las carreras.
func ensureSerialFree(ctx context.Context, assets repository.AssetRepository, serial, selfID string) error {
	other, err := assets.GetBySerialNumber(ctx, serial)
	if err != nil {
		return err
	}
	if other != nil && other.ID != selfID {
		return domain.NewDuplicateError("serial_number", DuplicateSerialMessage)
	}
	return nil
}

// GetForDelete activo a confirmar para borrado; solo super_admin, el resto recibe no encontrado.
func (uc *AssetUseCase) GetForDelete(ctx context.Context, p access.Principal, id string) (*entity.Asset, error) {
	if !access.CanDeleteAsset(p) {
		return nil, domain.ErrNotFound
	}
	return uc.Get(ctx, p, id)
}

// Delete elimina el activo y su manual.
func (uc *AssetUseCase) Delete(ctx context.Context, p access.Principal, id string) (*entity.Asset, error) {
	a, err := uc.GetForDelete(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if err := uc.assets.Delete(ctx, a.ID); err != nil {
		return nil, err
	}
	uc.discardManual(ctx, a.ManualPath)
	uc.log.Info().Str("asset_id", a.AssetID).Str("user_id", p.UserID).Msg("activo eliminado")
	return a, nil
}

// ManualForDownload ruta en disco del manual si el principal puede ver el activo dueño.
func (uc *AssetUseCase) ManualForDownload(ctx context.Context, p access.Principal, file string) (string, error) {
	if file == "" || strings.ContainsAny(file, `/\`) {
		return "", domain.ErrNotFound
	}
	rel := manualsPrefix + file
	a, err := uc.assets.GetByManualPath(ctx, rel)
	if err != nil {
		return "", err
	}
	if a == nil || !access.CanAccess(p, a) {
		return "", domain.ErrNotFound
	}
	return uc.manuals.FullPath(rel)
}

// resolveBranch valida la sucursal elegida por super_admin.
func (uc *AssetUseCase) resolveBranch(ctx context.Context, branchID string) (string, error) {
	if branchID == "" {
		return "", &domain.FieldError{Field: "branch", Message: "This field is required.", Err: domain.ErrInvalidInput}
	}
	b, err := uc.branches.GetByID(ctx, branchID)
	if err != nil {
		return "", err
	}
	if b == nil {
		return "", &domain.FieldError{Field: "branch", Message: "Select a valid choice.", Err: domain.ErrInvalidInput}
	}
	return b.ID, nil
}

func (uc *AssetUseCase) saveManual(ctx context.Context, manual *ManualUpload) (string, error) {
	if manual == nil || manual.Filename == "" || uc.manuals == nil {
		return "", nil
	}
	r, err := manual.Open()
	if err != nil {
		return "", fmt.Errorf("abrir manual: %w", err)
	}
	defer r.Close()
	path, err := uc.manuals.Save(ctx, manual.Filename, r)
	if err != nil {
		return "", fmt.Errorf("guardar manual: %w", err)
	}
	return path, nil
}

// discardManual borrado best-effort; un fallo solo se registra.
func (uc *AssetUseCase) discardManual(ctx context.Context, path string) {
	if path == "" || uc.manuals == nil {
		return
	}
	if err := uc.manuals.Remove(ctx, path); err != nil {
		uc.log.Warn().Err(err).Str("path", path).Msg("no se pudo eliminar el manual")
	}
}
