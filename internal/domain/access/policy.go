package access

import "github.com/Fritz-nvm/management-system/internal/domain"

// Target registro con ámbito de sucursal: *entity.Branch o *entity.Asset.
type Target interface {
	OwningBranchID() string
}

// CanAccess decide si p puede operar sobre un registro concreto.
//   - super_admin: siempre.
//   - resto: solo si tiene sucursal asignada y coincide con la del registro.
func CanAccess(p Principal, t Target) bool {
	switch ResolveRole(p) {
	case RoleSuperAdmin:
		return true
	case RoleBranchManager, RoleInventoryOfficer:
		home, ok := p.HomeBranch()
		if !ok || t == nil {
			return false
		}
		return home == t.OwningBranchID()
	case RoleNone:
		return false
	default:
		return false
	}
}

// CanViewDashboard cualquier principal autenticado; el contenido se acota con AssetScope.
func CanViewDashboard(p Principal) bool { return p.UserID != "" }

// CanListBranches super_admin y branch_manager.
func CanListBranches(p Principal) bool {
	switch ResolveRole(p) {
	case RoleSuperAdmin, RoleBranchManager:
		return true
	default:
		return false
	}
}

// CanManageBranches alta, edición y baja de sucursales: solo super_admin.
func CanManageBranches(p Principal) bool {
	return ResolveRole(p) == RoleSuperAdmin
}

// CanListAssets cualquier principal autenticado; el resultado se acota con AssetScope.
func CanListAssets(p Principal) bool { return p.UserID != "" }

// CanAddAsset super_admin, branch_manager e inventory_officer.
func CanAddAsset(p Principal) bool {
	switch ResolveRole(p) {
	case RoleSuperAdmin, RoleBranchManager, RoleInventoryOfficer:
		return true
	default:
		return false
	}
}

// CanDeleteAsset solo super_admin.
func CanDeleteAsset(p Principal) bool {
	return ResolveRole(p) == RoleSuperAdmin
}

// CanExportAssets mismas reglas que el listado: la exportación usa AssetScope.
func CanExportAssets(p Principal) bool { return CanListAssets(p) }

// Scope ámbito de lectura de activos para un principal.
type Scope struct {
	All      bool   // super_admin: todas las sucursales
	BranchID string // sucursal propia; vacío + !All = ninguna
}

// Empty el principal no ve ningún activo.
func (s Scope) Empty() bool { return !s.All && s.BranchID == "" }

// Allows indica si una sucursal cae dentro del ámbito.
func (s Scope) Allows(branchID string) bool {
	if s.All {
		return true
	}
	return s.BranchID != "" && s.BranchID == branchID
}

// AssetScope ámbito de listados, dashboard y exportaciones.
func AssetScope(p Principal) Scope {
	switch ResolveRole(p) {
	case RoleSuperAdmin:
		return Scope{All: true}
	case RoleBranchManager, RoleInventoryOfficer:
		if home, ok := p.HomeBranch(); ok {
			return Scope{BranchID: home}
		}
	}
	return Scope{}
}

// RequireBranch precondición de los roles con ámbito de sucursal: deben tener una asignada.
// Para super_admin devuelve ("", nil).
func RequireBranch(p Principal) (string, error) {
	if ResolveRole(p) == RoleSuperAdmin {
		return "", nil
	}
	home, ok := p.HomeBranch()
	if !ok || ResolveRole(p) == RoleNone {
		return "", domain.ErrBranchRequired
	}
	return home, nil
}
