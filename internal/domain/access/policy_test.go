package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fritz-nvm/management-system/internal/domain"
	"github.com/Fritz-nvm/management-system/internal/domain/access"
	"github.com/Fritz-nvm/management-system/internal/domain/entity"
)

const (
	branchA = "11111111-0000-0000-0000-00000000000a"
	branchB = "11111111-0000-0000-0000-00000000000b"
)

func strPtr(s string) *string { return &s }

func principal(role string, branch *string) access.Principal {
	return access.Principal{
		UserID:     "user-1",
		Username:   "user@hospital.cm",
		Assignment: &entity.UserRole{UserID: "user-1", Role: role, BranchID: branch},
	}
}

func superuser() access.Principal {
	return access.Principal{UserID: "root", Username: "admin", IsSuperuser: true}
}

var (
	branchTargetA = &entity.Branch{ID: branchA, Code: "YAO-001"}
	branchTargetB = &entity.Branch{ID: branchB, Code: "DLA-002"}
	assetInA      = &entity.Asset{ID: "asset-a", BranchID: branchA}
	assetInB      = &entity.Asset{ID: "asset-b", BranchID: branchB}
	allTargets    = []access.Target{branchTargetA, branchTargetB, assetInA, assetInB}
)

// ──────────────────────────────────────────────────────────────────────────────
// ResolveRole
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveRole(t *testing.T) {
	cases := []struct {
		name string
		p    access.Principal
		want access.Role
	}{
		{"superusuario sin registro", superuser(), access.RoleSuperAdmin},
		{"superusuario con rol inventario", access.Principal{
			UserID: "u", IsSuperuser: true,
			Assignment: &entity.UserRole{Role: entity.RoleInventoryOfficer, BranchID: strPtr(branchA)},
		}, access.RoleSuperAdmin},
		{"rol almacenado super_admin", principal(entity.RoleSuperAdmin, nil), access.RoleSuperAdmin},
		{"branch_manager", principal(entity.RoleBranchManager, strPtr(branchA)), access.RoleBranchManager},
		{"inventory_officer", principal(entity.RoleInventoryOfficer, nil), access.RoleInventoryOfficer},
		{"sin registro", access.Principal{UserID: "u"}, access.RoleNone},
		{"rol desconocido falla cerrado", principal("janitor", strPtr(branchA)), access.RoleNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, access.ResolveRole(tc.p))
		})
	}
}

func TestParseRole_RechazaDesconocido(t *testing.T) {
	_, err := access.ParseRole("owner")
	require.Error(t, err)

	r, err := access.ParseRole("branch_manager")
	require.NoError(t, err)
	assert.Equal(t, access.RoleBranchManager, r)
}

// ──────────────────────────────────────────────────────────────────────────────
// CanAccess
// ──────────────────────────────────────────────────────────────────────────────

func TestCanAccess_SuperAdminAccedeATodo(t *testing.T) {
	admins := []access.Principal{
		superuser(),
		principal(entity.RoleSuperAdmin, nil),
		principal(entity.RoleSuperAdmin, strPtr(branchB)),
	}
	for _, p := range admins {
		for _, target := range allTargets {
			assert.True(t, access.CanAccess(p, target))
		}
	}
}

func TestCanAccess_RolConSucursalSoloSuSucursal(t *testing.T) {
	for _, role := range []string{entity.RoleBranchManager, entity.RoleInventoryOfficer} {
		p := principal(role, strPtr(branchA))
		assert.True(t, access.CanAccess(p, branchTargetA), role)
		assert.True(t, access.CanAccess(p, assetInA), role)
		assert.False(t, access.CanAccess(p, branchTargetB), role)
		assert.False(t, access.CanAccess(p, assetInB), role)
	}
}

func TestCanAccess_SinSucursalFallaCerrado(t *testing.T) {
	principals := []access.Principal{
		principal(entity.RoleBranchManager, nil),
		principal(entity.RoleInventoryOfficer, strPtr("")),
		{UserID: "sin-rol"},
	}
	for _, p := range principals {
		for _, target := range allTargets {
			assert.False(t, access.CanAccess(p, target))
		}
		assert.True(t, access.AssetScope(p).Empty())
	}
}

func TestCanAccess_OficialDeOtraSucursalNoVeActivo(t *testing.T) {
	officer := principal(entity.RoleInventoryOfficer, strPtr(branchA))
	assert.False(t, access.CanAccess(officer, assetInB))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reglas por acción
// ──────────────────────────────────────────────────────────────────────────────

func TestPermisosPorAccion(t *testing.T) {
	admin := superuser()
	manager := principal(entity.RoleBranchManager, strPtr(branchA))
	officer := principal(entity.RoleInventoryOfficer, strPtr(branchA))
	none := access.Principal{UserID: "u"}

	type row struct {
		name                          string
		p                             access.Principal
		listBranches, manageBranches  bool
		addAsset, deleteAsset, listAs bool
	}
	rows := []row{
		{"super_admin", admin, true, true, true, true, true},
		{"branch_manager", manager, true, false, true, false, true},
		{"inventory_officer", officer, false, false, true, false, true},
		{"sin rol", none, false, false, false, false, true},
	}
	for _, r := range rows {
		t.Run(r.name, func(t *testing.T) {
			assert.Equal(t, r.listBranches, access.CanListBranches(r.p))
			assert.Equal(t, r.manageBranches, access.CanManageBranches(r.p))
			assert.Equal(t, r.addAsset, access.CanAddAsset(r.p))
			assert.Equal(t, r.deleteAsset, access.CanDeleteAsset(r.p))
			assert.Equal(t, r.listAs, access.CanListAssets(r.p))
			assert.True(t, access.CanViewDashboard(r.p))
		})
	}
}

func TestAssetScope(t *testing.T) {
	assert.Equal(t, access.Scope{All: true}, access.AssetScope(superuser()))

	s := access.AssetScope(principal(entity.RoleBranchManager, strPtr(branchA)))
	assert.Equal(t, branchA, s.BranchID)
	assert.True(t, s.Allows(branchA))
	assert.False(t, s.Allows(branchB))
	assert.False(t, s.Empty())

	empty := access.AssetScope(principal(entity.RoleInventoryOfficer, nil))
	assert.True(t, empty.Empty())
	assert.False(t, empty.Allows(branchA))
}

func TestRequireBranch(t *testing.T) {
	_, err := access.RequireBranch(principal(entity.RoleBranchManager, nil))
	assert.ErrorIs(t, err, domain.ErrBranchRequired)

	home, err := access.RequireBranch(principal(entity.RoleInventoryOfficer, strPtr(branchB)))
	require.NoError(t, err)
	assert.Equal(t, branchB, home)

	home, err = access.RequireBranch(superuser())
	require.NoError(t, err)
	assert.Empty(t, home)
}
