package entity

import "time"

// Roles almacenados en user_roles.
const (
	RoleSuperAdmin       = "super_admin"
	RoleBranchManager    = "branch_manager"
	RoleInventoryOfficer = "inventory_officer"
)

var Roles = []Choice{
	{Value: RoleSuperAdmin, Label: "Super Admin"},
	{Value: RoleBranchManager, Label: "Branch Manager"},
	{Value: RoleInventoryOfficer, Label: "Inventory Officer"},
}

// User representa un usuario autenticable del sistema.
// IsSuperuser es el flag de plataforma: domina sobre cualquier rol almacenado.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	IsSuperuser  bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRole vínculo uno a uno usuario -> rol + sucursal opcional.
// La sucursal es semánticamente obligatoria para roles distintos de super_admin,
// pero eso se valida en la política de acceso, no en el esquema.
type UserRole struct {
	UserID   string
	Role     string
	BranchID *string
}
