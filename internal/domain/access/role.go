// Package access contiene el resolvedor de roles y la política de acceso por sucursal.
// Es lógica pura de dominio: no consulta la base de datos; recibe el Principal ya cargado.
package access

import (
	"fmt"

	"github.com/Fritz-nvm/management-system/internal/domain/entity"
)

// Role nivel de capacidad de un principal. Conjunto cerrado.
type Role string

const (
	RoleNone             Role = ""
	RoleSuperAdmin       Role = entity.RoleSuperAdmin
	RoleBranchManager    Role = entity.RoleBranchManager
	RoleInventoryOfficer Role = entity.RoleInventoryOfficer
)

// ParseRole convierte el valor almacenado en un Role. Rechaza valores desconocidos.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSuperAdmin, RoleBranchManager, RoleInventoryOfficer:
		return Role(s), nil
	case RoleNone:
		return RoleNone, nil
	}
	return RoleNone, fmt.Errorf("rol desconocido: %q", s)
}

// Label etiqueta visible del rol.
func (r Role) Label() string {
	if r == RoleNone {
		return "No Role"
	}
	return entity.LabelOf(entity.Roles, string(r))
}

// Principal actor autenticado de la petición actual.
// Se reconstruye en cada petición a partir del usuario y su UserRole.
type Principal struct {
	UserID      string
	Username    string
	IsSuperuser bool
	Assignment  *entity.UserRole // nil si el usuario no tiene UserRole
}

// ResolveRole el flag de superusuario domina; si no, el rol almacenado; si no hay registro, RoleNone.
// Un rol almacenado inválido se trata como RoleNone (falla cerrado).
func ResolveRole(p Principal) Role {
	if p.IsSuperuser {
		return RoleSuperAdmin
	}
	if p.Assignment == nil {
		return RoleNone
	}
	role, err := ParseRole(p.Assignment.Role)
	if err != nil {
		return RoleNone
	}
	return role
}

// Role atajo de ResolveRole.
func (p Principal) Role() Role { return ResolveRole(p) }

// HomeBranch devuelve la sucursal asignada al principal, si tiene.
func (p Principal) HomeBranch() (string, bool) {
	if p.Assignment == nil || p.Assignment.BranchID == nil || *p.Assignment.BranchID == "" {
		return "", false
	}
	return *p.Assignment.BranchID, true
}
