package dto

import (
	"strings"

	"github.com/Fritz-nvm/management-system/internal/domain/entity"
)

// BranchForm campos editables de una sucursal (form-urlencoded).
type BranchForm struct {
	Name         string `form:"name" validate:"required,max=200"`
	Code         string `form:"code" validate:"required,max=50"`
	City         string `form:"city" validate:"required,max=100"`
	Region       string `form:"region" validate:"required,max=100"`
	ManagerName  string `form:"manager_name" validate:"required,max=150"`
	ManagerPhone string `form:"manager_phone" validate:"required,max=20"`
	Status       string `form:"status" validate:"required,oneof=active inactive"`
}

// Normalize recorta espacios antes de validar.
func (f *BranchForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Code = strings.TrimSpace(f.Code)
	f.City = strings.TrimSpace(f.City)
	f.Region = strings.TrimSpace(f.Region)
	f.ManagerName = strings.TrimSpace(f.ManagerName)
	f.ManagerPhone = strings.TrimSpace(f.ManagerPhone)
	f.Status = strings.TrimSpace(f.Status)
}

// Apply copia el formulario sobre la entidad.
func (f BranchForm) Apply(b *entity.Branch) {
	b.Name = f.Name
	b.Code = f.Code
	b.City = f.City
	b.Region = f.Region
	b.ManagerName = f.ManagerName
	b.ManagerPhone = f.ManagerPhone
	b.Status = f.Status
}

// BranchFormFrom precarga el formulario de edición; sin entidad devuelve los valores por defecto.
func BranchFormFrom(b *entity.Branch) BranchForm {
	if b == nil {
		return BranchForm{Status: entity.BranchStatusActive}
	}
	return BranchForm{
		Name:         b.Name,
		Code:         b.Code,
		City:         b.City,
		Region:       b.Region,
		ManagerName:  b.ManagerName,
		ManagerPhone: b.ManagerPhone,
		Status:       b.Status,
	}
}
