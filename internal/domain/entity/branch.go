package entity

import "time"

// Estados válidos para Branch.
const (
	BranchStatusActive   = "active"
	BranchStatusInactive = "inactive"
)

// BranchStatuses lista ordenada de estados con su etiqueta visible.
var BranchStatuses = []Choice{
	{Value: BranchStatusActive, Label: "Active"},
	{Value: BranchStatusInactive, Label: "Inactive"},
}

// Branch representa un hospital o sede física dueña de activos y personal.
// Code es único y en la práctica no cambia después de creado.
type Branch struct {
	ID           string
	Code         string
	Name         string
	City         string
	Region       string
	ManagerName  string
	ManagerPhone string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OwningBranchID una sucursal es su propio ámbito de acceso.
func (b *Branch) OwningBranchID() string { return b.ID }

// DisplayName formato "Nombre (CODE)" usado en listados y exportaciones.
func (b *Branch) DisplayName() string {
	return b.Name + " (" + b.Code + ")"
}
