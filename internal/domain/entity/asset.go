package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de activo.
const (
	CategoryMedicalEquipment = "medical_equipment"
	CategoryVehicle          = "vehicle"
	CategoryGenerator        = "generator"
	CategoryFurniture        = "furniture"
	CategoryComputer         = "computer"
	CategoryOther            = "other"
)

// Estados de ciclo de vida del activo.
const (
	AssetStatusInUse       = "in_use"
	AssetStatusAvailable   = "available"
	AssetStatusMaintenance = "maintenance"
	AssetStatusRetired     = "retired"
)

// Condición física del activo.
const (
	ConditionExcellent = "excellent"
	ConditionGood      = "good"
	ConditionFair      = "fair"
	ConditionPoor      = "poor"
)

var AssetCategories = []Choice{
	{Value: CategoryMedicalEquipment, Label: "Medical Equipment"},
	{Value: CategoryVehicle, Label: "Vehicle"},
	{Value: CategoryGenerator, Label: "Generator"},
	{Value: CategoryFurniture, Label: "Furniture"},
	{Value: CategoryComputer, Label: "Computer"},
	{Value: CategoryOther, Label: "Other"},
}

var Departments = []Choice{
	{Value: "emergency", Label: "Emergency"},
	{Value: "surgery", Label: "Surgery"},
	{Value: "maternity", Label: "Maternity"},
	{Value: "pediatrics", Label: "Pediatrics"},
	{Value: "radiology", Label: "Radiology"},
	{Value: "laboratory", Label: "Laboratory"},
	{Value: "administration", Label: "Administration"},
	{Value: "maintenance", Label: "Maintenance"},
	{Value: "other", Label: "Other"},
}

var AssetStatuses = []Choice{
	{Value: AssetStatusInUse, Label: "In Use"},
	{Value: AssetStatusAvailable, Label: "Available"},
	{Value: AssetStatusMaintenance, Label: "Under Maintenance"},
	{Value: AssetStatusRetired, Label: "Retired"},
}

var AssetConditions = []Choice{
	{Value: ConditionExcellent, Label: "Excellent"},
	{Value: ConditionGood, Label: "Good"},
	{Value: ConditionFair, Label: "Fair"},
	{Value: ConditionPoor, Label: "Poor"},
}

// Asset representa un equipo o bien rastreable de una sucursal.
// AssetID lo asigna el sistema una sola vez al persistir y nunca se modifica.
// PurchaseCost es NUMERIC(12,2).
type Asset struct {
	ID             string
	AssetID        string // AST-YYYY-NNNNN
	Name           string
	Category       string
	Brand          string
	Model          string
	SerialNumber   string // único, lo ingresa el usuario
	BranchID       string
	Department     string
	PurchaseDate   time.Time
	PurchaseCost   decimal.Decimal
	SupplierName   string
	Status         string
	Condition      string
	CustodianName  string
	CustodianPhone string
	ManualPath     string  // ruta relativa del manual subido, vacío si no hay
	CreatedBy      *string // nil si el usuario creador fue eliminado
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Solo lectura: llenados por las consultas con JOIN a branches.
	BranchName string
	BranchCode string
}

// OwningBranchID el ámbito de acceso de un activo es su sucursal.
func (a *Asset) OwningBranchID() string { return a.BranchID }

// BranchDisplay formato "Nombre (CODE)" de la sucursal dueña.
func (a *Asset) BranchDisplay() string {
	if a.BranchCode == "" {
		return a.BranchName
	}
	return a.BranchName + " (" + a.BranchCode + ")"
}

func (a *Asset) CategoryLabel() string   { return LabelOf(AssetCategories, a.Category) }
func (a *Asset) DepartmentLabel() string { return LabelOf(Departments, a.Department) }
func (a *Asset) StatusLabel() string     { return LabelOf(AssetStatuses, a.Status) }
func (a *Asset) ConditionLabel() string  { return LabelOf(AssetConditions, a.Condition) }
