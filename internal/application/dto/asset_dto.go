package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Fritz-nvm/management-system/internal/domain"
	"github.com/Fritz-nvm/management-system/internal/domain/entity"
)

const (
	dateLayout = "2006-01-02"

	// NUMERIC(12,2): 10 dígitos enteros + 2 decimales.
	costMaxDigits   = 12
	costMaxDecimals = 2
)

// AssetForm campos editables de un activo (multipart/form-data).
// Branch solo se respeta para super_admin; para el resto la fija el caso de uso.
type AssetForm struct {
	Name           string `form:"name" validate:"required,max=200"`
	Category       string `form:"category" validate:"required,oneof=medical_equipment vehicle generator furniture computer other"`
	Brand          string `form:"brand" validate:"max=100"`
	Model          string `form:"model" validate:"max=100"`
	SerialNumber   string `form:"serial_number" validate:"required,max=150"`
	Branch         string `form:"branch" validate:"omitempty,uuid"`
	Department     string `form:"department" validate:"required,oneof=emergency surgery maternity pediatrics radiology laboratory administration maintenance other"`
	PurchaseDate   string `form:"purchase_date" validate:"required,datetime=2006-01-02"`
	PurchaseCost   string `form:"purchase_cost" validate:"required"`
	SupplierName   string `form:"supplier_name" validate:"required,max=200"`
	Status         string `form:"status" validate:"required,oneof=in_use available maintenance retired"`
	Condition      string `form:"condition" validate:"required,oneof=excellent good fair poor"`
	CustodianName  string `form:"custodian_name" validate:"required,max=150"`
	CustodianPhone string `form:"custodian_phone" validate:"required,max=20"`
}

// Normalize recorta espacios antes de validar.
func (f *AssetForm) Normalize() {
	for _, s := range []*string{
		&f.Name, &f.Category, &f.Brand, &f.Model, &f.SerialNumber, &f.Branch, &f.Department,
		&f.PurchaseDate, &f.PurchaseCost, &f.SupplierName, &f.Status, &f.Condition,
		&f.CustodianName, &f.CustodianPhone,
	} {
		*s = strings.TrimSpace(*s)
	}
}

// AssetInput formulario ya validado y con tipos de dominio.
type AssetInput struct {
	AssetForm
	PurchaseDate time.Time
	PurchaseCost decimal.Decimal
}

// Parse valida el formulario y convierte fecha y costo.
// Devuelve *domain.ValidationError con todos los campos inválidos.
func (f AssetForm) Parse() (*AssetInput, error) {
	f.Normalize()
	errs := domain.NewValidationError()
	if err := Validate(f); err != nil {
		fields := domain.FieldErrors(err)
		if fields == nil {
			return nil, err
		}
		for k, v := range fields {
			errs.Add(k, v)
		}
	}

	in := &AssetInput{AssetForm: f}
	if _, bad := errs.Fields["purchase_date"]; !bad {
		d, err := time.Parse(dateLayout, f.PurchaseDate)
		if err != nil {
			errs.Add("purchase_date", "Enter a valid date.")
		}
		in.PurchaseDate = d
	}
	if _, bad := errs.Fields["purchase_cost"]; !bad {
		cost, msg := parseCost(f.PurchaseCost)
		if msg != "" {
			errs.Add("purchase_cost", msg)
		}
		in.PurchaseCost = cost
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}
	return in, nil
}

// parseCost acepta un decimal no negativo que quepa en NUMERIC(12,2).
func parseCost(s string) (decimal.Decimal, string) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, "Enter a number."
	}
	if d.IsNegative() {
		return decimal.Zero, "Ensure this value is greater than or equal to 0."
	}
	if -d.Exponent() > costMaxDecimals && !d.Equal(d.Round(costMaxDecimals)) {
		return decimal.Zero, "Ensure that there are no more than 2 decimal places."
	}
	intDigits := len(d.Truncate(0).String())
	if intDigits > costMaxDigits-costMaxDecimals {
		return decimal.Zero, "Ensure that there are no more than 12 digits in total."
	}
	return d.Round(costMaxDecimals), ""
}

// Apply copia el formulario sobre la entidad; la sucursal la decide el caso de uso.
func (in *AssetInput) Apply(a *entity.Asset) {
	a.Name = in.Name
	a.Category = in.Category
	a.Brand = in.Brand
	a.Model = in.Model
	a.SerialNumber = in.SerialNumber
	a.Department = in.Department
	a.PurchaseDate = in.PurchaseDate
	a.PurchaseCost = in.PurchaseCost
	a.SupplierName = in.SupplierName
	a.Status = in.Status
	a.Condition = in.Condition
	a.CustodianName = in.CustodianName
	a.CustodianPhone = in.CustodianPhone
}

// AssetFormFrom precarga el formulario de edición; sin entidad devuelve los valores por defecto.
func AssetFormFrom(a *entity.Asset) AssetForm {
	if a == nil {
		return AssetForm{Status: entity.AssetStatusAvailable, Condition: entity.ConditionGood}
	}
	return AssetForm{
		Name:           a.Name,
		Category:       a.Category,
		Brand:          a.Brand,
		Model:          a.Model,
		SerialNumber:   a.SerialNumber,
		Branch:         a.BranchID,
		Department:     a.Department,
		PurchaseDate:   a.PurchaseDate.Format(dateLayout),
		PurchaseCost:   a.PurchaseCost.StringFixed(2),
		SupplierName:   a.SupplierName,
		Status:         a.Status,
		Condition:      a.Condition,
		CustodianName:  a.CustodianName,
		CustodianPhone: a.CustodianPhone,
	}
}

// AssetListQuery parámetros de búsqueda del listado (?search=&branch=&status=).
type AssetListQuery struct {
	Search string `query:"search"`
	Branch string `query:"branch"`
	Status string `query:"status"`
}

// AssetListResult datos del listado de activos.
type AssetListResult struct {
	Assets   []*entity.Asset
	Branches []*entity.Branch // opciones del filtro por sucursal
	Query    AssetListQuery
	// CanFilterBranch solo super_admin puede filtrar por sucursal.
	CanFilterBranch bool
}
