package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fritz-nvm/management-system/internal/application/dto"
	"github.com/Fritz-nvm/management-system/internal/domain"
)

func validAssetForm() dto.AssetForm {
	return dto.AssetForm{
		Name:           "X-Ray Machine",
		Category:       "medical_equipment",
		Brand:          "Siemens",
		Model:          "Multix",
		SerialNumber:   "SN-1",
		Department:     "radiology",
		PurchaseDate:   "2025-01-15",
		PurchaseCost:   "15000000.50",
		SupplierName:   "MedSupply",
		Status:         "in_use",
		Condition:      "good",
		CustodianName:  "Dr. Fokoua",
		CustodianPhone: "+237 699 123 456",
	}
}

func TestAssetForm_ParseValido(t *testing.T) {
	f := validAssetForm()
	f.Name = "  X-Ray Machine  "

	in, err := f.Parse()
	require.NoError(t, err)
	assert.Equal(t, "X-Ray Machine", in.Name)
	assert.Equal(t, "15000000.5", in.PurchaseCost.String())
	assert.Equal(t, 2025, in.PurchaseDate.Year())
}

func TestAssetForm_ParseReportaCamposInvalidos(t *testing.T) {
	f := validAssetForm()
	f.Name = ""
	f.Status = "lost"
	f.PurchaseDate = "15/01/2025"
	f.Branch = "not-a-uuid"

	_, err := f.Parse()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	fields := domain.FieldErrors(err)
	assert.Equal(t, "This field is required.", fields["name"])
	assert.Equal(t, "Select a valid choice.", fields["status"])
	assert.Equal(t, "Enter a valid date.", fields["purchase_date"])
	assert.Contains(t, fields, "branch")
	assert.NotContains(t, fields, "serial_number")
}

func TestAssetForm_CostoDecimal12_2(t *testing.T) {
	cases := map[string]bool{
		"0":             true,
		"9999999999.99": true,
		"12.500":        true,
		"10000000000":   false,
		"1.234":         false,
		"-5":            false,
		"abc":           false,
	}
	for cost, ok := range cases {
		f := validAssetForm()
		f.PurchaseCost = cost
		_, err := f.Parse()
		if ok {
			assert.NoError(t, err, cost)
		} else {
			assert.Contains(t, domain.FieldErrors(err), "purchase_cost", cost)
		}
	}
}

func TestBranchForm_Validate(t *testing.T) {
	f := dto.BranchForm{Name: "Yaoundé Central", Code: "YAO-001", City: "Yaoundé", Region: "Centre",
		ManagerName: "Dr. Samuel", ManagerPhone: "+237 699", Status: "active"}
	require.NoError(t, dto.Validate(f))

	f.Status = "closed"
	f.Code = ""
	fields := domain.FieldErrors(dto.Validate(f))
	assert.Contains(t, fields, "status")
	assert.Contains(t, fields, "code")
}
