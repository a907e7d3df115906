package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fritz-nvm/management-system/internal/application/analytics"
	"github.com/Fritz-nvm/management-system/internal/application/auth"
	"github.com/Fritz-nvm/management-system/internal/application/dto"
	"github.com/Fritz-nvm/management-system/internal/application/reporting"
	"github.com/Fritz-nvm/management-system/internal/application/usecase"
	"github.com/Fritz-nvm/management-system/internal/domain/access"
	"github.com/Fritz-nvm/management-system/internal/domain/assetid"
	"github.com/Fritz-nvm/management-system/internal/domain/entity"
	"github.com/Fritz-nvm/management-system/internal/infrastructure/xlsx"
	apphttp "github.com/Fritz-nvm/management-system/internal/interfaces/http"
	"github.com/Fritz-nvm/management-system/internal/testutil/memrepo"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret = "test-secret-key-for-unit-tests"
	branchA    = "6f1c2a1e-3b7d-4c55-9a7e-0c1d2e3f4a01"
	branchB    = "6f1c2a1e-3b7d-4c55-9a7e-0c1d2e3f4a02"
)

type failingPDF struct{}

func (failingPDF) AssetReportPDF(context.Context, *reporting.AssetReport) ([]byte, error) {
	return nil, errors.New("sin fuentes")
}

type testEnv struct {
	app      *fiber.App
	authUC   *auth.AuthUseCase
	assetUC  *usecase.AssetUseCase
	assets   *memrepo.Assets
	branches *memrepo.Branches
}

// newTestEnv app completa sobre repositorios en memoria, con usuarios de cada rol.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	branches := memrepo.NewBranches(
		&entity.Branch{ID: branchA, Code: "YAO-001", Name: "Yaoundé Central", City: "Yaoundé", Region: "Centre", Status: entity.BranchStatusActive},
		&entity.Branch{ID: branchB, Code: "DLA-002", Name: "Douala General", City: "Douala", Region: "Littoral", Status: entity.BranchStatusActive},
	)
	assets := memrepo.NewAssets(branches)
	users := memrepo.NewUsers()
	gen := assetid.NewGenerator(assets).WithClock(func() time.Time {
		return time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	})

	authUC := auth.NewAuthUseCase(users, branches, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"})
	assetUC := usecase.NewAssetUseCase(assets, branches, memrepo.Tx{Branches: branches, Assets: assets}, gen, memrepo.NewManuals(), zerolog.Nop())
	exportUC := reporting.NewExportUseCase(assets, failingPDF{}, xlsx.NewExcelizeGenerator(), zerolog.Nop())

	ctx := context.Background()
	for _, req := range []dto.CreateUserRequest{
		{Username: "admin", Password: "admin1234", IsSuperuser: true, Role: entity.RoleSuperAdmin},
		{Username: "manager", Password: "manager123", Role: entity.RoleBranchManager, BranchCode: "YAO-001"},
		{Username: "officer", Password: "officer123", Role: entity.RoleInventoryOfficer, BranchCode: "YAO-001"},
	} {
		_, err := authUC.CreateUser(ctx, req)
		require.NoError(t, err)
	}

	app := fiber.New(fiber.Config{
		Views:        apphttp.NewViews(),
		ErrorHandler: apphttp.ErrorHandler(zerolog.Nop()),
	})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		DashboardUC: analytics.NewDashboardUseCase(assets, branches),
		BranchUC:    usecase.NewBranchUseCase(branches, assets, zerolog.Nop()),
		AssetUC:     assetUC,
		ExportUC:    exportUC,
		Session:     apphttp.SessionConfig{Secret: testSecret, ExpMinutes: 60},
		Log:         zerolog.Nop(),
	})
	return &testEnv{app: app, authUC: authUC, assetUC: assetUC, assets: assets, branches: branches}
}

// session token de sesión de un usuario sembrado.
func (e *testEnv) session(t *testing.T, username, password string) string {
	t.Helper()
	res, err := e.authUC.Login(context.Background(), dto.LoginRequest{Username: username, Password: password})
	require.NoError(t, err)
	return res.Token
}

func (e *testEnv) do(t *testing.T, req *http.Request, token string) *http.Response {
	t.Helper()
	if token != "" {
		req.AddCookie(&http.Cookie{Name: apphttp.SessionCookie, Value: token})
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func get(path string) *http.Request {
	return httptest.NewRequest(http.MethodGet, path, nil)
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return req
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func flashOf(resp *http.Response) string {
	for _, c := range resp.Cookies() {
		if c.Name == "flash" {
			v, _ := url.QueryUnescape(c.Value)
			return v
		}
	}
	return ""
}

func assetValues(serial, branch string) url.Values {
	return url.Values{
		"name":            {"X-Ray Machine"},
		"category":        {entity.CategoryMedicalEquipment},
		"serial_number":   {serial},
		"branch":          {branch},
		"department":      {"radiology"},
		"purchase_date":   {"2025-06-01"},
		"purchase_cost":   {"2500000"},
		"supplier_name":   {"MedSupply Cameroon"},
		"status":          {entity.AssetStatusInUse},
		"condition":       {entity.ConditionGood},
		"custodian_name":  {"Dr. Fokoua"},
		"custodian_phone": {"+237 677 000 111"},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth_SinSesion(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, get("/health"), "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRutasProtegidas_RedirigenALogin(t *testing.T) {
	env := newTestEnv(t)
	for _, path := range []string{"/", "/branches", "/assets", "/assets/export/xlsx"} {
		resp := env.do(t, get(path), "")
		assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/login", resp.Header.Get(fiber.HeaderLocation), path)
	}

	resp := env.do(t, get("/"), "token-basura")
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get(fiber.HeaderLocation))
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, get("/login"), "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.do(t, postForm("/login", url.Values{"username": {"admin"}, "password": {"mala"}}), "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Invalid username or password.")

	resp = env.do(t, postForm("/login", url.Values{"username": {"admin"}, "password": {"admin1234"}}), "")
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))
	var token string
	for _, c := range resp.Cookies() {
		if c.Name == apphttp.SessionCookie {
			token = c.Value
		}
	}
	require.NotEmpty(t, token)

	// con sesión, /login vuelve al dashboard
	resp = env.do(t, get("/login"), token)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))

	resp = env.do(t, get("/"), token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Super Admin")
}

func TestLogout_BorraLaSesion(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, get("/logout"), env.session(t, "officer", "officer123"))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get(fiber.HeaderLocation))
	for _, c := range resp.Cookies() {
		if c.Name == apphttp.SessionCookie {
			assert.Empty(t, c.Value)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Sucursales
// ──────────────────────────────────────────────────────────────────────────────

func TestBranches_PermisosPorRol(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, get("/branches"), env.session(t, "officer", "officer123"))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))
	assert.Equal(t, "error|You do not have permission to view branches.", flashOf(resp))

	manager := env.session(t, "manager", "manager123")
	resp = env.do(t, get("/branches"), manager)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	html := body(t, resp)
	assert.Contains(t, html, "YAO-001")
	assert.Contains(t, html, "DLA-002")

	resp = env.do(t, get("/branches/add"), manager)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/branches", resp.Header.Get(fiber.HeaderLocation))
	assert.Equal(t, "error|Only Super Admins can add branches.", flashOf(resp))

	resp = env.do(t, get("/branches/"+branchA+"/edit"), manager)
	assert.Equal(t, "error|Only Super Admins can edit branches.", flashOf(resp))
}

func TestBranches_AltaYValidacion(t *testing.T) {
	env := newTestEnv(t)
	admin := env.session(t, "admin", "admin1234")

	form := url.Values{
		"name": {"Bamenda Regional"}, "code": {"BAM-003"}, "city": {"Bamenda"}, "region": {"North West"},
		"manager_name": {"Dr. Ngwa"}, "manager_phone": {"+237 650 000 000"}, "status": {entity.BranchStatusActive},
	}
	resp := env.do(t, postForm("/branches/add", form), admin)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "success|Branch added successfully.", flashOf(resp))
	n, _ := env.branches.Count(context.Background())
	assert.Equal(t, 3, n)

	// código duplicado: formulario con error del campo
	resp = env.do(t, postForm("/branches/add", form), admin)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	form.Set("name", "")
	form.Set("code", "NEW-004")
	resp = env.do(t, postForm("/branches/add", form), admin)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body(t, resp), "This field is required.")
}

func TestBranches_BorradoBloqueadoConActivos(t *testing.T) {
	env := newTestEnv(t)
	admin := env.session(t, "admin", "admin1234")
	resp := env.do(t, postForm("/assets/add", assetValues("SN-1", branchA)), admin)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	resp = env.do(t, postForm("/branches/"+branchA+"/delete", nil), admin)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Contains(t, flashOf(resp), "error|")

	resp = env.do(t, postForm("/branches/"+branchB+"/delete", nil), admin)
	assert.Equal(t, "success|Branch deleted successfully.", flashOf(resp))
	n, _ := env.branches.Count(context.Background())
	assert.Equal(t, 1, n)
}

// ──────────────────────────────────────────────────────────────────────────────
// Activos
// ──────────────────────────────────────────────────────────────────────────────

func TestAssets_OficialQuedaEnSuSucursal(t *testing.T) {
	env := newTestEnv(t)
	officer := env.session(t, "officer", "officer123")

	resp := env.do(t, postForm("/assets/add", assetValues("SN-OF-1", branchB)), officer)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/assets", resp.Header.Get(fiber.HeaderLocation))
	assert.Equal(t, "success|Asset added successfully.", flashOf(resp))

	list, err := env.assets.List(context.Background(), usecase.ScopedFilter(adminPrincipal(), dto.AssetListQuery{}))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, branchA, list[0].BranchID)
	assert.Equal(t, "AST-2026-00001", list[0].AssetID)
}

func TestAssets_FormularioInvalido(t *testing.T) {
	env := newTestEnv(t)
	form := assetValues("SN-BAD", branchA)
	form.Set("purchase_cost", "-5")
	resp := env.do(t, postForm("/assets/add", form), env.session(t, "admin", "admin1234"))
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Ensure this value is greater than or equal to 0.")
	assert.Equal(t, 0, env.assets.Len())
}

func TestAssets_OtraSucursalEsNoEncontrado(t *testing.T) {
	env := newTestEnv(t)
	admin := env.session(t, "admin", "admin1234")
	officer := env.session(t, "officer", "officer123")
	require.Equal(t, fiber.StatusSeeOther, env.do(t, postForm("/assets/add", assetValues("SN-DLA", branchB)), admin).StatusCode)

	list, _ := env.assets.List(context.Background(), usecase.ScopedFilter(adminPrincipal(), dto.AssetListQuery{}))
	require.Len(t, list, 1)
	id := list[0].ID

	assert.Equal(t, fiber.StatusOK, env.do(t, get("/assets/"+id), admin).StatusCode)
	assert.Equal(t, fiber.StatusNotFound, env.do(t, get("/assets/"+id), officer).StatusCode)
	assert.Equal(t, fiber.StatusNotFound, env.do(t, get("/assets/"+id+"/edit"), officer).StatusCode)
	assert.Equal(t, fiber.StatusNotFound, env.do(t, get("/assets/no-existe"), admin).StatusCode)

	// el listado del oficial no incluye el activo de Douala
	resp := env.do(t, get("/assets"), officer)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotContains(t, body(t, resp), "SN-DLA")
}

func TestAssets_BorradoSoloSuperAdmin(t *testing.T) {
	env := newTestEnv(t)
	admin := env.session(t, "admin", "admin1234")
	manager := env.session(t, "manager", "manager123")
	require.Equal(t, fiber.StatusSeeOther, env.do(t, postForm("/assets/add", assetValues("SN-YAO", branchA)), admin).StatusCode)
	list, _ := env.assets.List(context.Background(), usecase.ScopedFilter(adminPrincipal(), dto.AssetListQuery{}))
	require.Len(t, list, 1)
	id := list[0].ID

	assert.Equal(t, fiber.StatusNotFound, env.do(t, get("/assets/"+id+"/delete"), manager).StatusCode)
	assert.Equal(t, fiber.StatusNotFound, env.do(t, postForm("/assets/"+id+"/delete", nil), manager).StatusCode)
	assert.Equal(t, 1, env.assets.Len())

	resp := env.do(t, postForm("/assets/"+id+"/delete", nil), admin)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "success|Asset deleted successfully.", flashOf(resp))
	assert.Equal(t, 0, env.assets.Len())
}

func TestExports(t *testing.T) {
	env := newTestEnv(t)
	admin := env.session(t, "admin", "admin1234")
	require.Equal(t, fiber.StatusSeeOther, env.do(t, postForm("/assets/add", assetValues("SN-X", branchA)), admin).StatusCode)

	resp := env.do(t, get("/assets/export/xlsx?status=in_use"), admin)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), reporting.XLSXFilename)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "spreadsheetml")

	resp = env.do(t, get("/assets/export/pdf"), admin)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Error generating PDF")
}

func adminPrincipal() access.Principal {
	return access.Principal{UserID: "admin-id", IsSuperuser: true}
}
