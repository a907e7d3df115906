// Package seed carga datos de ejemplo: tres sucursales, un usuario por rol y activos.
// Es idempotente: sucursales por código, usuarios por username y activos por número de serie.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Fritz-nvm/management-system/internal/application/auth"
	"github.com/Fritz-nvm/management-system/internal/application/dto"
	"github.com/Fritz-nvm/management-system/internal/application/usecase"
	"github.com/Fritz-nvm/management-system/internal/domain/access"
	"github.com/Fritz-nvm/management-system/internal/domain/entity"
	"github.com/Fritz-nvm/management-system/internal/domain/repository"
)

// AdminUsername usuario super_admin dueño de los activos sembrados.
const AdminUsername = "admin@hospital.cm"

// Result cantidades creadas en esta corrida (lo existente no se cuenta).
type Result struct {
	Branches int
	Users    int
	Assets   int
}

// Seeder orquesta la carga usando los mismos casos de uso que la aplicación.
type Seeder struct {
	branchRepo repository.BranchRepository
	userRepo   repository.UserRepository
	assetRepo  repository.AssetRepository
	branchUC   *usecase.BranchUseCase
	assetUC    *usecase.AssetUseCase
	authUC     *auth.AuthUseCase
	log        zerolog.Logger
	now        func() time.Time
}

// NewSeeder construye el seeder.
func NewSeeder(
	branchRepo repository.BranchRepository,
	userRepo repository.UserRepository,
	assetRepo repository.AssetRepository,
	branchUC *usecase.BranchUseCase,
	assetUC *usecase.AssetUseCase,
	authUC *auth.AuthUseCase,
	log zerolog.Logger,
) *Seeder {
	return &Seeder{
		branchRepo: branchRepo,
		userRepo:   userRepo,
		assetRepo:  assetRepo,
		branchUC:   branchUC,
		assetUC:    assetUC,
		authUC:     authUC,
		log:        log,
		now:        time.Now,
	}
}

// WithClock reemplaza el reloj usado para las fechas de compra (tests).
func (s *Seeder) WithClock(clock func() time.Time) *Seeder {
	cp := *s
	cp.now = clock
	return &cp
}

// Run crea lo que falte. Puede ejecutarse varias veces.
func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	res := &Result{}
	system := access.Principal{UserID: "seed", Username: "seed", IsSuperuser: true}

	for _, form := range sampleBranches {
		existing, err := s.branchRepo.GetByCode(ctx, form.Code)
		if err != nil {
			return nil, fmt.Errorf("buscar sucursal %s: %w", form.Code, err)
		}
		if existing != nil {
			continue
		}
		if _, err := s.branchUC.Create(ctx, system, form); err != nil {
			return nil, fmt.Errorf("crear sucursal %s: %w", form.Code, err)
		}
		s.log.Info().Str("code", form.Code).Msg("sucursal sembrada")
		res.Branches++
	}

	for _, req := range sampleUsers {
		existing, err := s.userRepo.GetByUsername(ctx, req.Username)
		if err != nil {
			return nil, fmt.Errorf("buscar usuario %s: %w", req.Username, err)
		}
		if existing != nil {
			continue
		}
		if _, err := s.authUC.CreateUser(ctx, req); err != nil {
			return nil, fmt.Errorf("crear usuario %s: %w", req.Username, err)
		}
		s.log.Info().Str("username", req.Username).Str("role", req.Role).Msg("usuario sembrado")
		res.Users++
	}

	admin, err := s.userRepo.GetByUsername(ctx, AdminUsername)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario %s: %w", AdminUsername, err)
	}
	if admin == nil {
		return nil, fmt.Errorf("usuario %s no existe", AdminUsername)
	}
	owner, err := s.authUC.ResolvePrincipal(ctx, admin.ID)
	if err != nil {
		return nil, fmt.Errorf("principal de %s: %w", AdminUsername, err)
	}

	base := s.now().AddDate(0, 0, -60)
	for _, sa := range sampleAssets {
		existing, err := s.assetRepo.GetBySerialNumber(ctx, sa.form.SerialNumber)
		if err != nil {
			return nil, fmt.Errorf("buscar activo %s: %w", sa.form.SerialNumber, err)
		}
		if existing != nil {
			continue
		}
		branch, err := s.branchRepo.GetByCode(ctx, sa.branchCode)
		if err != nil {
			return nil, fmt.Errorf("buscar sucursal %s: %w", sa.branchCode, err)
		}
		if branch == nil {
			return nil, fmt.Errorf("sucursal %s no existe", sa.branchCode)
		}
		form := sa.form
		form.Branch = branch.ID
		form.PurchaseDate = base.AddDate(0, 0, sa.daysAfter).Format("2006-01-02")
		a, err := s.assetUC.Create(ctx, owner, form, nil)
		if err != nil {
			return nil, fmt.Errorf("crear activo %s: %w", sa.form.SerialNumber, err)
		}
		s.log.Info().Str("asset_id", a.AssetID).Str("name", a.Name).Msg("activo sembrado")
		res.Assets++
	}
	return res, nil
}

func branchForm(name, code, city, region, manager, phone string) dto.BranchForm {
	return dto.BranchForm{
		Name: name, Code: code, City: city, Region: region,
		ManagerName: manager, ManagerPhone: phone, Status: entity.BranchStatusActive,
	}
}

var sampleBranches = []dto.BranchForm{
	branchForm("Yaoundé Central Hospital", "YAO-CH-001", "Yaoundé", "Centre", "Dr. Samuel Fokoua", "+237 699 123 456"),
	branchForm("Douala General Hospital", "DLA-GH-002", "Douala", "Littoral", "Dr. Alice Mbelle", "+237 699 234 567"),
	branchForm("Bamenda Regional Hospital", "BAM-RH-003", "Bamenda", "North-West", "Dr. Joseph Nkosi", "+237 699 345 678"),
}

var sampleUsers = []dto.CreateUserRequest{
	{Username: AdminUsername, Email: AdminUsername, Password: "Admin123!", IsSuperuser: true, Role: entity.RoleSuperAdmin},
	{Username: "manager@hospital.cm", Email: "manager@hospital.cm", Password: "Manager123!", Role: entity.RoleBranchManager, BranchCode: "YAO-CH-001"},
	{Username: "officer@hospital.cm", Email: "officer@hospital.cm", Password: "Officer123!", Role: entity.RoleInventoryOfficer, BranchCode: "YAO-CH-001"},
}

type sampleAsset struct {
	branchCode string
	daysAfter  int
	form       dto.AssetForm
}

func asset(branch string, days int, name, category, brand, model, serial, dept, cost, supplier, status, condition, custodian, phone string) sampleAsset {
	return sampleAsset{
		branchCode: branch,
		daysAfter:  days,
		form: dto.AssetForm{
			Name: name, Category: category, Brand: brand, Model: model, SerialNumber: serial,
			Department: dept, PurchaseCost: cost, SupplierName: supplier,
			Status: status, Condition: condition, CustodianName: custodian, CustodianPhone: phone,
		},
	}
}

var sampleAssets = []sampleAsset{
	asset("YAO-CH-001", 30, "Ultrasound Machine", entity.CategoryMedicalEquipment, "GE", "Logiq E9", "US-001-GE", "radiology", "45000000", "MediTech Solutions", entity.AssetStatusInUse, entity.ConditionExcellent, "Dr. Yannick Mensah", "+237 699 111 111"),
	asset("YAO-CH-001", 15, "X-Ray Machine", entity.CategoryMedicalEquipment, "Siemens", "AXIOM", "XR-001-SIE", "radiology", "125000000", "Medical Imaging Ltd", entity.AssetStatusInUse, entity.ConditionGood, "Dr. Marc Anye", "+237 699 111 222"),
	asset("DLA-GH-002", 45, "Patient Monitor", entity.CategoryMedicalEquipment, "Philips", "IntelliVue", "PM-001-PHI", "emergency", "8500000", "Healthcare Supplies Co", entity.AssetStatusAvailable, entity.ConditionExcellent, "Nurse Amandine Koa", "+237 699 222 333"),
	asset("YAO-CH-001", 60, "Toyota Ambulance", entity.CategoryVehicle, "Toyota", "Hiace", "TYT-AMB-001", "emergency", "35000000", "Toyota Motors Cameroon", entity.AssetStatusInUse, entity.ConditionGood, "Driver Jean Claude", "+237 699 333 444"),
	asset("DLA-GH-002", 50, "Nissan Ambulance", entity.CategoryVehicle, "Nissan", "NV200", "NIS-AMB-001", "emergency", "28000000", "Nissan Distributors", entity.AssetStatusMaintenance, entity.ConditionFair, "Driver Franck Tala", "+237 699 444 555"),
	asset("BAM-RH-003", 40, "Cummins Generator", entity.CategoryGenerator, "Cummins", "C250", "CUM-GEN-001", "maintenance", "18000000", "Power Solutions Ltd", entity.AssetStatusInUse, entity.ConditionGood, "Engineer Emmanuel Che", "+237 699 555 666"),
	asset("DLA-GH-002", 35, "Perkins Generator", entity.CategoryGenerator, "Perkins", "GP75", "PER-GEN-001", "maintenance", "22000000", "Power Solutions Ltd", entity.AssetStatusAvailable, entity.ConditionExcellent, "Technician Peter Molua", "+237 699 666 777"),
	asset("YAO-CH-001", 25, "Hospital Beds", entity.CategoryFurniture, "Standard", "Adjustable", "HB-BEDS-100", "surgery", "5500000", "Furniture Suppliers", entity.AssetStatusInUse, entity.ConditionGood, "Mr. Henry Teke", "+237 699 777 888"),
	asset("YAO-CH-001", 20, "Dell Computer", entity.CategoryComputer, "Dell", "OptiPlex 7090", "DEL-COMP-001", "administration", "1200000", "Tech Store", entity.AssetStatusInUse, entity.ConditionExcellent, "Ms. Victoria Bah", "+237 699 888 999"),
	asset("BAM-RH-003", 10, "Autoclave", entity.CategoryMedicalEquipment, "Tuttnauer", "A3850", "AUTO-STE-001", "laboratory", "8000000", "Laboratory Equipment", entity.AssetStatusInUse, entity.ConditionExcellent, "Technician Rose Nyanga", "+237 699 999 000"),
}
