package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Fritz-nvm/management-system/internal/application/dto"
	"github.com/Fritz-nvm/management-system/internal/domain"
	"github.com/Fritz-nvm/management-system/internal/domain/access"
	"github.com/Fritz-nvm/management-system/internal/domain/entity"
	"github.com/Fritz-nvm/management-system/internal/domain/repository"
	"github.com/Fritz-nvm/management-system/pkg/jwt"
)

// JWTConfig configuración para generación de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, principal por petición y alta de usuarios.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	branchRepo repository.BranchRepository
	jwtCfg     JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, branchRepo repository.BranchRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, branchRepo: branchRepo, jwtCfg: jwtCfg}
}

// Login verifica usuario/password y genera el token de sesión.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResult{Token: token, UserID: user.ID, Username: user.Username}, nil
}

// ResolvePrincipal recarga usuario y UserRole en cada petición; un cambio de rol aplica de inmediato.
func (uc *AuthUseCase) ResolvePrincipal(ctx context.Context, userID string) (access.Principal, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return access.Principal{}, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return access.Principal{}, err
	}
	if user == nil || !user.IsActive {
		return access.Principal{}, domain.ErrUnauthorized
	}
	role, err := uc.userRepo.GetRole(ctx, user.ID)
	if err != nil {
		return access.Principal{}, err
	}
	return access.Principal{
		UserID:      user.ID,
		Username:    user.Username,
		IsSuperuser: user.IsSuperuser,
		Assignment:  role,
	}, nil
}

// CreateUser alta de usuario con bcrypt y su UserRole.
// Los roles con ámbito de sucursal exigen BranchCode de una sucursal existente.
func (uc *AuthUseCase) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*entity.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	var branchID *string
	if in.BranchCode != "" {
		b, err := uc.branchRepo.GetByCode(ctx, in.BranchCode)
		if err != nil {
			return nil, err
		}
		if b == nil {
			return nil, &domain.FieldError{Field: "branch", Message: "unknown branch " + in.BranchCode, Err: domain.ErrNotFound}
		}
		branchID = &b.ID
	}
	if in.Role != entity.RoleSuperAdmin && !in.IsSuperuser && branchID == nil {
		return nil, domain.ErrBranchRequired
	}

	existing, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewDuplicateError("username", "A user with that username already exists.")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		IsSuperuser:  in.IsSuperuser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.CreateWithRole(ctx, user, &entity.UserRole{UserID: user.ID, Role: in.Role, BranchID: branchID}); err != nil {
		return nil, err
	}
	return user, nil
}
