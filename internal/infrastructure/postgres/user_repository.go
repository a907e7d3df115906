package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Fritz-nvm/management-system/internal/domain"
	"github.com/Fritz-nvm/management-system/internal/domain/entity"
	"github.com/Fritz-nvm/management-system/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, username, email, password_hash, is_superuser, is_active, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// CreateWithRole inserta el usuario y su UserRole en la misma transacción.
func (r *UserRepo) CreateWithRole(ctx context.Context, u *entity.User, ur *entity.UserRole) error {
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repo := NewUserRepository(tx)
	if err := repo.create(ctx, u); err != nil {
		return err
	}
	if err := repo.upsertRole(ctx, ur); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *UserRepo) create(ctx context.Context, u *entity.User) error {
	query := `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Username, u.Email, u.PasswordHash, u.IsSuperuser, u.IsActive, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if _, ok := isUniqueViolation(err); ok {
			return domain.NewDuplicateError("username", "A user with that username already exists.")
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByUsername obtiene un usuario por nombre de usuario.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsSuperuser, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// GetRole obtiene el UserRole del usuario; (nil, nil) si no tiene.
func (r *UserRepo) GetRole(ctx context.Context, userID string) (*entity.UserRole, error) {
	var ur entity.UserRole
	err := r.q.QueryRow(ctx,
		`SELECT user_id, role, branch_id FROM user_roles WHERE user_id = $1`, userID,
	).Scan(&ur.UserID, &ur.Role, &ur.BranchID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user role: %w", err)
	}
	return &ur, nil
}

// upsertRole crea o reemplaza el UserRole (uno por usuario).
func (r *UserRepo) upsertRole(ctx context.Context, ur *entity.UserRole) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO user_roles (user_id, role, branch_id) VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role, branch_id = EXCLUDED.branch_id`,
		ur.UserID, ur.Role, ur.BranchID,
	)
	if err != nil {
		return fmt.Errorf("upsert user role: %w", err)
	}
	return nil
}
