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

var _ repository.BranchRepository = (*BranchRepo)(nil)

const branchColumns = `id, code, name, city, region, manager_name, manager_phone, status, created_at, updated_at`

// BranchRepo implementación del puerto BranchRepository sobre PostgreSQL (usable con pool o tx).
type BranchRepo struct {
	q Querier
}

// NewBranchRepository construye el adaptador de persistencia para sucursales. Pasar pool o tx (Querier).
func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

// Create persiste una nueva sucursal. Code duplicado -> FieldError(code).
func (r *BranchRepo) Create(ctx context.Context, b *entity.Branch) error {
	query := `
		INSERT INTO branches (` + branchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.Code, b.Name, b.City, b.Region, b.ManagerName, b.ManagerPhone, b.Status,
		b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if _, ok := isUniqueViolation(err); ok {
			return domain.NewDuplicateError("code", "Branch with this Code already exists.")
		}
		return fmt.Errorf("insert branch: %w", err)
	}
	return nil
}

// GetByID obtiene una sucursal por ID.
func (r *BranchRepo) GetByID(ctx context.Context, id string) (*entity.Branch, error) {
	return r.getOne(ctx, `SELECT `+branchColumns+` FROM branches WHERE id = $1`, id)
}

// GetByCode obtiene una sucursal por código.
func (r *BranchRepo) GetByCode(ctx context.Context, code string) (*entity.Branch, error) {
	return r.getOne(ctx, `SELECT `+branchColumns+` FROM branches WHERE code = $1`, code)
}

func (r *BranchRepo) getOne(ctx context.Context, query string, arg any) (*entity.Branch, error) {
	b, err := scanBranch(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return b, nil
}

// Update actualiza una sucursal existente.
func (r *BranchRepo) Update(ctx context.Context, b *entity.Branch) error {
	query := `
		UPDATE branches
		SET code = $2, name = $3, city = $4, region = $5, manager_name = $6,
		    manager_phone = $7, status = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		b.ID, b.Code, b.Name, b.City, b.Region, b.ManagerName, b.ManagerPhone, b.Status, b.UpdatedAt,
	)
	if err != nil {
		if _, ok := isUniqueViolation(err); ok {
			return domain.NewDuplicateError("code", "Branch with this Code already exists.")
		}
		return fmt.Errorf("update branch: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista todas las sucursales en orden alfabético.
func (r *BranchRepo) List(ctx context.Context) ([]*entity.Branch, error) {
	rows, err := r.q.Query(ctx, `SELECT `+branchColumns+` FROM branches ORDER BY name, code`)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Branch
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// Count total de sucursales.
func (r *BranchRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM branches`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count branches: %w", err)
	}
	return n, nil
}

// Delete elimina una sucursal. Si aún tiene activos el FK RESTRICT lo impide.
func (r *BranchRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		if _, ok := isForeignKeyViolation(err); ok {
			return domain.ErrBranchHasAssets
		}
		return fmt.Errorf("delete branch: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanBranch(row pgx.Row) (*entity.Branch, error) {
	var b entity.Branch
	err := row.Scan(&b.ID, &b.Code, &b.Name, &b.City, &b.Region, &b.ManagerName, &b.ManagerPhone,
		&b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
