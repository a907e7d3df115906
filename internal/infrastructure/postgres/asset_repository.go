package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Fritz-nvm/management-system/internal/application/usecase"
	"github.com/Fritz-nvm/management-system/internal/domain"
	"github.com/Fritz-nvm/management-system/internal/domain/entity"
	"github.com/Fritz-nvm/management-system/internal/domain/repository"
)

var _ repository.AssetRepository = (*AssetRepo)(nil)

const assetSelect = `
	SELECT a.id, a.asset_id, a.name, a.category, a.brand, a.model, a.serial_number, a.branch_id,
	       a.department, a.purchase_date, a.purchase_cost, a.supplier_name, a.status, a.condition,
	       a.custodian_name, a.custodian_phone, a.manual_path, a.created_by, a.created_at, a.updated_at,
	       b.name, b.code
	FROM assets a
	JOIN branches b ON b.id = a.branch_id`

// AssetRepo implementación del puerto AssetRepository sobre PostgreSQL (usable con pool o tx).
type AssetRepo struct {
	q Querier
}

// NewAssetRepository construye el adaptador de persistencia para activos. Pasar pool o tx (Querier).
func NewAssetRepository(q Querier) *AssetRepo {
	return &AssetRepo{q: q}
}

// NextAssetSequence nextval() es atómico: dos transacciones concurrentes nunca reciben el mismo valor.
func (r *AssetRepo) NextAssetSequence(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('asset_id_seq')`).Scan(&n); err != nil {
		return 0, fmt.Errorf("nextval asset_id_seq: %w", err)
	}
	return n, nil
}

// Create persiste un nuevo activo.
func (r *AssetRepo) Create(ctx context.Context, a *entity.Asset) error {
	query := `
		INSERT INTO assets (id, asset_id, name, category, brand, model, serial_number, branch_id,
		                    department, purchase_date, purchase_cost, supplier_name, status, condition,
		                    custodian_name, custodian_phone, manual_path, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.AssetID, a.Name, a.Category, a.Brand, a.Model, a.SerialNumber, a.BranchID,
		a.Department, a.PurchaseDate, a.PurchaseCost, a.SupplierName, a.Status, a.Condition,
		a.CustodianName, a.CustodianPhone, a.ManualPath, a.CreatedBy, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return mapAssetWriteError("insert asset", err)
	}
	return nil
}

// GetByID obtiene un activo por ID (con nombre y código de su sucursal).
func (r *AssetRepo) GetByID(ctx context.Context, id string) (*entity.Asset, error) {
	return r.getOne(ctx, assetSelect+` WHERE a.id = $1`, id)
}

// GetByManualPath obtiene el activo dueño de un manual subido.
func (r *AssetRepo) GetByManualPath(ctx context.Context, path string) (*entity.Asset, error) {
	if path == "" {
		return nil, nil
	}
	return r.getOne(ctx, assetSelect+` WHERE a.manual_path = $1`, path)
}

// GetBySerialNumber obtiene un activo por su número de serie.
func (r *AssetRepo) GetBySerialNumber(ctx context.Context, serial string) (*entity.Asset, error) {
	return r.getOne(ctx, assetSelect+` WHERE a.serial_number = $1`, serial)
}

func (r *AssetRepo) getOne(ctx context.Context, query string, arg any) (*entity.Asset, error) {
	a, err := scanAsset(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset: %w", err)
	}
	return a, nil
}

// Update actualiza un activo. asset_id, created_by y created_at no se tocan.
func (r *AssetRepo) Update(ctx context.Context, a *entity.Asset) error {
	query := `
		UPDATE assets
		SET name = $2, category = $3, brand = $4, model = $5, serial_number = $6, branch_id = $7,
		    department = $8, purchase_date = $9, purchase_cost = $10, supplier_name = $11,
		    status = $12, condition = $13, custodian_name = $14, custodian_phone = $15,
		    manual_path = $16, updated_at = $17
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		a.ID, a.Name, a.Category, a.Brand, a.Model, a.SerialNumber, a.BranchID,
		a.Department, a.PurchaseDate, a.PurchaseCost, a.SupplierName,
		a.Status, a.Condition, a.CustodianName, a.CustodianPhone,
		a.ManualPath, a.UpdatedAt,
	)
	if err != nil {
		return mapAssetWriteError("update asset", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un activo por ID.
func (r *AssetRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista activos filtrados, del más reciente al más antiguo.
func (r *AssetRepo) List(ctx context.Context, f repository.AssetFilter) ([]*entity.Asset, error) {
	where, args, none := buildAssetWhere(f)
	if none {
		return nil, nil
	}
	query := assetSelect + where + ` ORDER BY a.created_at DESC, a.asset_id DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Count cantidad de activos que cumplen el filtro.
func (r *AssetRepo) Count(ctx context.Context, f repository.AssetFilter) (int, error) {
	where, args, none := buildAssetWhere(f)
	if none {
		return 0, nil
	}
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM assets a`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count assets: %w", err)
	}
	return n, nil
}

// CountByStatus agrupa por estado los activos que cumplen el filtro.
func (r *AssetRepo) CountByStatus(ctx context.Context, f repository.AssetFilter) ([]repository.StatusCount, error) {
	where, args, none := buildAssetWhere(f)
	if none {
		return nil, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT a.status, COUNT(*) FROM assets a`+where+` GROUP BY a.status ORDER BY a.status`, args...)
	if err != nil {
		return nil, fmt.Errorf("count assets by status: %w", err)
	}
	defer rows.Close()
	var out []repository.StatusCount
	for rows.Next() {
		var sc repository.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// TotalCost suma de purchase_cost de los activos que cumplen el filtro.
func (r *AssetRepo) TotalCost(ctx context.Context, f repository.AssetFilter) (decimal.Decimal, error) {
	where, args, none := buildAssetWhere(f)
	if none {
		return decimal.Zero, nil
	}
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(a.purchase_cost), 0) FROM assets a`+where, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum asset cost: %w", err)
	}
	return total, nil
}

// CountByBranch cantidad de activos de una sucursal.
func (r *AssetRepo) CountByBranch(ctx context.Context, branchID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM assets WHERE branch_id = $1`, branchID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count assets by branch: %w", err)
	}
	return n, nil
}

// buildAssetWhere arma la cláusula WHERE (alias "a"). none=true si el filtro no puede tener resultados.
func buildAssetWhere(f repository.AssetFilter) (where string, args []any, none bool) {
	var conds []string
	if f.BranchIDs != nil {
		if len(f.BranchIDs) == 0 {
			return "", nil, true
		}
		args = append(args, f.BranchIDs)
		conds = append(conds, fmt.Sprintf("a.branch_id = ANY($%d::uuid[])", len(args)))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+escapeLike(s)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(a.name ILIKE $%d OR a.asset_id ILIKE $%d)", n, n))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("a.status = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args, false
	}
	return " WHERE " + strings.Join(conds, " AND "), args, false
}

// escapeLike escapa los comodines de LIKE para que la búsqueda sea substring literal.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func mapAssetWriteError(op string, err error) error {
	if constraint, ok := isUniqueViolation(err); ok {
		switch constraint {
		case "assets_serial_number_key":
			return domain.NewDuplicateError("serial_number", usecase.DuplicateSerialMessage)
		case "assets_asset_id_key":
			return domain.NewDuplicateError("asset_id", "Asset ID collision, please submit again.")
		}
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	}
	if constraint, ok := isForeignKeyViolation(err); ok && constraint == "assets_branch_id_fkey" {
		return &domain.FieldError{Field: "branch", Message: "Select a valid branch.", Err: domain.ErrInvalidInput}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func scanAsset(row pgx.Row) (*entity.Asset, error) {
	var a entity.Asset
	err := row.Scan(
		&a.ID, &a.AssetID, &a.Name, &a.Category, &a.Brand, &a.Model, &a.SerialNumber, &a.BranchID,
		&a.Department, &a.PurchaseDate, &a.PurchaseCost, &a.SupplierName, &a.Status, &a.Condition,
		&a.CustodianName, &a.CustodianPhone, &a.ManualPath, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt,
		&a.BranchName, &a.BranchCode,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
