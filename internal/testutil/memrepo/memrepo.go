// Package memrepo implementa los puertos de persistencia en memoria para tests.
package memrepo

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Fritz-nvm/management-system/internal/application/usecase"
	"github.com/Fritz-nvm/management-system/internal/domain"
	"github.com/Fritz-nvm/management-system/internal/domain/entity"
	"github.com/Fritz-nvm/management-system/internal/domain/repository"
)

var (
	_ repository.BranchRepository = (*Branches)(nil)
	_ repository.AssetRepository  = (*Assets)(nil)
	_ repository.UserRepository   = (*Users)(nil)
	_ usecase.TxRunner            = Tx{}
	_ usecase.ManualStore         = (*Manuals)(nil)
)

// Branches BranchRepository en memoria.
type Branches struct {
	mu   sync.Mutex
	byID map[string]*entity.Branch
}

func NewBranches(branches ...*entity.Branch) *Branches {
	r := &Branches{byID: map[string]*entity.Branch{}}
	for _, b := range branches {
		r.byID[b.ID] = b
	}
	return r
}

func (r *Branches) Create(_ context.Context, b *entity.Branch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.byID {
		if other.Code == b.Code {
			return domain.NewDuplicateError("code", "Branch with this Branch Code already exists.")
		}
	}
	cp := *b
	r.byID[b.ID] = &cp
	return nil
}

func (r *Branches) GetByID(_ context.Context, id string) (*entity.Branch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *Branches) GetByCode(_ context.Context, code string) (*entity.Branch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.byID {
		if b.Code == code {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *Branches) Update(_ context.Context, b *entity.Branch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[b.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *b
	r.byID[b.ID] = &cp
	return nil
}

func (r *Branches) List(_ context.Context) ([]*entity.Branch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Branch, 0, len(r.byID))
	for _, b := range r.byID {
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Branches) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID), nil
}

func (r *Branches) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// Assets AssetRepository en memoria; conserva el orden de inserción.
type Assets struct {
	mu       sync.Mutex
	seq      int64
	assets   []*entity.Asset
	branches *Branches
}

func NewAssets(branches *Branches) *Assets {
	return &Assets{branches: branches}
}

func (r *Assets) NextAssetSequence(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	return r.seq, nil
}

func (r *Assets) Create(_ context.Context, a *entity.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.assets {
		if other.SerialNumber == a.SerialNumber {
			return domain.NewDuplicateError("serial_number", usecase.DuplicateSerialMessage)
		}
		if other.AssetID == a.AssetID {
			return domain.NewDuplicateError("asset_id", "Asset with this Asset ID already exists.")
		}
	}
	cp := *a
	r.assets = append(r.assets, &cp)
	return nil
}

func (r *Assets) withBranch(a *entity.Asset) *entity.Asset {
	cp := *a
	if r.branches != nil {
		if b, _ := r.branches.GetByID(context.Background(), a.BranchID); b != nil {
			cp.BranchName, cp.BranchCode = b.Name, b.Code
		}
	}
	return &cp
}

func (r *Assets) GetByID(_ context.Context, id string) (*entity.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.assets {
		if a.ID == id {
			return r.withBranch(a), nil
		}
	}
	return nil, nil
}

func (r *Assets) GetByManualPath(_ context.Context, path string) (*entity.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.assets {
		if path != "" && a.ManualPath == path {
			return r.withBranch(a), nil
		}
	}
	return nil, nil
}

func (r *Assets) GetBySerialNumber(_ context.Context, serial string) (*entity.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.assets {
		if a.SerialNumber == serial {
			return r.withBranch(a), nil
		}
	}
	return nil, nil
}

func (r *Assets) Update(_ context.Context, a *entity.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.assets {
		if other.ID != a.ID && other.SerialNumber == a.SerialNumber {
			return domain.NewDuplicateError("serial_number", usecase.DuplicateSerialMessage)
		}
	}
	for i, other := range r.assets {
		if other.ID == a.ID {
			cp := *a
			r.assets[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *Assets) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.assets {
		if a.ID == id {
			r.assets = append(r.assets[:i], r.assets[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *Assets) match(f repository.AssetFilter) []*entity.Asset {
	var out []*entity.Asset
	// más reciente primero
	for i := len(r.assets) - 1; i >= 0; i-- {
		a := r.assets[i]
		if f.BranchIDs != nil && !contains(f.BranchIDs, a.BranchID) {
			continue
		}
		if f.Search != "" {
			s := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(a.Name), s) && !strings.Contains(strings.ToLower(a.AssetID), s) {
				continue
			}
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		out = append(out, r.withBranch(a))
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out
}

func (r *Assets) List(_ context.Context, f repository.AssetFilter) ([]*entity.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.match(f), nil
}

func (r *Assets) Count(_ context.Context, f repository.AssetFilter) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f.Limit = 0
	return len(r.match(f)), nil
}

func (r *Assets) CountByStatus(_ context.Context, f repository.AssetFilter) ([]repository.StatusCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f.Limit = 0
	counts := map[string]int{}
	for _, a := range r.match(f) {
		counts[a.Status]++
	}
	out := make([]repository.StatusCount, 0, len(counts))
	for s, n := range counts {
		out = append(out, repository.StatusCount{Status: s, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out, nil
}

func (r *Assets) TotalCost(_ context.Context, f repository.AssetFilter) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f.Limit = 0
	total := decimal.Zero
	for _, a := range r.match(f) {
		total = total.Add(a.PurchaseCost)
	}
	return total, nil
}

func (r *Assets) CountByBranch(_ context.Context, branchID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, a := range r.assets {
		if a.BranchID == branchID {
			n++
		}
	}
	return n, nil
}

// Len cantidad de activos almacenados.
func (r *Assets) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.assets)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// Tx ejecuta fn directamente sobre los repos en memoria.
type Tx struct {
	Branches *Branches
	Assets   *Assets
}

func (t Tx) RunAssets(_ context.Context, fn func(repository.BranchRepository, repository.AssetRepository) error) error {
	return fn(t.Branches, t.Assets)
}

// Manuals ManualStore en memoria.
type Manuals struct {
	mu      sync.Mutex
	files   map[string][]byte
	removed []string
	n       int
}

func NewManuals() *Manuals { return &Manuals{files: map[string][]byte{}} }

func (m *Manuals) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++
	ext := ""
	if i := strings.LastIndex(filename, "."); i >= 0 {
		ext = filename[i:]
	}
	path := "manuals/manual-" + strconv.Itoa(m.n) + ext
	m.files[path] = data
	return path, nil
}

func (m *Manuals) Remove(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path)
	m.removed = append(m.removed, path)
	return nil
}

func (m *Manuals) FullPath(path string) (string, error) {
	return "/media/" + path, nil
}

// Has indica si el archivo sigue almacenado.
func (m *Manuals) Has(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok
}

// Upload ManualUpload con contenido fijo.
func Upload(name, content string) *usecase.ManualUpload {
	return &usecase.ManualUpload{Filename: name, Open: func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewBufferString(content)), nil
	}}
}

// Removed rutas que se pidieron borrar, en orden.
func (m *Manuals) Removed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.removed...)
}

// Count cantidad de archivos almacenados.
func (m *Manuals) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

// Users UserRepository en memoria.
type Users struct {
	mu    sync.Mutex
	users map[string]*entity.User
	roles map[string]*entity.UserRole
	// RoleWriteErr, si no es nil, hace fallar la escritura del UserRole.
	RoleWriteErr error
}

func NewUsers() *Users {
	return &Users{users: map[string]*entity.User{}, roles: map[string]*entity.UserRole{}}
}

func (m *Users) CreateWithRole(_ context.Context, u *entity.User, r *entity.UserRole) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.users {
		if other.Username == u.Username {
			return domain.NewDuplicateError("username", "A user with that username already exists.")
		}
	}
	if m.RoleWriteErr != nil {
		return m.RoleWriteErr
	}
	cu, cr := *u, *r
	m.users[u.ID] = &cu
	m.roles[u.ID] = &cr
	return nil
}

func (m *Users) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *Users) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *Users) GetRole(_ context.Context, userID string) (*entity.UserRole, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.roles[userID]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

// SetActive activa o desactiva un usuario.
func (m *Users) SetActive(id string, active bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		u.IsActive = active
	}
}

// SetRole cambia el rol almacenado de un usuario.
func (m *Users) SetRole(id, role string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.roles[id]; ok {
		r.Role = role
	}
}
