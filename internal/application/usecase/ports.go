package usecase

import (
	"context"
	"io"

	"github.com/Fritz-nvm/management-system/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repos atados a ella.
// Si fn devuelve error se hace Rollback.
type TxRunner interface {
	RunAssets(ctx context.Context, fn func(
		branchRepo repository.BranchRepository,
		assetRepo repository.AssetRepository,
	) error) error
}

// ManualStore almacén de manuales de usuario subidos con los activos.
// Las rutas son relativas al directorio de medios (ej. "manuals/<uuid>.pdf").
type ManualStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	Remove(ctx context.Context, path string) error
	// FullPath resuelve la ruta en disco; rechaza rutas fuera del almacén.
	FullPath(path string) (string, error)
}

// ManualUpload archivo recibido en el formulario (campo user_manual).
type ManualUpload struct {
	Filename string
	Open     func() (io.ReadCloser, error)
}
