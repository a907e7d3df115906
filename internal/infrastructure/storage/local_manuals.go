// Package storage guarda los manuales de usuario de los activos en disco local.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Fritz-nvm/management-system/internal/application/usecase"
	"github.com/Fritz-nvm/management-system/internal/domain"
)

const manualsDir = "manuals"

var _ usecase.ManualStore = (*LocalManuals)(nil)

// allowedExt extensiones aceptadas para manuales.
var allowedExt = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".txt": true,
	".png": true, ".jpg": true, ".jpeg": true,
}

// LocalManuals guarda archivos bajo <root>/manuals/<uuid><ext>.
type LocalManuals struct {
	root string
}

// NewLocalManuals construye el almacén y crea el directorio si no existe.
func NewLocalManuals(root string) (*LocalManuals, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: ruta de medios: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(abs, manualsDir), 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear directorio: %w", err)
	}
	return &LocalManuals{root: abs}, nil
}

// Save copia r a un archivo nuevo con nombre aleatorio y devuelve la ruta relativa.
func (s *LocalManuals) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExt[ext] {
		return "", &domain.FieldError{Field: "user_manual", Message: "Unsupported file extension.", Err: domain.ErrInvalidInput}
	}
	rel := manualsDir + "/" + uuid.New().String() + ext
	full := filepath.Join(s.root, filepath.FromSlash(rel))

	out, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage: crear archivo: %w", err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		_ = os.Remove(full)
		return "", fmt.Errorf("storage: escribir archivo: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(full)
		return "", fmt.Errorf("storage: cerrar archivo: %w", err)
	}
	return rel, nil
}

// Remove borra el archivo; si ya no existe no es error.
func (s *LocalManuals) Remove(_ context.Context, rel string) error {
	full, err := s.FullPath(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: borrar archivo: %w", err)
	}
	return nil
}

// FullPath resuelve rel dentro de <root>/manuals; cualquier otra ruta es ErrNotFound.
func (s *LocalManuals) FullPath(rel string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(rel))
	full := filepath.Join(s.root, clean)
	base := filepath.Join(s.root, manualsDir) + string(filepath.Separator)
	if !strings.HasPrefix(full, base) {
		return "", domain.ErrNotFound
	}
	return full, nil
}
