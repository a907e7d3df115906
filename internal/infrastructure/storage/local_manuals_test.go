package storage_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fritz-nvm/management-system/internal/domain"
	"github.com/Fritz-nvm/management-system/internal/infrastructure/storage"
)

func TestLocalManuals_GuardarLeerBorrar(t *testing.T) {
	s, err := storage.NewLocalManuals(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	rel, err := s.Save(ctx, "Guide.PDF", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "manuals/"))
	assert.True(t, strings.HasSuffix(rel, ".pdf"))

	full, err := s.FullPath(rel)
	require.NoError(t, err)
	data, err := os.ReadFile(full)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	require.NoError(t, s.Remove(ctx, rel))
	_, err = os.Stat(full)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, s.Remove(ctx, rel))
}

func TestLocalManuals_RechazaExtensionYRutas(t *testing.T) {
	s, err := storage.NewLocalManuals(t.TempDir())
	require.NoError(t, err)

	_, err = s.Save(context.Background(), "virus.exe", strings.NewReader("MZ"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, domain.FieldErrors(err), "user_manual")

	for _, bad := range []string{"../config.env", "manuals/../../etc/passwd", "other/file.pdf", "manuals"} {
		_, err := s.FullPath(bad)
		assert.ErrorIs(t, err, domain.ErrNotFound, bad)
	}
}
