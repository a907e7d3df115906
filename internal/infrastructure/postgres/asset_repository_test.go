package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/Fritz-nvm/management-system/internal/application/usecase"
	"github.com/Fritz-nvm/management-system/internal/domain"
)

func TestMapAssetWriteError(t *testing.T) {
	boom := errors.New("connection reset")
	otherFK := &pgconn.PgError{Code: "23503", ConstraintName: "assets_created_by_fkey"}

	tests := []struct {
		name      string
		err       error
		wantIs    error
		wantField string
		wantMsg   string
	}{
		{
			name:      "serial duplicado",
			err:       &pgconn.PgError{Code: "23505", ConstraintName: "assets_serial_number_key"},
			wantIs:    domain.ErrDuplicate,
			wantField: "serial_number",
			wantMsg:   usecase.DuplicateSerialMessage,
		},
		{
			name:      "colisión de asset_id",
			err:       fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505", ConstraintName: "assets_asset_id_key"}),
			wantIs:    domain.ErrDuplicate,
			wantField: "asset_id",
			wantMsg:   "Asset ID collision, please submit again.",
		},
		{
			name:   "otro constraint único",
			err:    &pgconn.PgError{Code: "23505", ConstraintName: "assets_pkey"},
			wantIs: domain.ErrDuplicate,
		},
		{
			name:      "sucursal inexistente",
			err:       &pgconn.PgError{Code: "23503", ConstraintName: "assets_branch_id_fkey"},
			wantIs:    domain.ErrInvalidInput,
			wantField: "branch",
			wantMsg:   "Select a valid branch.",
		},
		{
			name:   "otra llave foránea",
			err:    otherFK,
			wantIs: otherFK,
		},
		{
			name:   "error genérico",
			err:    boom,
			wantIs: boom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapAssetWriteError("insert asset", tt.err)
			assert.ErrorIs(t, got, tt.wantIs)
			fields := domain.FieldErrors(got)
			if tt.wantField == "" {
				assert.Nil(t, fields)
				assert.Contains(t, got.Error(), "insert asset")
				return
			}
			assert.Equal(t, map[string]string{tt.wantField: tt.wantMsg}, fields)
		})
	}
}
