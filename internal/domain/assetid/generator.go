// Package assetid genera los identificadores visibles de activos: AST-<año>-<secuencia>.
//
// La secuencia es global (no se reinicia con el año); el año es solo una etiqueta.
// La unicidad la garantiza una secuencia atómica del almacén, y como red de seguridad
// el constraint UNIQUE sobre assets.asset_id.
package assetid

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	prefix   = "AST"
	seqWidth = 5
)

// ErrMalformed el identificador no tiene el formato AST-YYYY-NNNNN.
var ErrMalformed = errors.New("asset_id con formato inválido")

// Sequence fuente atómica de números crecientes (ej. SEQUENCE de PostgreSQL).
type Sequence interface {
	NextAssetSequence(ctx context.Context) (int64, error)
}

// Format construye el identificador. Secuencias mayores a 99999 se escriben sin truncar.
func Format(year int, seq int64) string {
	return fmt.Sprintf("%s-%04d-%0*d", prefix, year, seqWidth, seq)
}

// Parse descompone un identificador en año y secuencia.
func Parse(id string) (year int, seq int64, err error) {
	parts := strings.Split(id, "-")
	if len(parts) != 3 || parts[0] != prefix || len(parts[1]) != 4 || len(parts[2]) < seqWidth {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformed, id)
	}
	year, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformed, id)
	}
	seq, err = strconv.ParseInt(parts[2], 10, 64)
	if err != nil || seq <= 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformed, id)
	}
	return year, seq, nil
}

// Generator produce identificadores nuevos a partir de una Sequence.
type Generator struct {
	seq   Sequence
	clock func() time.Time
}

// NewGenerator construye el generador con el reloj del sistema.
func NewGenerator(seq Sequence) *Generator {
	return &Generator{seq: seq, clock: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (g *Generator) WithClock(clock func() time.Time) *Generator {
	return &Generator{seq: g.seq, clock: clock}
}

// Next toma el siguiente valor de la secuencia y lo etiqueta con el año actual.
func (g *Generator) Next(ctx context.Context) (string, error) {
	return g.NextFrom(ctx, g.seq)
}

// NextFrom igual que Next pero usando otra Sequence (ej. la atada a una transacción).
func (g *Generator) NextFrom(ctx context.Context, seq Sequence) (string, error) {
	n, err := seq.NextAssetSequence(ctx)
	if err != nil {
		return "", fmt.Errorf("assetid: siguiente secuencia: %w", err)
	}
	if n <= 0 {
		return "", fmt.Errorf("assetid: secuencia no positiva %d", n)
	}
	return Format(g.clock().Year(), n), nil
}
