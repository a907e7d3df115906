package assetid_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fritz-nvm/management-system/internal/domain/assetid"
)

// counterSeq secuencia en memoria equivalente a nextval().
type counterSeq struct {
	mu  sync.Mutex
	n   int64
	err error
}

func (s *counterSeq) NextAssetSequence(context.Context) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return s.n, nil
}

func fixedClock(year int) func() time.Time {
	return func() time.Time { return time.Date(year, time.March, 3, 10, 0, 0, 0, time.UTC) }
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "AST-2026-00001", assetid.Format(2026, 1))
	assert.Equal(t, "AST-2026-01234", assetid.Format(2026, 1234))
	assert.Equal(t, "AST-2027-123456", assetid.Format(2027, 123456))
}

func TestParse(t *testing.T) {
	year, seq, err := assetid.Parse("AST-2026-00042")
	require.NoError(t, err)
	assert.Equal(t, 2026, year)
	assert.Equal(t, int64(42), seq)

	for _, bad := range []string{"", "AST-26-00001", "XYZ-2026-00001", "AST-2026-1", "AST-2026-00000", "AST-2026-abcde"} {
		_, _, err := assetid.Parse(bad)
		assert.ErrorIs(t, err, assetid.ErrMalformed, bad)
	}
}

func TestGenerator_SecuencialEnOrdenDeCreacion(t *testing.T) {
	g := assetid.NewGenerator(&counterSeq{}).WithClock(fixedClock(2026))
	ctx := context.Background()

	for i, want := range []string{"AST-2026-00001", "AST-2026-00002", "AST-2026-00003"} {
		got, err := g.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got, "posición %d", i)
	}
}

// El contador no se reinicia al cambiar de año: el año es solo etiqueta.
func TestGenerator_CambioDeAnioNoReinicia(t *testing.T) {
	seq := &counterSeq{}
	ctx := context.Background()

	id, err := assetid.NewGenerator(seq).WithClock(fixedClock(2026)).Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "AST-2026-00001", id)

	id, err = assetid.NewGenerator(seq).WithClock(fixedClock(2027)).Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "AST-2027-00002", id)
}

func TestGenerator_ConcurrenteSinColisiones(t *testing.T) {
	g := assetid.NewGenerator(&counterSeq{}).WithClock(fixedClock(2026))
	const n = 200

	var wg sync.WaitGroup
	ids := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := g.Next(context.Background())
			if err == nil {
				ids <- id
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool, n)
	for id := range ids {
		assert.False(t, seen[id], "id duplicado %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestGenerator_PropagaErrorDeSecuencia(t *testing.T) {
	boom := errors.New("db caída")
	_, err := assetid.NewGenerator(&counterSeq{err: boom}).Next(context.Background())
	assert.ErrorIs(t, err, boom)
}
