package identifier_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/identifier"
)

type fakeStore struct {
	count    int
	existing map[string]bool
	probes   int
}

func (f *fakeStore) CountCodes(_ context.Context, _ identifier.Kind) (int, error) {
	return f.count, nil
}

func (f *fakeStore) CodeExists(_ context.Context, _ identifier.Kind, code string) (bool, error) {
	f.probes++
	if f.existing == nil {
		return false, nil
	}
	return f.existing[code], nil
}

// alwaysTaken simula un almacenamiento en el que todo candidato ya existe.
type alwaysTaken struct{ probes int }

func (a *alwaysTaken) CountCodes(context.Context, identifier.Kind) (int, error) { return 0, nil }
func (a *alwaysTaken) CodeExists(context.Context, identifier.Kind, string) (bool, error) {
	a.probes++
	return true, nil
}

func TestFormat_Widths(t *testing.T) {
	assert.Equal(t, "ORD-0001", identifier.Format(identifier.KindOrder, 1))
	assert.Equal(t, "ITM-0042", identifier.Format(identifier.KindInventoryItem, 42))
	assert.Equal(t, "MAT-0100", identifier.Format(identifier.KindRawMaterial, 100))
	assert.Equal(t, "PO-0007", identifier.Format(identifier.KindPurchaseOrder, 7))
	assert.Equal(t, "USR-003", identifier.Format(identifier.KindUser, 3))
	assert.Equal(t, "ORD-12345", identifier.Format(identifier.KindOrder, 12345))
}

func TestNext_CountPlusOne(t *testing.T) {
	g := identifier.NewGenerator()
	store := &fakeStore{count: 4}

	code, err := g.Next(context.Background(), store, identifier.KindOrder)
	require.NoError(t, err)
	assert.Equal(t, "ORD-0005", code)
	assert.Equal(t, 1, store.probes)
}

func TestNext_SkipsGapsLeftByDeletes(t *testing.T) {
	g := identifier.NewGenerator()
	// Dos órdenes vivas, pero ORD-0003 y ORD-0004 existen (ORD-0001/0002 fueron borradas).
	store := &fakeStore{count: 2, existing: map[string]bool{"ORD-0003": true, "ORD-0004": true}}

	code, err := g.Next(context.Background(), store, identifier.KindOrder)
	require.NoError(t, err)
	assert.Equal(t, "ORD-0005", code)
	assert.Equal(t, 3, store.probes)
}

func TestNext_ExhaustionFallsBackToTimestamp(t *testing.T) {
	g := identifier.NewGenerator()
	store := &alwaysTaken{}

	code, err := g.Next(context.Background(), store, identifier.KindPurchaseOrder)
	require.NoError(t, err)
	assert.Regexp(t, `^PO-\d{9,}$`, code)
	assert.Equal(t, identifier.MaxAttempts, store.probes)
}

func TestNext_UnknownKind(t *testing.T) {
	g := identifier.NewGenerator()
	_, err := g.Next(context.Background(), &fakeStore{}, identifier.Kind("invoice"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWithRetry_RetriesOnceOnDuplicate(t *testing.T) {
	calls := 0
	err := identifier.WithRetry(context.Background(), func(context.Context) error {
		calls++
		if calls == 1 {
			return domain.ErrDuplicateIdentifier
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithRetry_SurfacesSecondDuplicate(t *testing.T) {
	calls := 0
	err := identifier.WithRetry(context.Background(), func(context.Context) error {
		calls++
		return domain.ErrDuplicateIdentifier
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateIdentifier)
	assert.Equal(t, 2, calls)
}

func TestWithRetry_OtherErrorsNotRetried(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	err := identifier.WithRetry(context.Background(), func(context.Context) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}
