package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/jottings/internal/model"
)

func openTestStore(t *testing.T, v model.Variant) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	s, err := Open(context.Background(), path, WithVariant(v))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestOpen_CreatesTable(t *testing.T) {
	s, _ := openTestStore(t, model.VariantNotes)

	var name string
	err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='items'").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "items", name)

	var mode string
	require.NoError(t, s.db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestOpen_UnknownVariant(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "x.db"), WithVariant("geo"))
	assert.Error(t, err)
}

func TestInitialize_IdempotentKeepsRows(t *testing.T) {
	ctx := context.Background()
	s, path := openTestStore(t, model.VariantList)

	_, err := s.Add(ctx, "bread", model.Amount("1"))
	require.NoError(t, err)
	require.NoError(t, s.Initialize(ctx))
	require.NoError(t, s.Close())

	s2, err := Open(ctx, path, WithVariant(model.VariantList))
	require.NoError(t, err)
	defer s2.Close()

	items, err := s2.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "bread", items[0].Name)
}

func TestScenario_ListVariant(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t, model.VariantList)

	it, err := s.Add(ctx, "Buy milk", model.Amount("2"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), it.ID)

	items, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Item{{ID: 1, Name: "Buy milk", Meta: model.Amount("2")}}, items)

	n, err := s.Update(ctx, 1, "Buy oat milk")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	items, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Item{{ID: 1, Name: "Buy oat milk", Meta: model.Amount("2")}}, items)

	n, err = s.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	items, err = s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAdd_RoundTripNotes(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t, model.VariantNotes)

	seen := map[int64]bool{}
	cases := []model.Metadata{
		model.Coordinate{Latitude: 60.1699, Longitude: 24.9384},
		nil,
		model.Coordinate{Latitude: -33.8688, Longitude: 151.2093},
	}
	for i, meta := range cases {
		it, err := s.Add(ctx, "note", meta)
		require.NoError(t, err, "case %d", i)
		assert.False(t, seen[it.ID], "id %d reused", it.ID)
		seen[it.ID] = true

		got, err := s.Get(ctx, it.ID)
		require.NoError(t, err)
		assert.Equal(t, it, got)
	}

	items, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, len(cases))
}

func TestAdd_Validation(t *testing.T) {
	ctx := context.Background()
	notes, _ := openTestStore(t, model.VariantNotes)
	list, _ := openTestStore(t, model.VariantList)

	_, err := notes.Add(ctx, "   ", nil)
	assert.ErrorIs(t, err, model.ErrEmptyName)

	_, err = notes.Add(ctx, "x", model.Amount("2"))
	assert.ErrorIs(t, err, ErrMetadataMismatch)

	_, err = list.Add(ctx, "x", model.Coordinate{Latitude: 1, Longitude: 2})
	assert.ErrorIs(t, err, ErrMetadataMismatch)

	_, err = notes.Add(ctx, "x", model.Coordinate{Latitude: 91, Longitude: 0})
	assert.ErrorIs(t, err, model.ErrInvalidCoordinate)

	for _, s := range []*Store{notes, list} {
		items, err := s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, items, "rejected adds must not write")
	}
}

func TestDelete_Idempotent(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t, model.VariantNotes)

	it, err := s.Add(ctx, "gone soon", nil)
	require.NoError(t, err)

	n, err := s.Delete(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = s.Delete(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.ErrorIs(t, NotFound(n), ErrNotFound)

	_, err = s.Get(ctx, it.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_MissingID(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t, model.VariantList)

	n, err := s.Update(ctx, 999999, "x")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	items, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdate_SameNameCountsAsMatched(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t, model.VariantList)

	it, err := s.Add(ctx, "eggs", model.Amount("12"))
	require.NoError(t, err)

	n, err := s.Update(ctx, it.ID, "eggs")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, NotFound(n))
}

func TestUpdate_KeepsMetadata(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t, model.VariantNotes)

	c := model.Coordinate{Latitude: 48.8566, Longitude: 2.3522}
	it, err := s.Add(ctx, "croissant", c)
	require.NoError(t, err)

	_, err = s.Update(ctx, it.ID, "pain au chocolat")
	require.NoError(t, err)

	got, err := s.Get(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "pain au chocolat", got.Name)
	assert.Equal(t, model.Metadata(c), got.Meta)

	_, err = s.Update(ctx, it.ID, "")
	assert.ErrorIs(t, err, model.ErrEmptyName)
}

func TestIDs_MonotonicAcrossDeletes(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t, model.VariantList)

	var last int64
	for i := 0; i < 5; i++ {
		it, err := s.Add(ctx, "item", nil)
		require.NoError(t, err)
		assert.Greater(t, it.ID, last)
		last = it.ID

		// Delete the newest row; AUTOINCREMENT must not hand its id out again.
		_, err = s.Delete(ctx, it.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(5), last)
}

func TestConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t, model.VariantList)

	const n = 20
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			it, err := s.Add(ctx, "parallel", model.Amount("1"))
			if assert.NoError(t, err) {
				ids <- it.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		assert.False(t, seen[id])
		seen[id] = true
	}
	items, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, n)
}

func TestClosedStore_WriteError(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t, model.VariantList)
	require.NoError(t, s.Close())

	_, err := s.Add(ctx, "after close", nil)
	var we *WriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, "add", we.Op)

	_, err = s.Delete(ctx, 1)
	require.ErrorAs(t, err, &we)
	assert.Equal(t, "delete", we.Op)

	_, err = s.List(ctx)
	var re *ReadError
	assert.ErrorAs(t, err, &re)

	err = s.Initialize(ctx)
	assert.True(t, IsSchemaError(err))
}
