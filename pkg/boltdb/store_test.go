package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wikiseek/repository"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "wikiseek.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.Setup(context.Background()))
	return store
}

func testPage() *repository.Page {
	return &repository.Page{
		Key:           "Entropy",
		Title:         "Entropy",
		Lang:          "en",
		Summary:       "A measure of disorder in a system.",
		SimpleResults: []string{"Heat|Heat", "Gravity|Gravity"},
	}
}

func TestSetup_Idempotent(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Setup(context.Background()))
}

func TestPageRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.InsertPage(ctx, testPage())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	page, err := store.FindPageByKey(ctx, "Entropy", "en")
	require.NoError(t, err)

	assert.Equal(t, id, page.ID)
	assert.Equal(t, "Entropy", page.Title)
	assert.Equal(t, []string{"Heat|Heat", "Gravity|Gravity"}, page.SimpleResults)

	foundID, err := store.FindPageIDByKey(ctx, "Entropy", "en")
	require.NoError(t, err)
	assert.Equal(t, id, foundID)
}

func TestFindPageByKey_Miss(t *testing.T) {
	store := newTestStore(t)

	_, err := store.FindPageByKey(context.Background(), "Unknown", "en")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestQueryMappingRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	pageID, err := store.InsertPage(ctx, testPage())
	require.NoError(t, err)

	require.NoError(t, store.InsertQuery(ctx, "entropy", "en", pageID))

	queryID, err := store.FindQueryID(ctx, "entropy", "en", pageID)
	require.NoError(t, err)
	assert.NotEmpty(t, queryID)

	page, err := store.FindPageByQuery(ctx, "entropy", "en")
	require.NoError(t, err)
	assert.Equal(t, "Entropy", page.Key)
}

func TestFindQueryID_WrongPageIsMiss(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	pageID, err := store.InsertPage(ctx, testPage())
	require.NoError(t, err)
	require.NoError(t, store.InsertQuery(ctx, "entropy", "en", pageID))

	_, err = store.FindQueryID(ctx, "entropy", "en", "some-other-page")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestInsertQuery_UnknownPage(t *testing.T) {
	store := newTestStore(t)

	err := store.InsertQuery(context.Background(), "entropy", "en", "missing-page")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLanguagesAreIsolated(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.InsertPage(ctx, testPage())
	require.NoError(t, err)

	_, err = store.FindPageByKey(ctx, "Entropy", "ru")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDrop(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.InsertPage(ctx, testPage())
	require.NoError(t, err)

	require.NoError(t, store.Drop(ctx))

	_, err = store.FindPageByKey(ctx, "Entropy", "en")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
