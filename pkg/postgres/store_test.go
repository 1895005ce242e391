package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wikiseek/repository"
)

var pageColumnNames = []string{
	"id", "key", "lang", "title", "summary",
	"simple_result1", "simple_result2", "simple_result3", "simple_result4", "simple_result5",
}

// strPtr types stub row values as *string so pgxmock can assign them to the
// store's **string scan destinations.
func strPtr(s string) *string { return &s }

func newMockStore(t *testing.T) (pgxmock.PgxPoolIface, *Store) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, NewWithDB(mock, zap.NewNop())
}

func TestFindPageByKey(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectQuery("FROM wiki_pages").
		WithArgs("Entropy", "en").
		WillReturnRows(pgxmock.NewRows(pageColumnNames).AddRow(
			"page-1", "Entropy", "en", "Entropy", "A measure of disorder.",
			strPtr("Heat|Heat"), strPtr("Gravity|Gravity"), nil, nil, nil,
		))

	page, err := store.FindPageByKey(context.Background(), "Entropy", "en")
	require.NoError(t, err)

	assert.Equal(t, "page-1", page.ID)
	assert.Equal(t, "Entropy", page.Key)
	assert.Equal(t, []string{"Heat|Heat", "Gravity|Gravity"}, page.SimpleResults,
		"empty related slots are dropped")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindPageByKey_Miss(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectQuery("FROM wiki_pages").
		WithArgs("Unknown", "en").
		WillReturnError(pgx.ErrNoRows)

	_, err := store.FindPageByKey(context.Background(), "Unknown", "en")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindPageByQuery(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectQuery("JOIN wiki_queries q").
		WithArgs("entropy", "en").
		WillReturnRows(pgxmock.NewRows(pageColumnNames).AddRow(
			"page-1", "Entropy", "en", "Entropy", "A measure of disorder.",
			nil, nil, nil, nil, nil,
		))

	page, err := store.FindPageByQuery(context.Background(), "entropy", "en")
	require.NoError(t, err)
	assert.Equal(t, "Entropy", page.Key)
	assert.Empty(t, page.SimpleResults)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindPageIDByKey_Miss(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectQuery("SELECT id FROM wiki_pages").
		WithArgs("Entropy", "en").
		WillReturnError(pgx.ErrNoRows)

	_, err := store.FindPageIDByKey(context.Background(), "Entropy", "en")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFindQueryID(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectQuery("SELECT id FROM wiki_queries").
		WithArgs("entropy", "en", "page-1").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("query-1"))

	id, err := store.FindQueryID(context.Background(), "entropy", "en", "page-1")
	require.NoError(t, err)
	assert.Equal(t, "query-1", id)
}

func TestInsertPage(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectQuery("INSERT INTO wiki_pages").
		WithArgs(
			pgxmock.AnyArg(), "Entropy", "en", "Entropy", "A measure of disorder.",
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
		).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("page-1"))

	id, err := store.InsertPage(context.Background(), &repository.Page{
		Key:           "Entropy",
		Title:         "Entropy",
		Lang:          "en",
		Summary:       "A measure of disorder.",
		SimpleResults: []string{"Heat|Heat"},
	})
	require.NoError(t, err)
	assert.Equal(t, "page-1", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertQuery(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectExec("INSERT INTO wiki_queries").
		WithArgs(pgxmock.AnyArg(), "entropy", "en", "page-1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := store.InsertQuery(context.Background(), "entropy", "en", "page-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNew_RequiresURL(t *testing.T) {
	_, err := New(context.Background(), "", "", zap.NewNop())
	assert.Error(t, err)
}
