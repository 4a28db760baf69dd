package cache

import (
	"context"
	"net/http"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/stretchr/testify/require"
)

// TestPutStatementShape guards the exact upsert statement Store.Put issues,
// independent of the real sqlite driver, so a refactor of the schema can't
// silently change the on-conflict semantics without a test noticing.
func TestPutStatementShape(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	hot, err := lru.New[string, *Entry](8)
	require.NoError(t, err)
	store := &Store{db: db, hot: hot}

	now := time.Now().UTC()
	key := Key("GET", "https://mygene.info/v3/gene/673")

	mock.ExpectExec("INSERT INTO http_cache").
		WithArgs(key, 200, sqlmock.AnyArg(), sqlmock.AnyArg(), now.Unix(), now.Unix()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = store.Put(context.Background(), key, &Entry{
		Status:    200,
		Header:    http.Header{},
		Body:      []byte("{}"),
		StoredAt:  now,
		ExpiresAt: now,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
