package session

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE session (
  key        TEXT PRIMARY KEY,
  value      TEXT NOT NULL,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyAccessToken, "tok"))

	v, err := r.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "tok", v)
}

func TestGet_Absent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestSet_Upsert(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyUsername, "alice"))
	require.NoError(t, r.Set(ctx, KeyUsername, "bob"))

	v, err := r.Get(ctx, KeyUsername)
	require.NoError(t, err)
	assert.Equal(t, "bob", v)
}

func TestDeleteAndClear(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyUsername, "alice"))
	require.NoError(t, r.Set(ctx, KeyAccessToken, "tok"))

	require.NoError(t, r.Delete(ctx, KeyUsername))
	require.NoError(t, r.Delete(ctx, KeyUsername))

	v, err := r.Get(ctx, KeyUsername)
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, r.Clear(ctx))
	v, err = r.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestErrorsAreWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("boom")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM session WHERE key = ?`)).WillReturnError(boom)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO session`)).WillReturnError(boom)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM session WHERE key = ?`)).WillReturnError(boom)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM session`)).WillReturnError(boom)

	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err = r.Get(ctx, "k")
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, r.Set(ctx, "k", "v"), boom)
	assert.ErrorIs(t, r.Delete(ctx, "k"), boom)
	assert.ErrorIs(t, r.Clear(ctx), boom)

	assert.NoError(t, mock.ExpectationsWereMet())
}
