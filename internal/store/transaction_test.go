package store_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordway/wordway-api/internal/store"
	"github.com/wordway/wordway-api/internal/testdb"
)

func countRows(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM items").Scan(&n))
	return n
}

func TestRunInTransaction(t *testing.T) {
	t.Parallel()

	newFixture := func(t *testing.T) *sql.DB {
		db := testdb.New(t)
		testdb.MustExec(t, db, "CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT NOT NULL)")
		return db
	}

	t.Run("commits on success", func(t *testing.T) {
		t.Parallel()
		db := newFixture(t)

		err := store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, "INSERT INTO items (name) VALUES (?)", "committed")
			return err
		})

		require.NoError(t, err)
		assert.Equal(t, 1, countRows(t, db))
	})

	t.Run("rolls back on error", func(t *testing.T) {
		t.Parallel()
		db := newFixture(t)

		sentinel := errors.New("boom")
		err := store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, "INSERT INTO items (name) VALUES (?)", "discarded"); err != nil {
				return err
			}
			return sentinel
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, sentinel)
		assert.Equal(t, 0, countRows(t, db))
	})

	t.Run("rolls back and repanics on panic", func(t *testing.T) {
		t.Parallel()
		db := newFixture(t)

		assert.Panics(t, func() {
			_ = store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
				if _, err := tx.ExecContext(ctx, "INSERT INTO items (name) VALUES (?)", "discarded"); err != nil {
					return err
				}
				panic("unexpected")
			})
		})

		assert.Equal(t, 0, countRows(t, db))
	})
}
