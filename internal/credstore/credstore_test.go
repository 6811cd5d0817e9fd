package credstore

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/firejournal/firejournal/internal/common"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "creds.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRepository_SetGet(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyEmail, "user@example.com"))

	got, err := repo.Get(ctx, KeyEmail)
	require.NoError(t, err)
	require.Equal(t, "user@example.com", got)
}

func TestRepository_Overwrite(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyUserID, "u1"))
	require.NoError(t, repo.Set(ctx, KeyUserID, "u2"))

	got, err := repo.Get(ctx, KeyUserID)
	require.NoError(t, err)
	require.Equal(t, "u2", got)
}

func TestRepository_MissingKey(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))

	_, err := repo.Get(context.Background(), "nope")
	require.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestRepository_Clear(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyEmail, "e"))
	require.NoError(t, repo.Clear(ctx))

	_, err := repo.Get(ctx, KeyEmail)
	require.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestLoadSave_RoundTrip(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	in := Credentials{Email: "user@example.com", Password: "hunter2", UserID: "u1"}
	require.NoError(t, repo.Save(ctx, in))

	got, err := Load(ctx, repo)
	require.NoError(t, err)
	require.Equal(t, in, got)
}

func TestSave_ReplacesWholeTriple(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, Credentials{Email: "a@b.c", Password: "p1", UserID: "u1"}))
	require.NoError(t, repo.Save(ctx, Credentials{Email: "x@y.z", Password: "p2", UserID: "u2"}))

	got, err := Load(ctx, repo)
	require.NoError(t, err)
	require.Equal(t, Credentials{Email: "x@y.z", Password: "p2", UserID: "u2"}, got)
}

// A save that cannot commit must leave nothing behind: Load should still
// report "never logged in" rather than a partial triple.
func TestSave_FailedSaveLeavesNoPartialTriple(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Save(ctx, Credentials{Email: "a@b.c", Password: "p", UserID: "u1"})
	require.Error(t, err)

	_, err = Load(context.Background(), repo)
	require.True(t, errors.Is(err, common.ErrorNoCredentials))
}

func TestLoad_MissingCredentials(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))

	_, err := Load(context.Background(), repo)
	require.True(t, errors.Is(err, common.ErrorNoCredentials))
}

func TestLoad_PartialCredentials(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyEmail, "user@example.com"))

	_, err := Load(ctx, repo)
	require.True(t, errors.Is(err, common.ErrorNoCredentials))
}
