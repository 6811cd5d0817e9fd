// Package credstore persists the shared credentials both entry points use:
// the main app writes them at login, the share tool reads them before
// posting. It is the analog of an OS-level shared preference store, backed
// by a small SQLite database.
package credstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/firejournal/firejournal/internal/common"
	"github.com/firejournal/firejournal/internal/credstore/migrations"
	"github.com/firejournal/firejournal/internal/dbx"
)

// Well-known credential keys.
const (
	KeyEmail    = "shared_email"
	KeyPassword = "shared_password"
	KeyUserID   = "shared_user_id"
)

// Credentials is the set the share tool needs to authenticate and post.
type Credentials struct {
	Email    string
	Password string
	UserID   string
}

// Repository is a small key/value store over the shared credentials file.
// Save writes the full credential triple; a partially written triple must
// never be observable afterwards.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Save(ctx context.Context, c Credentials) error
	Clear(ctx context.Context) error
}

// Open opens (creating if needed) the credential database at path and runs
// its migrations.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening credential db: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, err
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, fmt.Errorf("credential db migration: %w", err)
	}

	return db, nil
}

// SQLiteRepository implements Repository over a *sql.DB.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Get returns the value for key, or common.ErrorNotFound.
func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", common.ErrorNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get credential[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key, value string) error {
	return set(ctx, r.db, key, value)
}

// Save stores the full shared credential set in one transaction, so a
// mid-save failure never leaves a partial triple behind for Load to find.
func (r *SQLiteRepository) Save(ctx context.Context, c Credentials) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := set(ctx, tx, KeyEmail, c.Email); err != nil {
			return err
		}
		if err := set(ctx, tx, KeyPassword, c.Password); err != nil {
			return err
		}
		return set(ctx, tx, KeyUserID, c.UserID)
	})
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM credentials`)
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

func set(ctx context.Context, q dbx.DBTX, key, value string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO credentials (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set credential[%s]: %w", key, err)
	}
	return nil
}

// Load reads the full shared credential set. Missing keys yield
// common.ErrorNoCredentials so callers can tell "never logged in" apart
// from storage failures.
func Load(ctx context.Context, repo Repository) (Credentials, error) {
	var c Credentials
	var err error

	if c.Email, err = repo.Get(ctx, KeyEmail); err != nil {
		return Credentials{}, missingOr(err)
	}
	if c.Password, err = repo.Get(ctx, KeyPassword); err != nil {
		return Credentials{}, missingOr(err)
	}
	if c.UserID, err = repo.Get(ctx, KeyUserID); err != nil {
		return Credentials{}, missingOr(err)
	}
	return c, nil
}

func missingOr(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNoCredentials
	}
	return err
}
