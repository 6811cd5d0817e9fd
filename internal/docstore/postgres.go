package docstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/firejournal/firejournal/internal/common"
	"github.com/firejournal/firejournal/internal/docstore/migrations"
	"github.com/firejournal/firejournal/internal/journal"
	"github.com/firejournal/firejournal/internal/logging"
)

// notifyChannel is the LISTEN/NOTIFY channel the entries trigger publishes
// to. The payload is the affected user id.
const notifyChannel = "entry_changes"

const entryColumns = `id, user_id, caption, is_favorite, user_tags, auto_tags,
	metadata_timestamp, metadata_latitude, metadata_longitude, image_path, created_at`

// PostgresStore implements Store over a Postgres database. The live
// subscription is driven by an AFTER trigger that NOTIFYs on every change to
// the entries table.
type PostgresStore struct {
	pool *pgxpool.Pool
	log  logging.Logger
}

// NewPostgresStore opens a connection pool, runs migrations, and returns the
// store.
func NewPostgresStore(ctx context.Context, dsn string, log logging.Logger) (*PostgresStore, error) {
	if err := runMigrations(ctx, dsn); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	return &PostgresStore{pool: pool, log: log}, nil
}

func runMigrations(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) Create(ctx context.Context, entry journal.Entry) (journal.Entry, error) {
	query := `
		INSERT INTO entries (user_id, caption, is_favorite, user_tags, auto_tags,
			metadata_timestamp, metadata_latitude, metadata_longitude, image_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	row := s.pool.QueryRow(ctx, query,
		entry.UserID, entry.Caption, entry.IsFavorite, entry.UserTags, entry.AutoTags,
		entry.MetadataTimestamp, entry.MetadataLatitude, entry.MetadataLongitude, entry.ImagePath)

	if err := row.Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return journal.Entry{}, fmt.Errorf("failed to insert entry: %w", err)
	}

	return entry, nil
}

func (s *PostgresStore) Merge(ctx context.Context, userID, id string, patch journal.EntryPatch) error {
	sets := make([]string, 0, 8)
	args := make([]any, 0, 10)

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Caption != nil {
		add("caption", *patch.Caption)
	}
	if patch.IsFavorite != nil {
		add("is_favorite", *patch.IsFavorite)
	}
	if patch.UserTags != nil {
		add("user_tags", *patch.UserTags)
	}
	if patch.AutoTags != nil {
		add("auto_tags", *patch.AutoTags)
	}
	if patch.MetadataTimestamp != nil {
		add("metadata_timestamp", *patch.MetadataTimestamp)
	}
	if patch.MetadataLatitude != nil {
		add("metadata_latitude", *patch.MetadataLatitude)
	}
	if patch.MetadataLongitude != nil {
		add("metadata_longitude", *patch.MetadataLongitude)
	}
	if patch.ImagePath != nil {
		add("image_path", *patch.ImagePath)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, userID, id)
	query := fmt.Sprintf("UPDATE entries SET %s WHERE user_id = $%d AND id = $%d",
		strings.Join(sets, ", "), len(args)-1, len(args))

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to merge entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, userID, id string) error {
	// Idempotent: zero rows affected is fine.
	_, err := s.pool.Exec(ctx, `DELETE FROM entries WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, userID string) ([]journal.Entry, error) {
	query := fmt.Sprintf(`SELECT %s FROM entries WHERE user_id = $1 ORDER BY created_at, id`, entryColumns)

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	var result []journal.Entry
	for rows.Next() {
		var e journal.Entry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Caption, &e.IsFavorite, &e.UserTags, &e.AutoTags,
			&e.MetadataTimestamp, &e.MetadataLatitude, &e.MetadataLongitude, &e.ImagePath, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Watch holds one dedicated connection on LISTEN and re-lists the user's
// collection after each notification for that user. Snapshots for slow
// receivers are dropped; the next change produces a fresh one.
func (s *PostgresStore) Watch(ctx context.Context, userID string) (<-chan []journal.Entry, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring listen connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		conn.Release()
		return nil, fmt.Errorf("listen failed: %w", err)
	}

	ch := make(chan []journal.Entry, 16)

	initial, err := s.List(ctx, userID)
	if err != nil {
		conn.Release()
		return nil, err
	}
	ch <- initial

	go func() {
		defer close(ch)
		defer conn.Release()

		for {
			n, err := conn.Conn().WaitForNotification(ctx)
			if err != nil {
				if ctx.Err() == nil {
					s.log.Error(ctx, "entry change feed terminated", "error", err)
				}
				return
			}
			if n.Payload != userID {
				continue
			}

			snapshot, err := s.List(ctx, userID)
			if err != nil {
				s.log.Error(ctx, "listing entries after change", "error", err)
				continue
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}()

	return ch, nil
}
