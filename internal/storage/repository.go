package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"zenspend/internal/store"

	_ "modernc.org/sqlite"
)

// SQLiteRepository persists the state document as one row keyed by the
// storage key. It implements store.StateStore.
type SQLiteRepository struct {
	db            *sql.DB
	key           string
	schemaVersion uint
}

var (
	_ store.StateStore        = (*SQLiteRepository)(nil)
	_ store.DocumentInspector = (*SQLiteRepository)(nil)
)

func NewSQLiteRepository(dbPath, key string) (*SQLiteRepository, error) {
	if key == "" {
		return nil, errors.New("storage key is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One writer at a time; the document is replaced as a whole.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	version, err := RunMigrations(dbPath)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	slog.Debug("SQLite schema ready", "path", dbPath, "schema_version", version)

	return &SQLiteRepository{db: db, key: key, schemaVersion: version}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		err := r.db.Close()
		r.db = nil
		return err
	}
	return nil
}

// Load implements store.DocumentReader
func (r *SQLiteRepository) Load(ctx context.Context) ([]byte, bool, error) {
	if r.db == nil {
		return nil, false, store.ErrClosed
	}
	var body string
	err := r.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE key = ?`, r.key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load document %s: %w", r.key, err)
	}
	return []byte(body), true, nil
}

// Save implements store.DocumentWriter
func (r *SQLiteRepository) Save(ctx context.Context, raw []byte) error {
	if r.db == nil {
		return store.ErrClosed
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO documents (key, body, revision, updated_at)
		VALUES (?, ?, 1, ?)
		ON CONFLICT(key) DO UPDATE SET
			body = excluded.body,
			revision = documents.revision + 1,
			updated_at = excluded.updated_at`,
		r.key, string(raw), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save document %s: %w", r.key, err)
	}

	slog.DebugContext(ctx, "Document saved to SQLite", "key", r.key, "bytes", len(raw))
	return nil
}

// Clear implements store.DocumentEraser
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if r.db == nil {
		return store.ErrClosed
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE key = ?`, r.key); err != nil {
		return fmt.Errorf("clear document %s: %w", r.key, err)
	}

	slog.InfoContext(ctx, "Document cleared from SQLite", "key", r.key)
	return nil
}

// Info implements store.DocumentInspector
func (r *SQLiteRepository) Info(ctx context.Context) (store.DocumentInfo, bool, error) {
	if r.db == nil {
		return store.DocumentInfo{}, false, store.ErrClosed
	}
	info := store.DocumentInfo{Key: r.key, SchemaVersion: r.schemaVersion}
	var updated string
	err := r.db.QueryRowContext(ctx,
		`SELECT revision, length(body), updated_at FROM documents WHERE key = ?`, r.key,
	).Scan(&info.Revision, &info.Size, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return info, false, nil
	}
	if err != nil {
		return info, false, fmt.Errorf("document info %s: %w", r.key, err)
	}
	if t, err := time.Parse(time.RFC3339Nano, updated); err == nil {
		info.UpdatedAt = t
	}
	return info, true, nil
}
