package local

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mamadbah2/farmshop/internal/domain/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS collection_snapshots (
	collection TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	saved_at   TEXT NOT NULL
)`

// Repository keeps the last known copy of every collection on local disk.
type Repository interface {
	SaveSnapshot(ctx context.Context, collection models.Collection, rows []models.Row) error
	LoadSnapshot(ctx context.Context, collection models.Collection) ([]models.Row, bool, error)
}

// SQLiteRepository implements Repository on a single SQLite table.
type SQLiteRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
	now    func() time.Time
}

type snapshot struct {
	Collection string `db:"collection"`
	Payload    string `db:"payload"`
	SavedAt    string `db:"saved_at"`
}

// NewSQLiteRepository opens the database at dsn and prepares the schema.
func NewSQLiteRepository(ctx context.Context, dsn string, logger *zap.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sqlx.ConnectContext(ctx, "sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate local store: %w", err)
	}

	return &SQLiteRepository{db: db, logger: logger, now: time.Now}, nil
}

// SaveSnapshot replaces the stored copy of a collection.
func (r *SQLiteRepository) SaveSnapshot(ctx context.Context, collection models.Collection, rows []models.Row) error {
	if rows == nil {
		rows = []models.Row{}
	}

	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode %s snapshot: %w", collection, err)
	}

	const q = `
		INSERT INTO collection_snapshots (collection, payload, saved_at)
		VALUES (?, ?, ?)
		ON CONFLICT(collection) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at`

	if _, err := r.db.ExecContext(ctx, q, string(collection), string(payload), r.now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("save %s snapshot: %w", collection, err)
	}

	r.logger.Debug("local snapshot saved", zap.String("collection", string(collection)), zap.Int("rows", len(rows)))
	return nil
}

// LoadSnapshot returns the stored copy of a collection. The boolean is false
// when nothing was ever saved for it.
func (r *SQLiteRepository) LoadSnapshot(ctx context.Context, collection models.Collection) ([]models.Row, bool, error) {
	var snap snapshot
	err := r.db.GetContext(ctx, &snap, `SELECT collection, payload, saved_at FROM collection_snapshots WHERE collection = ?`, string(collection))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %s snapshot: %w", collection, err)
	}

	var rows []models.Row
	if err := json.Unmarshal([]byte(snap.Payload), &rows); err != nil {
		return nil, false, fmt.Errorf("decode %s snapshot: %w", collection, err)
	}

	r.logger.Debug("local snapshot loaded", zap.String("collection", snap.Collection), zap.String("saved_at", snap.SavedAt), zap.Int("rows", len(rows)))
	return rows, true, nil
}

// Close releases the database handle.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
