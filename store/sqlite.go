package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite"
)

var sqliteQueries = sqlQueries{
	get: `SELECT value FROM kv_store WHERE key = ?`,
	set: `INSERT INTO kv_store (key, value, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
	delete: `DELETE FROM kv_store WHERE key = ?`,
	scan:   `SELECT value FROM kv_store WHERE substr(key, 1, length(?)) = ?`,
	scanArgs: func(prefix string) []any {
		return []any{prefix, prefix}
	},
}

// DefaultSQLitePath returns the default database file under the XDG data home.
func DefaultSQLitePath() string {
	return filepath.Join(xdg.DataHome, AppName, "kv.db")
}

// OpenSQLite opens a SQLite database file and migrates the kv_store table.
// An empty path uses DefaultSQLitePath.
func OpenSQLite(ctx context.Context, path string) (*SQL, error) {
	if path == "" {
		path = DefaultSQLitePath()
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		path = filepath.Clean(path)
	}

	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A single connection keeps ":memory:" databases coherent and serialises writers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := runMigrations(ctx, db, "sqlite3", "sqlite"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQL{db: db, q: sqliteQueries}, nil
}
