package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var postgresQueries = sqlQueries{
	get: `SELECT value::text FROM kv_store WHERE key = $1`,
	set: `INSERT INTO kv_store (key, value, updated_at)
		 VALUES ($1, $2::jsonb, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
	delete: `DELETE FROM kv_store WHERE key = $1`,
	scan:   `SELECT value::text FROM kv_store WHERE left(key, length($1)) = $1`,
	scanArgs: func(prefix string) []any {
		return []any{prefix}
	},
}

// OpenPostgres connects to PostgreSQL through pgx and migrates the kv_store table.
func OpenPostgres(ctx context.Context, dsn string) (*SQL, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	if err := runMigrations(ctx, db, "pgx", "postgres"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return &SQL{db: db, q: postgresQueries}, nil
}
