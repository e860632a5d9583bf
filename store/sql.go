package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/Dibbotcf/Legacyscript/store/migrations"
	"github.com/pressly/goose/v3"
)

// sqlQueries holds the dialect-specific statements of a kv_store table.
type sqlQueries struct {
	get    string
	set    string
	delete string
	scan   string
	// scanArgs binds the prefix to the scan statement.
	scanArgs func(prefix string) []any
}

// SQL is a store backed by a single kv_store table.
type SQL struct {
	db *sql.DB
	q  sqlQueries
}

// goose keeps its dialect and filesystem in package state.
var migrateMu sync.Mutex

// runMigrations applies the embedded migrations in dir using the given goose dialect.
func runMigrations(ctx context.Context, db *sql.DB, dialect, dir string) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, dir)
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, s.q.get, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return value, nil
}

func (s *SQL) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, s.q.set, key, string(value)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.q.delete, key); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *SQL) GetByPrefix(ctx context.Context, prefix string) ([][]byte, error) {
	rows, err := s.db.QueryContext(ctx, s.q.scan, s.q.scanArgs(prefix)...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var results [][]byte
	for rows.Next() {
		var value []byte
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		results = append(results, value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return results, nil
}

func (s *SQL) Close() error {
	return s.db.Close()
}
