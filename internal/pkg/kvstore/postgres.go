package kvstore

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const kvTable = "kv_store"

// PostgresBackend stores each key as one row of the kv_store table
type PostgresBackend struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

// NewPostgresBackend creates a backend over an open pool.
// The kv_store table is created by the migrations package.
func NewPostgresBackend(db *pgxpool.Pool) *PostgresBackend {
	return &PostgresBackend{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Get implements Backend
func (p *PostgresBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := p.sb.Select("value").From(kvTable).Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("failed to build select query: %w", err)
	}

	var value []byte
	if err := p.db.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, true, nil
}

// Set implements Backend
func (p *PostgresBackend) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := p.sb.Insert(kvTable).
		Columns("key", "value", "updated_at").
		Values(key, string(value), sq.Expr("CURRENT_TIMESTAMP")).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert query: %w", err)
	}

	if _, err := p.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Delete implements Backend
func (p *PostgresBackend) Delete(ctx context.Context, key string) error {
	query, args, err := p.sb.Delete(kvTable).Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := p.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}
