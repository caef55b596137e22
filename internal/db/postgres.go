package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/powercards/internal/types"
)

var postgresLookupQuery = fmt.Sprintf(
	`SELECT %s, %s, %s FROM %s WHERE %s = $1 LIMIT 1`,
	nameColumn, usageColumn, markupColumn, PowersTable, nameColumn,
)

// PostgresStore wraps a PostgreSQL connection pool holding the powers table
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool to the database
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, &RepositoryError{Message: "failed to connect to database", Cause: err}
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, &RepositoryError{Message: "failed to ping database", Cause: err}
	}

	return &PostgresStore{pool: pool}, nil
}

// Lookup returns the record whose name exactly equals name
func (s *PostgresStore) Lookup(ctx context.Context, name string) (types.PowerRecord, bool, error) {
	if s == nil || s.pool == nil {
		return types.PowerRecord{}, false, &RepositoryError{Message: "database is not connected"}
	}

	var rowName, usage, markup *string
	err := s.pool.QueryRow(ctx, postgresLookupQuery, name).Scan(&rowName, &usage, &markup)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.PowerRecord{}, false, nil
		}
		return types.PowerRecord{}, false, &RepositoryError{Message: fmt.Sprintf("failed to look up power %q", name), Cause: err}
	}

	return types.PowerRecord{
		Name:   deref(rowName),
		Usage:  deref(usage),
		Markup: deref(markup),
	}, true, nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
