// Package db provides read-only access to the powers store.
package db

import (
	"context"
	"strings"

	"github.com/jonathan/powercards/internal/types"
)

// Powers table layout shared by every backend
const (
	PowersTable  = "powers"
	nameColumn   = "name"
	usageColumn  = "usage"
	markupColumn = "txt"
)

// Repository resolves power names to stored records.
//
// Lookup returns found=false with a nil error when no record has exactly the
// given name. Any non-nil error is a *RepositoryError.
type Repository interface {
	Lookup(ctx context.Context, name string) (record types.PowerRecord, found bool, err error)
	Close() error
}

// Open picks a backend from the DSN: postgres:// and postgresql:// URLs connect
// to PostgreSQL, anything else is treated as a SQLite file path.
func Open(ctx context.Context, dsn string) (Repository, error) {
	if IsPostgresDSN(dsn) {
		store, err := ConnectPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	store, err := OpenSQLite(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// IsPostgresDSN reports whether dsn is a PostgreSQL connection URL.
func IsPostgresDSN(dsn string) bool {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}
