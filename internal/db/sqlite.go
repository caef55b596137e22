package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/powercards/internal/types"
	_ "modernc.org/sqlite"
)

var sqliteLookupQuery = fmt.Sprintf(
	`SELECT %s, %s, %s FROM %s WHERE %s = ? LIMIT 1`,
	nameColumn, usageColumn, markupColumn, PowersTable, nameColumn,
)

// SQLiteStore is a read-only powers store backed by a SQLite file.
type SQLiteStore struct {
	sqlDB *sql.DB
	path  string
}

// OpenSQLite opens the SQLite file at path read-only and checks that it holds
// a powers table. A missing file is an error; the store is never created.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &RepositoryError{Message: "store path is required"}
	}
	cleanPath := filepath.Clean(path)

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, &RepositoryError{Message: fmt.Sprintf("store not accessible: %s", cleanPath), Cause: err}
	}
	if info.IsDir() {
		return nil, &RepositoryError{Message: fmt.Sprintf("store path is a directory: %s", cleanPath)}
	}

	dsn, err := sqliteDSN(cleanPath)
	if err != nil {
		return nil, &RepositoryError{Message: "resolve store path", Cause: err}
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &RepositoryError{Message: "open sqlite db", Cause: err}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, &RepositoryError{Message: "ping sqlite db", Cause: err}
	}

	store := &SQLiteStore{sqlDB: sqlDB, path: cleanPath}
	if err := store.checkSchema(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return store, nil
}

// sqliteDSN returns a read-only file: URI for path. The path is escaped so
// that '#', '?' and '%' in file names stay part of the name.
func sqliteDSN(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	slashed := filepath.ToSlash(abs)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	u := url.URL{
		Scheme:   "file",
		Path:     slashed,
		RawQuery: "mode=ro&_pragma=query_only(1)&_pragma=busy_timeout(5000)",
	}
	return u.String(), nil
}

// checkSchema fails when the powers table is missing or has the wrong columns.
func (s *SQLiteStore) checkSchema(ctx context.Context) error {
	probe := fmt.Sprintf(`SELECT %s, %s, %s FROM %s LIMIT 0`, nameColumn, usageColumn, markupColumn, PowersTable)
	rows, err := s.sqlDB.QueryContext(ctx, probe)
	if err != nil {
		return &RepositoryError{Message: fmt.Sprintf("store %s has no usable %s table", s.path, PowersTable), Cause: err}
	}
	return rows.Close()
}

// Lookup returns the record whose name exactly equals name.
func (s *SQLiteStore) Lookup(ctx context.Context, name string) (types.PowerRecord, bool, error) {
	if s == nil || s.sqlDB == nil {
		return types.PowerRecord{}, false, &RepositoryError{Message: "store is not open"}
	}

	var rowName, usage, markup sql.NullString
	err := s.sqlDB.QueryRowContext(ctx, sqliteLookupQuery, name).Scan(&rowName, &usage, &markup)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.PowerRecord{}, false, nil
		}
		return types.PowerRecord{}, false, &RepositoryError{Message: fmt.Sprintf("failed to look up power %q", name), Cause: err}
	}

	return types.PowerRecord{
		Name:   rowName.String,
		Usage:  usage.String,
		Markup: markup.String,
	}, true, nil
}

// Close releases the SQLite connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}
