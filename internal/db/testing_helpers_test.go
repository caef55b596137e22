package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/jonathan/powercards/internal/types"
)

// writeSQLiteStore creates a powers store in a temp dir and returns its path.
func writeSQLiteStore(t *testing.T, records ...types.PowerRecord) string {
	t.Helper()
	return writeSQLiteStoreNamed(t, "powers.db", records...)
}

// writeSQLiteStoreNamed is writeSQLiteStore with a chosen file name.
func writeSQLiteStoreNamed(t *testing.T, fileName string, records ...types.PowerRecord) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), fileName)
	sqlDB, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = sqlDB.Close() }()

	_, err = sqlDB.Exec(`CREATE TABLE powers (Name TEXT, Usage TEXT, Txt TEXT)`)
	require.NoError(t, err)

	for _, r := range records {
		_, err = sqlDB.Exec(`INSERT INTO powers (Name, Usage, Txt) VALUES (?, ?, ?)`, r.Name, r.Usage, r.Markup)
		require.NoError(t, err)
	}
	return path
}
