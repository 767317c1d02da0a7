package migrate

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"m/001_create_a.up.sql":   {Data: []byte("CREATE TABLE a (id INTEGER)")},
		"m/001_create_a.down.sql": {Data: []byte("DROP TABLE a")},
		"m/002_create_b.up.sql":   {Data: []byte("CREATE TABLE b (id INTEGER)")},
		"m/002_create_b.down.sql": {Data: []byte("DROP TABLE b")},
		"m/README.md":             {Data: []byte("ignored")},
	}
}

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&n))
	return n == 1
}

func TestGetMigrations(t *testing.T) {
	migrations, err := NewFSProvider(testFS(), "m", "").GetMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	for _, m := range migrations {
		assert.NotEmpty(t, m.Up)
		assert.NotEmpty(t, m.Down)
	}
}

func TestMigrateUpAndDown(t *testing.T) {
	db := openDB(t)
	var applied []string
	m := NewMigrator(db, NewFSProvider(testFS(), "m", ""), func(format string, args ...any) {
		applied = append(applied, format)
	})

	require.NoError(t, m.MigrateUp())
	v, err := m.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.True(t, tableExists(t, db, "a"))
	assert.True(t, tableExists(t, db, "b"))
	assert.Len(t, applied, 2)

	// Running again is a no-op.
	require.NoError(t, m.MigrateUp())
	assert.Len(t, applied, 2)

	require.NoError(t, m.MigrateTo(1))
	v, err = m.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.True(t, tableExists(t, db, "a"))
	assert.False(t, tableExists(t, db, "b"))

	require.NoError(t, m.MigrateTo(0))
	v, err = m.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 0, v)
	assert.False(t, tableExists(t, db, "a"))
}

func TestMissingDownMigration(t *testing.T) {
	fsys := fstest.MapFS{
		"m/001_only_up.up.sql": {Data: []byte("CREATE TABLE c (id INTEGER)")},
	}
	m := NewMigrator(openDB(t), NewFSProvider(fsys, "m", ""), nil)
	require.NoError(t, m.MigrateUp())
	assert.Error(t, m.MigrateTo(0))
}
