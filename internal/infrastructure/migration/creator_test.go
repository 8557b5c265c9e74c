package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add inventory read indexes", "add_inventory_read_indexes"},
		{"Add-NCR-Indexes", "add_ncr_indexes"},
		{"ADD_OQC_INDEXES", "add_oqc_indexes"},
		{"add__movement__indexes", "add_movement_indexes"},
		{"Index Pass 2", "index_pass_2"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigrationWritesPair(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "add balance indexes", "Indexes for the balance list queries")
	require.NoError(t, err)
	require.NotNil(t, mf)

	// Version is the YYYYMMDDHHMMSS timestamp
	assert.Len(t, mf.Version, 14)
	assert.True(t, strings.HasSuffix(mf.UpPath, ".up.sql"))
	assert.True(t, strings.HasSuffix(mf.DownPath, ".down.sql"))

	upBase := strings.TrimSuffix(filepath.Base(mf.UpPath), ".up.sql")
	downBase := strings.TrimSuffix(filepath.Base(mf.DownPath), ".down.sql")
	assert.Equal(t, upBase, downBase)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "add balance indexes")
	assert.Contains(t, string(up), "Indexes for the balance list queries")
	assert.Contains(t, string(up), "read-side indexes/views only")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "Rollback")
}

func TestCreateMigrationCreatesDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "db", "migrations")

	mf, err := CreateMigration(nested, "add ncr indexes", "")
	require.NoError(t, err)
	require.NotNil(t, mf)

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	for _, f := range []string{
		"20260801000001_add_inventory_read_indexes.up.sql",
		"20260801000001_add_inventory_read_indexes.down.sql",
		"20260801000002_add_production_read_indexes.up.sql",
		"20260801000002_add_production_read_indexes.down.sql",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("-- test"), 0644))
	}

	migrations, err := ListMigrations(dir)
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Contains(t, migrations, "20260801000001_add_inventory_read_indexes")
	assert.Contains(t, migrations, "20260801000002_add_production_read_indexes")
}

func TestListMigrationsMissingDirectory(t *testing.T) {
	migrations, err := ListMigrations(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, migrations)
}

func TestListMigrationsSkipsOtherFiles(t *testing.T) {
	dir := t.TempDir()

	for _, f := range []string{
		"20260801000001_add_oqc_indexes.up.sql",
		"20260801000001_add_oqc_indexes.down.sql",
		"README.md",
		".gitkeep",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("x"), 0644))
	}
	// Directories never count, even with a matching suffix
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.up.sql"), 0755))

	migrations, err := ListMigrations(dir)
	require.NoError(t, err)
	require.Len(t, migrations, 1)
	assert.Equal(t, "20260801000001_add_oqc_indexes", migrations[0])
}
