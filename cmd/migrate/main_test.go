package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000001_init.up.sql"), nil, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000001_init.down.sql"), nil, 0o600))

	up, down, err := createMigration(dir, "add_rooms")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "000002_add_rooms.up.sql"), up)
	assert.Equal(t, filepath.Join(dir, "000002_add_rooms.down.sql"), down)
	assert.FileExists(t, up)
	assert.FileExists(t, down)
}

func TestNextMigrationNumber_MissingDir(t *testing.T) {
	assert.Equal(t, 1, nextMigrationNumber(filepath.Join(t.TempDir(), "missing")))
}
