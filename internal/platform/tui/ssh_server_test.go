package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveHostKeyPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := resolveHostKeyPath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".maze", "host_key"), path)
	assert.DirExists(t, filepath.Join(home, ".maze"))

	custom := filepath.Join(t.TempDir(), "keys", "server_key")
	path, err = resolveHostKeyPath(custom)
	require.NoError(t, err)
	assert.Equal(t, custom, path)
	assert.DirExists(t, filepath.Dir(custom))
}

func TestNewSSHServer(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "host_key")
	cfg.DBPath = filepath.Join(dir, "history.db")
	cfg.MaxSessions = 2

	srv, err := NewSSHServer(cfg)
	require.NoError(t, err)
	defer srv.closeStore()

	assert.Equal(t, "127.0.0.1:0", srv.Addr())
	assert.Zero(t, srv.ActiveSessions())
	assert.NotNil(t, srv.store)

	_, err = os.Stat(cfg.DBPath)
	assert.NoError(t, err)
}

func TestNewSSHServerWithoutHistory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	cfg := DefaultSSHServerConfig()
	cfg.HostKeyPath = filepath.Join(dir, "host_key")
	cfg.DBPath = filepath.Join(blocker, "history.db") // parent is a file

	srv, err := NewSSHServer(cfg)
	require.NoError(t, err)
	assert.Nil(t, srv.store)
}
