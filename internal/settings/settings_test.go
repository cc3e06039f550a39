package settings

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCustomURLAllowed_DefaultsFalse(t *testing.T) {
	s := openTestStore(t)
	require.False(t, s.CustomURLAllowed())
}

func TestCustomURLAllowed_Persists(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SetCustomURLAllowed(true))
	require.True(t, s.CustomURLAllowed())

	require.NoError(t, s.SetCustomURLAllowed(false))
	require.False(t, s.CustomURLAllowed())
}

func TestLastSelection(t *testing.T) {
	s := openTestStore(t)

	clusterName, customURL := s.LastSelection()
	require.Empty(t, clusterName)
	require.Empty(t, customURL)

	require.NoError(t, s.SaveSelection("testnet", ""))
	clusterName, customURL = s.LastSelection()
	require.Equal(t, "testnet", clusterName)
	require.Empty(t, customURL)

	require.NoError(t, s.SaveSelection("custom", "http://10.0.0.5:8899"))
	clusterName, customURL = s.LastSelection()
	require.Equal(t, "custom", clusterName)
	require.Equal(t, "http://10.0.0.5:8899", customURL)
}

func TestOpen_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "settings.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}
