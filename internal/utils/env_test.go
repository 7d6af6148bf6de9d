package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvironmentKeepsExistingValues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("SPONGE_BASE_URL=http://localhost:8787\nSPONGE_API_KEY=sponge_from_file\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("SPONGE_API_KEY", "sponge_from_env")
	t.Setenv("SPONGE_BASE_URL", "")
	require.NoError(t, os.Unsetenv("SPONGE_BASE_URL"))

	loaded := LoadEnvironment()
	assert.Contains(t, loaded, ".env")
	assert.Equal(t, "http://localhost:8787", os.Getenv("SPONGE_BASE_URL"))
	assert.Equal(t, "sponge_from_env", os.Getenv("SPONGE_API_KEY"))
}
