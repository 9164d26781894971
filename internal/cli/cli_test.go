package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/colm/gateway"
)

func TestLoadDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gpt-4o:\n  model_name: gpt-4o\n  parallel: 4\n"), 0o644))

	dir, err := LoadDirectory(path, "gpt-4o")
	require.NoError(t, err)
	assert.Equal(t, 4, dir.Parallel("gpt-4o"))

	_, err = LoadDirectory(path, "judge")
	assert.ErrorIs(t, err, gateway.ErrUnknownBackend)
}
