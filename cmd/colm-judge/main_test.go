package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()

	f := cmd.Flags().Lookup("setting-file")
	require.NotNil(t, f)
	assert.Equal(t, "arena_hard_judge_config.yaml", f.DefValue)

	f = cmd.Flags().Lookup("endpoint-file")
	require.NotNil(t, f)
	assert.Equal(t, "api_config.yaml", f.DefValue)
}

func TestRootCmd_MissingSettingsFails(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--setting-file", t.TempDir() + "/missing.yaml"})
	cmd.SilenceErrors = true

	assert.Error(t, cmd.Execute())
}
