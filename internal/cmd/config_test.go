package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigInitGeneratesDaemonTemplate(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "daemon.json")
	c := ConfigInit{Command: "daemon", Format: "json", Output: dest}
	require.NoError(t, c.Run())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)

	var root map[string]any
	require.NoError(t, json.Unmarshal(data, &root))
	assert.Equal(t, ":12000", root["addr"])
	assert.Equal(t, "1ms", root["pollInterval"])
	assert.Equal(t, true, root["watchProfile"])
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "send.yaml")
	require.NoError(t, os.WriteFile(dest, []byte("addr: x\n"), 0o644))

	c := ConfigInit{Command: "send", Format: "yaml", Output: dest}
	assert.Error(t, c.Run())

	c.Force = true
	assert.NoError(t, c.Run())
}
