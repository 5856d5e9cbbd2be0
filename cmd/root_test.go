package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "desktop-mcp version "+version)
}

func TestToolsCommand(t *testing.T) {
	out, err := executeCommand(t, "tools", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "move_mouse")
	assert.Contains(t, out, "clear_clipboard")

	out, err = executeCommand(t, "tools", "--format", "json")
	require.NoError(t, err)

	var infos []struct {
		Name        string         `json:"name"`
		Mutates     bool           `json:"mutates"`
		InputSchema map[string]any `json:"inputSchema"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.NotEmpty(t, infos)

	for _, info := range infos {
		if info.Name != "move_mouse" {
			continue
		}
		assert.True(t, info.Mutates)
		props, ok := info.InputSchema["properties"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, props, "x")
		assert.Contains(t, props, "y")
		return
	}
	t.Fatal("move_mouse missing from tools output")
}

func TestCallCommandOnVirtualBackend(t *testing.T) {
	out, err := executeCommand(t, "--backend", "virtual", "call", "get_screen_size")
	require.NoError(t, err)

	var res struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Success)
	assert.EqualValues(t, 1920, res.Data["width"])
	assert.EqualValues(t, 1080, res.Data["height"])
}

func TestCallCommandReportsToolFailure(t *testing.T) {
	out, err := executeCommand(t, "--backend", "virtual", "call", "move_mouse", `{"x": 99999, "y": 1}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "move_mouse failed")
	assert.Contains(t, out, `"success": false`)
	assert.Contains(t, out, "99999")
}

func TestCallCommandUnknownTool(t *testing.T) {
	_, err := executeCommand(t, "--backend", "virtual", "call", "warp_cursor")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown tool "warp_cursor"`)
}

func TestCallArgs(t *testing.T) {
	raw, err := callArgs(strings.NewReader(`{"x": 1}`), []string{"move_mouse", "-"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"x": 1}`, string(raw))

	raw, err = callArgs(nil, []string{"get_screen_size"})
	require.NoError(t, err)
	assert.Nil(t, raw)

	_, err = callArgs(nil, []string{"move_mouse", `{"x":`})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, err := executeCommand(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully created")
	assert.FileExists(t, path)

	_, err = executeCommand(t, "--config", path, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	out, err = executeCommand(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "backend:")
	assert.Contains(t, out, "screenshot:")

	_, err = executeCommand(t, "--config", path, "config", "init", "--overwrite")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "max_coordinate: 10000")
}
