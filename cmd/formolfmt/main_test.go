package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/eepp/formol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "style.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfigFile(t, "maxLineLen: 100\nstartCol: 4\nprefix: '// '\n")

	cfg, err := loadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, formol.Config{MaxLineLen: 100, StartCol: 4, Prefix: "// "}, cfg)
}

func TestLoadConfigFileInvalid(t *testing.T) {
	path := writeConfigFile(t, "maxLineLen: [nope\n")

	_, err := loadConfigFile(path)
	require.Error(t, err)
}

func TestResolveConfig(t *testing.T) {
	t.Run("flags only", func(t *testing.T) {
		cfg, err := resolveConfig("", 72, 0, "# ", nil)
		require.NoError(t, err)
		assert.Equal(t, formol.Config{MaxLineLen: 72, Prefix: "# "}, cfg)
	})

	t.Run("config file wins over flag defaults", func(t *testing.T) {
		path := writeConfigFile(t, "maxLineLen: 100\n")

		cfg, err := resolveConfig(path, 72, 0, "# ", nil)
		require.NoError(t, err)
		assert.Equal(t, 100, cfg.MaxLineLen)
	})

	t.Run("explicit flag wins over config file", func(t *testing.T) {
		path := writeConfigFile(t, "maxLineLen: 100\n")

		cfg, err := resolveConfig(path, 50, 0, "# ", map[string]bool{"width": true})
		require.NoError(t, err)
		assert.Equal(t, 50, cfg.MaxLineLen)
	})

	t.Run("missing config file", func(t *testing.T) {
		_, err := resolveConfig(filepath.Join(t.TempDir(), "nope.yaml"), 72, 0, "# ", nil)
		require.Error(t, err)
	})
}

func TestWriteOutput(t *testing.T) {
	t.Run("to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.txt")

		require.NoError(t, writeOutput(path, "• Hello."))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "• Hello.\n", string(data))
	})

	t.Run("unwritable path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing-dir", "out.txt")
		require.Error(t, writeOutput(path, "• Hello."))
	})
}
