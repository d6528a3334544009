package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBlocks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"confirm: b-confirm\nadd_lunch_menu: b-lunch\nlogin: b-login\n"), 0o644))

	blocks, err := LoadBlocks(path)
	require.NoError(t, err)
	assert.Equal(t, "b-confirm", blocks.Confirm)
	assert.Equal(t, "b-lunch", blocks.AddLunchMenu)
	assert.Equal(t, "b-login", blocks.Login)
	assert.Empty(t, blocks.DeleteMenu)
}

func TestLoadBlocksMissingFile(t *testing.T) {
	_, err := LoadBlocks(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
