package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModulesCmd_ListsFixedOrder(t *testing.T) {
	t.Setenv("RIGUP_STATE_DIR", t.TempDir())
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"modules"})

	require.NoError(t, rootCmd.Execute())

	got := out.String()
	assert.Contains(t, got, "homebrew")
	assert.Contains(t, got, "ohmyzsh")
	assert.Contains(t, got, "fonts")
	assert.True(t, len(got) > 0)
}

func TestDetectCmd_RejectsUnknownOutput(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RIGUP_DATA_DIR", t.TempDir())
	t.Setenv("RIGUP_CONFIG_DIR", t.TempDir())
	t.Setenv("RIGUP_STATE_DIR", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"detect", "--output", "xml"})

	assert.Error(t, rootCmd.Execute())
}

func TestDetectCmd_JSONOutput(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RIGUP_DATA_DIR", t.TempDir())
	t.Setenv("RIGUP_CONFIG_DIR", t.TempDir())
	t.Setenv("RIGUP_STATE_DIR", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"detect", "--output", "json"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), `"name": "homebrew"`)
}

func TestBackupsCmd_EmptyIsNotAnError(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RIGUP_DATA_DIR", t.TempDir())
	t.Setenv("RIGUP_CONFIG_DIR", t.TempDir())
	t.Setenv("RIGUP_STATE_DIR", t.TempDir())

	rootCmd.SetArgs([]string{"backups"})
	assert.NoError(t, rootCmd.Execute())
}

func TestRestoreCmd_RequiresSessionID(t *testing.T) {
	t.Setenv("RIGUP_STATE_DIR", t.TempDir())
	rootCmd.SetArgs([]string{"restore"})
	assert.Error(t, rootCmd.Execute())
}
