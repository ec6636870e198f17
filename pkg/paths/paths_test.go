package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv(EnvDataDir, "/custom/data")
	t.Setenv(EnvConfigDir, "/custom/config")
	t.Setenv(EnvStateDir, "/custom/state")

	p, err := New()
	require.NoError(t, err)

	assert.Equal(t, "/custom/data", p.DataDir())
	assert.Equal(t, "/custom/config", p.ConfigDir())
	assert.Equal(t, "/custom/state", p.StateDir())
	assert.Equal(t, filepath.Join("/custom/data", "backups"), p.BackupsDir())
	assert.Equal(t, filepath.Join("/custom/config", "rigup.toml"), p.ConfigFile())
	assert.Equal(t, filepath.Join("/custom/state", "rigup.log"), p.LogFile())
}

func TestNew_XDGDefaults(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvConfigDir, "")
	t.Setenv(EnvStateDir, "")
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_STATE_HOME", "/xdg/state")

	p, err := New()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/xdg/data", "rigup"), p.DataDir())
	assert.Equal(t, filepath.Join("/xdg/config", "rigup"), p.ConfigDir())
	assert.Equal(t, filepath.Join("/xdg/state", "rigup"), p.StateDir())
}

func TestGetHomeDirectory(t *testing.T) {
	home, err := GetHomeDirectory()
	require.NoError(t, err)
	assert.NotEmpty(t, home)
}

func TestExpandHome(t *testing.T) {
	home, err := GetHomeDirectory()
	require.NoError(t, err)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare tilde", "~", home},
		{"tilde slash", "~/.zshrc", filepath.Join(home, ".zshrc")},
		{"no tilde", "/etc/hosts", "/etc/hosts"},
		{"tilde in middle untouched", "/a/~/b", "/a/~/b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandHome(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
