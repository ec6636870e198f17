// Package config loads rigup's layered configuration: built-in defaults,
// then the user's TOML file, then RIGUP_* environment variables, each
// layer overriding the previous one.
package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/rigup/pkg/errors"
)

// Config is the resolved configuration for a run.
type Config struct {
	Backup  BackupConfig  `koanf:"backup"`
	Modules ModulesConfig `koanf:"modules"`
	Zsh     ZshConfig     `koanf:"zsh"`
	Tmux    TmuxConfig    `koanf:"tmux"`
	Fonts   FontsConfig   `koanf:"fonts"`
}

// BackupConfig controls the backup engine.
type BackupConfig struct {
	// Enabled globally toggles backups; when false every backup call is
	// a trivial success.
	Enabled bool `koanf:"enabled"`
	// Keep is the retention count used by prune.
	Keep int `koanf:"keep"`
	// Dir overrides the base backup directory.
	Dir string `koanf:"dir"`
}

// ModulesConfig controls module selection.
type ModulesConfig struct {
	Skip []string `koanf:"skip"`
}

// ZshConfig holds the managed zsh targets.
type ZshConfig struct {
	// Plugins is the managed plugin block, rendered as an ordered list.
	Plugins []string `koanf:"plugins"`
	// Theme is the value for the managed ZSH_THEME line.
	Theme string `koanf:"theme"`
}

// TmuxConfig holds the managed tmux targets.
type TmuxConfig struct {
	// Lines are appended to ~/.tmux.conf when the marker is absent.
	Lines []string `koanf:"lines"`
}

// FontsConfig holds the font installation source.
type FontsConfig struct {
	// Source is a local directory of font files to install; empty means
	// the fonts module has nothing to copy and is skipped.
	Source string `koanf:"source"`
}

// Defaults returns the built-in configuration.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"backup.enabled": true,
		"backup.keep":    5,
		"backup.dir":     "",
		"modules.skip":   []string{},
		"zsh.plugins":    []string{"git", "z", "fzf"},
		"zsh.theme":      "powerlevel10k/powerlevel10k",
		"tmux.lines": []string{
			`set -g default-terminal "screen-256color"`,
			"set -g mouse on",
		},
		"fonts.source": "",
	}
}

// Load resolves configuration from defaults, the given TOML file (if it
// exists), and RIGUP_* environment variables.
func Load(configFile string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := k.Load(file.Provider(configFile), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", configFile)
			}
		}
	}

	// RIGUP_ZSH_THEME=x -> zsh.theme=x
	if err := k.Load(env.Provider("RIGUP_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "RIGUP_")), "_", ".")
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}
