// Package paths provides centralized path handling for rigup.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/rigup/pkg/errors"
)

// Environment variable names
const (
	// EnvDataDir overrides the XDG data directory for rigup
	EnvDataDir = "RIGUP_DATA_DIR"

	// EnvConfigDir overrides the XDG config directory for rigup
	EnvConfigDir = "RIGUP_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for rigup
	EnvStateDir = "RIGUP_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
// IMPORTANT: these constants define rigup's on-disk layout and are not
// user-configurable; the backup layout in particular must stay stable
// so older sessions remain restorable.
const (
	// AppDirName is the directory name for rigup-specific files
	AppDirName = "rigup"

	// BackupsDirName is the subdirectory holding backup sessions
	BackupsDirName = "backups"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "rigup.toml"

	// LogFileName is the name of the log file
	LogFileName = "rigup.log"
)

// Paths provides centralized path management for rigup
type Paths struct {
	home      string
	dataDir   string
	configDir string
	stateDir  string
}

// New resolves all rigup paths from the environment. It fails only when
// the home directory cannot be determined.
func New() (*Paths, error) {
	home, err := GetHomeDirectory()
	if err != nil {
		return nil, err
	}

	p := &Paths{home: home}

	if dir := os.Getenv(EnvDataDir); dir != "" {
		p.dataDir = dir
	} else {
		p.dataDir = filepath.Join(dataHome(), AppDirName)
	}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = dir
	} else {
		p.configDir = filepath.Join(configHome(), AppDirName)
	}

	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.stateDir = dir
	} else {
		p.stateDir = filepath.Join(stateHome(), AppDirName)
	}

	return p, nil
}

// Home returns the user's home directory.
func (p *Paths) Home() string { return p.home }

// DataDir returns the XDG data directory for rigup.
func (p *Paths) DataDir() string { return p.dataDir }

// ConfigDir returns the XDG config directory for rigup.
func (p *Paths) ConfigDir() string { return p.configDir }

// StateDir returns the XDG state directory for rigup.
func (p *Paths) StateDir() string { return p.stateDir }

// BackupsDir returns the base directory holding backup sessions.
func (p *Paths) BackupsDir() string { return filepath.Join(p.dataDir, BackupsDirName) }

// ConfigFile returns the path of the user configuration file.
func (p *Paths) ConfigFile() string { return filepath.Join(p.configDir, ConfigFileName) }

// LogFile returns the path of the log file.
func (p *Paths) LogFile() string { return filepath.Join(p.stateDir, LogFileName) }

// GetHomeDirectory returns the user's home directory.
// It first tries os.UserHomeDir(), then falls back to the HOME environment
// variable. If both fail, it returns an error rather than using dangerous
// defaults.
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}

	homeDir = os.Getenv(EnvHome)
	if homeDir != "" {
		return homeDir, nil
	}

	return "", errors.New(errors.ErrFileAccess,
		"unable to determine home directory: neither os.UserHomeDir() nor HOME environment variable are available")
}

// ExpandHome expands the ~ character to the user's home directory.
// Returns an error if home directory cannot be determined.
func ExpandHome(path string) (string, error) {
	if path == "~" {
		return GetHomeDirectory()
	}

	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		homeDir, err := GetHomeDirectory()
		if err != nil {
			return "", fmt.Errorf("cannot expand ~: %w", err)
		}
		return filepath.Join(homeDir, path[2:]), nil
	}

	return path, nil
}

// The xdg package caches directories at init time; honor the standard
// variables directly so tests using t.Setenv see their overrides.

func dataHome() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	return xdg.DataHome
}

func configHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	return xdg.ConfigHome
}

func stateHome() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return dir
	}
	return xdg.StateHome
}
