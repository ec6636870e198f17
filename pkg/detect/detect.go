// Package detect provides read-only probes of the filesystem and
// environment. Probes answer "is capability C present, and at what
// version/path?" and have no side effects; any probe failure simply
// means "not installed".
package detect

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/types"
)

// DefaultTimeout bounds version probes so a detector can never block
// indefinitely on interactive input.
const DefaultTimeout = 5 * time.Second

// Command probes for an executable on PATH and, when versionArgs are
// given, runs it under a timeout to capture a version string.
func Command(ctx context.Context, name string, versionArgs ...string) types.Capability {
	logger := logging.GetLogger("detect")
	cap := types.Capability{Name: name}

	path, err := exec.LookPath(name)
	if err != nil {
		logger.Debug().Str("command", name).Msg("Not found on PATH")
		return cap
	}
	cap.Installed = true
	cap.Path = path

	if len(versionArgs) == 0 {
		return cap
	}

	probeCtx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	cmd := exec.CommandContext(probeCtx, path, versionArgs...)
	cmd.Stdin = nil
	out, err := cmd.Output()
	if err != nil {
		// Installed but the version probe failed; that's still installed
		logger.Debug().Err(err).Str("command", name).Msg("Version probe failed")
		return cap
	}
	cap.Version = firstLine(string(out))

	logger.Debug().Str("command", name).Str("version", cap.Version).Msg("Detected")
	return cap
}

// File probes for a regular file at the given path.
func File(fs types.FS, name, path string) types.Capability {
	cap := types.Capability{Name: name}
	info, err := fs.Stat(path)
	if err != nil || info.IsDir() {
		return cap
	}
	cap.Installed = true
	cap.Path = path
	return cap
}

// Dir probes for a directory at the given path.
func Dir(fs types.FS, name, path string) types.Capability {
	cap := types.Capability{Name: name}
	info, err := fs.Stat(path)
	if err != nil || !info.IsDir() {
		return cap
	}
	cap.Installed = true
	cap.Path = path
	return cap
}

// EnvSet probes for a non-empty environment variable.
func EnvSet(name, variable string) types.Capability {
	cap := types.Capability{Name: name}
	if value := os.Getenv(variable); value != "" {
		cap.Installed = true
		cap.Version = value
	}
	return cap
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
