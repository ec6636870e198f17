package modules

import (
	"context"

	"github.com/arthur-debert/rigup/pkg/engine"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/types"
)

const brewInstallCommand = `curl -fsSL https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh | bash`

// Homebrew provisions the Homebrew package manager. The package manager
// itself is an opaque external capability: rigup only asks "is it
// installed" and invokes its installer, nothing more.
type Homebrew struct{}

func (m *Homebrew) Name() string        { return "homebrew" }
func (m *Homebrew) Description() string { return "Homebrew package manager" }

func (m *Homebrew) Detect(ctx context.Context, run *engine.Run) (types.Capability, error) {
	return run.CommandProbe(ctx, "brew", "--version"), nil
}

func (m *Homebrew) Apply(ctx context.Context, run *engine.Run) error {
	logger := logging.GetLogger("modules.homebrew")

	cap, _ := m.Detect(ctx, run)
	if cap.Installed {
		logger.Info().Str("version", cap.Version).Msg("Homebrew already installed")
		return nil
	}

	logger.Info().Msg("Installing Homebrew")
	_, err := run.Exec.Run(ctx, "/bin/bash", "-c", brewInstallCommand)
	return err
}
