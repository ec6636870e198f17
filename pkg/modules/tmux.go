package modules

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/rigup/pkg/engine"
	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/textpatch"
	"github.com/arthur-debert/rigup/pkg/types"
)

// tmuxMarker gates the append: when any ~/.tmux.conf line contains it,
// the file is already provisioned.
const tmuxMarker = "Added by rigup"

// Tmux provisions the tmux terminal multiplexer and seeds ~/.tmux.conf
// with the configured lines.
type Tmux struct{}

func (m *Tmux) Name() string        { return "tmux" }
func (m *Tmux) Description() string { return "tmux terminal multiplexer" }

func (m *Tmux) Detect(ctx context.Context, run *engine.Run) (types.Capability, error) {
	return run.CommandProbe(ctx, "tmux", "-V"), nil
}

func (m *Tmux) Apply(ctx context.Context, run *engine.Run) error {
	logger := logging.GetLogger("modules.tmux")

	cap, _ := m.Detect(ctx, run)
	if !cap.Installed {
		if brew := run.CommandProbe(ctx, "brew"); !brew.Installed {
			return errors.New(errors.ErrPreconditionMissing,
				"tmux is not installed and no package manager is available; run the homebrew module first")
		}
		logger.Info().Msg("Installing tmux")
		if _, err := run.Exec.Run(ctx, "brew", "install", "tmux"); err != nil {
			return err
		}
	}

	res, err := run.Patcher.AppendIfMissing(filepath.Join(run.Home, ".tmux.conf"), textpatch.AppendSpec{
		Marker:      tmuxMarker,
		Comment:     "# Added by rigup",
		Lines:       run.Config.Tmux.Lines,
		Description: "tmux config before rigup update",
	})
	if err != nil {
		return err
	}

	logger.Info().Str("outcome", res.Outcome.String()).Msg("tmux config processed")
	return nil
}
