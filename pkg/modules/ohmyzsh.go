package modules

import (
	"context"
	"path/filepath"
	"regexp"

	"github.com/arthur-debert/rigup/pkg/detect"
	"github.com/arthur-debert/rigup/pkg/engine"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/textpatch"
	"github.com/arthur-debert/rigup/pkg/types"
)

const ohMyZshRepo = "https://github.com/ohmyzsh/ohmyzsh.git"

// The plugin list is rigup-managed: everything from the plugins=( line
// through the closing paren is rewritten wholesale, in config order.
var (
	pluginBlockOpen  = regexp.MustCompile(`^\s*plugins=\(`)
	pluginBlockClose = regexp.MustCompile(`\)\s*$`)
)

// pluginBlockAnchor is where the block must land: oh-my-zsh reads the
// plugin list before its own init line, so the block goes immediately
// before it.
const pluginBlockAnchor = "source $ZSH/oh-my-zsh.sh"

// OhMyZsh provisions the oh-my-zsh shell framework and manages the
// plugin block in ~/.zshrc.
type OhMyZsh struct{}

func (m *OhMyZsh) Name() string        { return "ohmyzsh" }
func (m *OhMyZsh) Description() string { return "oh-my-zsh shell framework" }

func (m *OhMyZsh) Detect(_ context.Context, run *engine.Run) (types.Capability, error) {
	return detect.Dir(run.FS, "ohmyzsh", m.installDir(run)), nil
}

func (m *OhMyZsh) Apply(ctx context.Context, run *engine.Run) error {
	logger := logging.GetLogger("modules.ohmyzsh")

	cap, _ := m.Detect(ctx, run)
	if !cap.Installed {
		logger.Info().Msg("Cloning oh-my-zsh")
		if _, err := run.Exec.Run(ctx, "git", "clone", "--depth=1", ohMyZshRepo, m.installDir(run)); err != nil {
			return err
		}
	}

	items := make([]string, 0, len(run.Config.Zsh.Plugins))
	for _, plugin := range run.Config.Zsh.Plugins {
		items = append(items, "  "+plugin)
	}

	res, err := run.Patcher.ReplaceBlock(filepath.Join(run.Home, ".zshrc"), textpatch.BlockSpec{
		Open:        pluginBlockOpen,
		Close:       pluginBlockClose,
		Anchor:      pluginBlockAnchor,
		Header:      "plugins=(",
		Items:       items,
		Footer:      ")",
		Description: "zsh plugin list before rigup update",
	})
	if err != nil {
		return err
	}

	logger.Info().Str("outcome", res.Outcome.String()).Str("detail", res.Detail).Msg("Plugin block processed")
	return nil
}

func (m *OhMyZsh) installDir(run *engine.Run) string {
	return filepath.Join(run.Home, ".oh-my-zsh")
}
