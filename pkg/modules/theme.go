package modules

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/arthur-debert/rigup/pkg/detect"
	"github.com/arthur-debert/rigup/pkg/engine"
	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/textpatch"
	"github.com/arthur-debert/rigup/pkg/types"
)

const powerlevel10kRepo = "https://github.com/romkatv/powerlevel10k.git"

var themeKeyPattern = regexp.MustCompile(`^ZSH_THEME=`)

// Theme provisions the powerlevel10k prompt theme and manages the
// ZSH_THEME line in ~/.zshrc.
type Theme struct{}

func (m *Theme) Name() string        { return "theme" }
func (m *Theme) Description() string { return "powerlevel10k prompt theme" }

func (m *Theme) Detect(_ context.Context, run *engine.Run) (types.Capability, error) {
	return detect.Dir(run.FS, "powerlevel10k", m.themeDir(run)), nil
}

func (m *Theme) Apply(ctx context.Context, run *engine.Run) error {
	logger := logging.GetLogger("modules.theme")

	// The theme installs under oh-my-zsh's custom tree, so the
	// framework has to be there first.
	if cap := detect.Dir(run.FS, "ohmyzsh", filepath.Join(run.Home, ".oh-my-zsh")); !cap.Installed {
		return errors.New(errors.ErrPreconditionMissing,
			"oh-my-zsh is not installed; run the ohmyzsh module first")
	}

	cap, _ := m.Detect(ctx, run)
	if !cap.Installed {
		logger.Info().Msg("Cloning powerlevel10k")
		if _, err := run.Exec.Run(ctx, "git", "clone", "--depth=1", powerlevel10kRepo, m.themeDir(run)); err != nil {
			return err
		}
	}

	res, err := run.Patcher.UpsertLine(filepath.Join(run.Home, ".zshrc"), textpatch.LineSpec{
		Key:         themeKeyPattern,
		Replacement: fmt.Sprintf("ZSH_THEME=%q", run.Config.Zsh.Theme),
		Comment:     "# Prompt theme managed by rigup",
		Description: "zsh theme before rigup update",
	})
	if err != nil {
		return err
	}

	logger.Info().Str("outcome", res.Outcome.String()).Str("detail", res.Detail).Msg("Theme line processed")
	return nil
}

func (m *Theme) themeDir(run *engine.Run) string {
	return filepath.Join(run.Home, ".oh-my-zsh", "custom", "themes", "powerlevel10k")
}
