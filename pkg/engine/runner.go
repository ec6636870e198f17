package engine

import (
	"context"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/types"
)

// Runner executes external commands on behalf of modules. The package
// manager and the framework installers are reached exclusively through
// this interface, so tests can stub them and simulate mode can log
// instead of executing.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// NewRunner returns the runner appropriate for the execution mode.
func NewRunner(mode types.ExecutionMode) Runner {
	if mode.IsSimulate() {
		return &simulateRunner{logger: logging.GetLogger("engine.exec")}
	}
	return &execRunner{logger: logging.GetLogger("engine.exec")}
}

type execRunner struct {
	logger zerolog.Logger
}

func (r *execRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	r.logger.Debug().Str("command", name).Strs("args", args).Msg("Running command")

	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), errors.Wrapf(err, errors.ErrCommandFailed,
			"command %s failed: %s", name, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

type simulateRunner struct {
	logger zerolog.Logger
}

func (r *simulateRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	r.logger.Info().Str("command", name).Strs("args", args).Msg("Would run command")
	return "", nil
}
