// Package engine sequences the provisioning modules. One module
// completes fully (detect, decide, back up, mutate) before the next
// begins; there is no concurrency and no dependency graph beyond the
// fixed linear order.
//
// Concurrent invocations against the same home directory are not
// supported and not guarded against; rigup is a single-user local tool.
package engine

import (
	"context"

	"github.com/arthur-debert/rigup/pkg/backup"
	"github.com/arthur-debert/rigup/pkg/config"
	"github.com/arthur-debert/rigup/pkg/detect"
	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/paths"
	"github.com/arthur-debert/rigup/pkg/textpatch"
	"github.com/arthur-debert/rigup/pkg/types"
)

// Module is one named unit of provisioning work. The engine only knows
// how to detect its current state and apply its changes; what a unit
// does internally is its own business.
type Module interface {
	Name() string
	Description() string
	Detect(ctx context.Context, run *Run) (types.Capability, error)
	Apply(ctx context.Context, run *Run) error
}

// Run carries everything a module needs for one invocation. The backup
// session is an explicit value here, never a process-wide singleton.
type Run struct {
	FS      types.FS
	Home    string
	Paths   *paths.Paths
	Config  *config.Config
	Session *backup.Session
	Mode    types.ExecutionMode
	Decider types.Decider
	Patcher *textpatch.Patcher
	Exec    Runner

	// DetectCommand overrides the PATH probe, for tests. When nil the
	// real detector is used.
	DetectCommand func(ctx context.Context, name string, versionArgs ...string) types.Capability
}

// CommandProbe probes for an executable on PATH, honoring the test
// override when set.
func (r *Run) CommandProbe(ctx context.Context, name string, versionArgs ...string) types.Capability {
	if r.DetectCommand != nil {
		return r.DetectCommand(ctx, name, versionArgs...)
	}
	return detect.Command(ctx, name, versionArgs...)
}

// Status classifies a module's outcome.
type Status string

const (
	StatusOK      Status = "ok"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// ModuleResult is one module's outcome within a run.
type ModuleResult struct {
	Module string
	Status Status
	Detail string
	Err    error
}

// RunResult aggregates the whole run. Fatal is set when a module failed
// in a way that must abort the run, which maps to a non-zero exit code.
type RunResult struct {
	Modules []ModuleResult
	Fatal   bool
}

// Failed reports whether any module failed.
func (r RunResult) Failed() bool {
	for _, m := range r.Modules {
		if m.Status == StatusFailed {
			return true
		}
	}
	return false
}

// Options selects which modules of the fixed order actually run.
type Options struct {
	Only []string
	Skip []string
}

// Execute runs the modules in order. A backup write failure aborts the
// remaining modules: a mutation whose original cannot be protected must
// not proceed, and neither should anything after it. Other module
// failures are reported and the run moves on.
func Execute(ctx context.Context, run *Run, modules []Module, opts Options) RunResult {
	logger := logging.GetLogger("engine")
	var result RunResult

	skip := make(map[string]bool)
	for _, name := range opts.Skip {
		skip[name] = true
	}
	for _, name := range run.Config.Modules.Skip {
		skip[name] = true
	}
	only := make(map[string]bool)
	for _, name := range opts.Only {
		only[name] = true
	}

	for _, mod := range modules {
		if len(only) > 0 && !only[mod.Name()] {
			continue
		}
		if skip[mod.Name()] {
			result.Modules = append(result.Modules, ModuleResult{
				Module: mod.Name(), Status: StatusSkipped, Detail: "skipped by configuration",
			})
			continue
		}

		logger.Info().Str("module", mod.Name()).Msg("Starting module")

		cap, err := mod.Detect(ctx, run)
		if err != nil {
			// Detection failures are always recoverable: not installed
			logger.Warn().Err(err).Str("module", mod.Name()).Msg("Detection failed, assuming not installed")
			cap = types.Capability{Name: mod.Name()}
		}
		logger.Debug().Str("module", mod.Name()).Bool("installed", cap.Installed).
			Str("version", cap.Version).Msg("Detected state")

		proceed, err := run.Decider.Confirm("Provision "+mod.Name()+"?", true)
		if err != nil {
			result.Modules = append(result.Modules, ModuleResult{
				Module: mod.Name(), Status: StatusFailed, Detail: "confirmation failed", Err: err,
			})
			continue
		}
		if !proceed {
			result.Modules = append(result.Modules, ModuleResult{
				Module: mod.Name(), Status: StatusSkipped, Detail: "declined",
			})
			continue
		}

		if err := mod.Apply(ctx, run); err != nil {
			res := ModuleResult{Module: mod.Name(), Status: StatusFailed, Detail: err.Error(), Err: err}
			result.Modules = append(result.Modules, res)

			if isFatal(err) {
				logger.Error().Err(err).Str("module", mod.Name()).Msg("Fatal failure, aborting run")
				result.Fatal = true
				return result
			}
			logger.Warn().Err(err).Str("module", mod.Name()).Msg("Module failed, continuing")
			continue
		}

		result.Modules = append(result.Modules, ModuleResult{
			Module: mod.Name(), Status: StatusOK, Detail: mod.Description(),
		})
	}

	return result
}

// DetectAll probes every module's state without side effects.
func DetectAll(ctx context.Context, run *Run, modules []Module) []types.Capability {
	caps := make([]types.Capability, 0, len(modules))
	for _, mod := range modules {
		cap, err := mod.Detect(ctx, run)
		if err != nil {
			cap = types.Capability{Name: mod.Name()}
		}
		caps = append(caps, cap)
	}
	return caps
}

// isFatal decides whether a module error must abort the whole run.
// Failures while protecting or replacing state can leave the system
// unrecoverable; everything else is per-module.
func isFatal(err error) bool {
	return errors.IsErrorCode(err, errors.ErrBackupWriteFailed) ||
		errors.IsErrorCode(err, errors.ErrDocumentWrite)
}
