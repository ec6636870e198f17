package main

import (
	"github.com/arthur-debert/rigup/pkg/backup"
	"github.com/arthur-debert/rigup/pkg/config"
	"github.com/arthur-debert/rigup/pkg/engine"
	"github.com/arthur-debert/rigup/pkg/filesystem"
	"github.com/arthur-debert/rigup/pkg/paths"
	"github.com/arthur-debert/rigup/pkg/textpatch"
	"github.com/arthur-debert/rigup/pkg/types"
	"github.com/arthur-debert/rigup/pkg/ui"
)

// runContext bundles the per-invocation wiring shared by the commands.
type runContext struct {
	paths   *paths.Paths
	cfg     *config.Config
	run     *engine.Run
	printer *ui.Printer
}

func executionMode() types.ExecutionMode {
	if dryRun {
		return types.ModeSimulate
	}
	return types.ModeApply
}

// backupsDir resolves the backup base directory: the configured override
// wins, otherwise the XDG data location.
func backupsDir(p *paths.Paths, cfg *config.Config) (string, error) {
	if cfg.Backup.Dir != "" {
		return paths.ExpandHome(cfg.Backup.Dir)
	}
	return p.BackupsDir(), nil
}

// newRunContext resolves paths and configuration and assembles the
// engine.Run every command operates on.
func newRunContext() (*runContext, error) {
	p, err := paths.New()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(p.ConfigFile())
	if err != nil {
		return nil, err
	}

	baseDir, err := backupsDir(p, cfg)
	if err != nil {
		return nil, err
	}

	fs := filesystem.NewOS()
	mode := executionMode()
	session := backup.NewSession(fs, p.Home(), baseDir, mode, cfg.Backup.Enabled && !noBackup, nil)

	run := &engine.Run{
		FS:      fs,
		Home:    p.Home(),
		Paths:   p,
		Config:  cfg,
		Session: session,
		Mode:    mode,
		Decider: ui.NewConsoleDecider(autoYes),
		Patcher: textpatch.New(fs, session, mode),
		Exec:    engine.NewRunner(mode),
	}

	return &runContext{
		paths:   p,
		cfg:     cfg,
		run:     run,
		printer: ui.NewPrinter(ui.FormatAuto),
	}, nil
}
