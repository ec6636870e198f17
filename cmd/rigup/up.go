package main

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/rigup/pkg/engine"
	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/modules"
	"github.com/arthur-debert/rigup/pkg/ui"
)

var (
	upOnly []string
	upSkip []string
)

func init() {
	upCmd.Flags().StringSliceVar(&upOnly, "only", nil, "Run only the named modules")
	upCmd.Flags().StringSliceVar(&upSkip, "skip", nil, "Skip the named modules")
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Provision the environment",
	Long: `Up runs every provisioning module in order: homebrew, oh-my-zsh,
prompt theme, tmux and fonts. Modules that are already in their target
state do nothing, so repeated runs are safe. Files are backed up before
they are modified; use "rigup backups" and "rigup restore" to roll back.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.GetLogger("cmd.up")
		logger.Info().Bool("dryRun", dryRun).Strs("only", upOnly).Strs("skip", upSkip).Msg("Starting up")

		rc, err := newRunContext()
		if err != nil {
			return err
		}
		defer func() {
			if err := rc.run.Session.Close(); err != nil {
				logger.Warn().Err(err).Msg("Could not clean up empty backup session")
			}
		}()

		result := engine.Execute(cmd.Context(), rc.run, modules.All(), engine.Options{
			Only: upOnly,
			Skip: upSkip,
		})

		lines := make([]ui.SummaryLine, 0, len(result.Modules))
		for _, m := range result.Modules {
			lines = append(lines, ui.SummaryLine{
				Name:   m.Module,
				Status: string(m.Status),
				Detail: m.Detail,
			})
		}
		title := "Provisioning summary"
		if dryRun {
			title = "Provisioning summary (dry run)"
		}
		rc.printer.Summary(title, lines)

		if rc.run.Session.EntryCount() > 0 && !dryRun {
			rc.printer.Info("Backed up %d file(s) to session %s", rc.run.Session.EntryCount(), rc.run.Session.ID())
		}

		if result.Fatal {
			// A fatal failure aborts the run, so it is the last entry
			last := result.Modules[len(result.Modules)-1]
			rc.printer.Error("Run aborted: %s", last.Detail)
			if last.Err != nil {
				return last.Err
			}
			return errors.New(errors.ErrInternal, "run aborted")
		}
		if result.Failed() {
			rc.printer.Warning("Some modules failed; the rest of the run completed")
		} else {
			rc.printer.Success("Environment is up to date")
		}
		return nil
	},
}
