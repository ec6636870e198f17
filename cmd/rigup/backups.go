package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/rigup/pkg/backup"
	"github.com/arthur-debert/rigup/pkg/logging"
)

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List stored backup sessions",
	Long: `Backups lists every stored backup session, oldest first. Each run
that modifies files creates one session; restore a session with
"rigup restore <session-id>".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rc, err := newRunContext()
		if err != nil {
			return err
		}

		baseDir, err := backupsDir(rc.paths, rc.cfg)
		if err != nil {
			return err
		}

		sessions, err := backup.ListSessions(rc.run.FS, baseDir)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			rc.printer.Info("No backup sessions under %s", baseDir)
			return nil
		}

		rc.printer.Info("Backup sessions under %s:", baseDir)
		for _, s := range sessions {
			rc.printer.Info("  %s  (%d file(s))", s.ID, s.FileCount)
		}
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <session-id>",
	Short: "Restore a backup session",
	Long: `Restore copies every file of the given backup session back over its
original location. This is a hard rollback: current file contents are
overwritten unconditionally.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.GetLogger("cmd.restore")
		sessionID := args[0]

		rc, err := newRunContext()
		if err != nil {
			return err
		}

		baseDir, err := backupsDir(rc.paths, rc.cfg)
		if err != nil {
			return err
		}

		proceed, err := rc.run.Decider.Confirm(
			"Overwrite current files with session "+sessionID+"?", false)
		if err != nil {
			return err
		}
		if !proceed {
			rc.printer.Info("Restore cancelled")
			return nil
		}

		logger.Info().Str("session", sessionID).Msg("Restoring session")
		result, err := backup.Restore(rc.run.FS, baseDir, sessionID)
		if err != nil {
			return err
		}

		rc.printer.Success("Restored %d file(s) from session %s", result.Restored, result.SessionID)
		if result.Skipped > 0 {
			rc.printer.Warning("Skipped %d entries, see the log for details", result.Skipped)
		}
		return nil
	},
}

var pruneKeep int

func init() {
	pruneCmd.Flags().IntVar(&pruneKeep, "keep", -1, "How many sessions to keep (default: the configured retention)")
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old backup sessions",
	Long: `Prune deletes all but the newest backup sessions. The retention count
comes from the configuration (backup.keep) unless --keep is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rc, err := newRunContext()
		if err != nil {
			return err
		}

		baseDir, err := backupsDir(rc.paths, rc.cfg)
		if err != nil {
			return err
		}

		keep := rc.cfg.Backup.Keep
		if pruneKeep >= 0 {
			keep = pruneKeep
		}

		result, err := backup.Prune(rc.run.FS, baseDir, keep, rc.run.Mode)
		if err != nil {
			return err
		}

		verb := "Deleted"
		if dryRun {
			verb = "Would delete"
		}
		if len(result.Deleted) == 0 {
			rc.printer.Info("Nothing to prune, %d session(s) kept", len(result.Kept))
			return nil
		}
		rc.printer.Success("%s %d session(s): %s  (%d kept)",
			verb, len(result.Deleted), strings.Join(result.Deleted, ", "), len(result.Kept))
		return nil
	},
}
