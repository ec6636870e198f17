package backup

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/types"
)

// SessionIDFormat is the time layout used for session identifiers.
// Fixed width, no separators inside the date/time parts, so identifiers
// sort chronologically as plain strings.
const SessionIDFormat = "20060102_150405"

// Session is a run-scoped archive of pre-mutation file copies. It is
// created once per invocation and passed explicitly into every mutating
// call; there is no process-wide current session.
type Session struct {
	id      string
	root    string
	home    string
	fs      types.FS
	mode    types.ExecutionMode
	enabled bool
	created bool
	entries []ManifestEntry
	logger  zerolog.Logger
}

// NewSession creates a backup session rooted under baseDir. When enabled
// is false the session is a no-op: every backup call succeeds trivially
// and records nothing. The session directory is created lazily, only once
// the first real backup occurs.
func NewSession(fs types.FS, home, baseDir string, mode types.ExecutionMode, enabled bool, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	id := now().Format(SessionIDFormat)
	return &Session{
		id:      id,
		root:    filepath.Join(baseDir, id),
		home:    home,
		fs:      fs,
		mode:    mode,
		enabled: enabled,
		logger:  logging.GetLogger("backup"),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Root returns the session's storage directory.
func (s *Session) Root() string { return s.root }

// Enabled reports whether the session records backups at all.
func (s *Session) Enabled() bool { return s.enabled }

// EntryCount returns the number of recorded manifest entries, including
// intent-only entries recorded during simulation.
func (s *Session) EntryCount() int { return len(s.entries) }

// BackupFile copies the file at absPath into the session before a
// mutation touches it. A missing path is a no-op: there is nothing to
// protect. In simulate mode the intent is recorded without disk I/O.
// Repeat calls for the same path overwrite the stored copy.
//
// Any write failure is returned as BACKUP_WRITE_FAILED; callers must
// abort the encompassing mutation when that happens.
func (s *Session) BackupFile(absPath, description string) error {
	if !s.enabled {
		return nil
	}

	info, err := s.fs.Lstat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug().Str("path", absPath).Msg("Nothing to back up, path does not exist")
			return nil
		}
		return errors.Wrapf(err, errors.ErrBackupWriteFailed, "cannot stat %s", absPath)
	}
	if info.IsDir() {
		return s.BackupDir(absPath, description)
	}

	rel := s.relativize(absPath)

	if s.mode.IsSimulate() {
		s.recordEntry(ManifestEntry{Original: absPath, Relative: rel, Description: description})
		s.logger.Info().Str("path", absPath).Msg("Would back up file")
		return nil
	}

	if err := s.copyFile(absPath, rel, info); err != nil {
		return err
	}

	s.recordEntry(ManifestEntry{Original: absPath, Relative: rel, Description: description})
	if err := s.writeManifest(); err != nil {
		return err
	}

	s.logger.Debug().Str("path", absPath).Str("rel", rel).Msg("Backed up file")
	return nil
}

// BackupDir recursively copies a whole subtree into the session. Each
// regular file gets its own manifest entry so restore works uniformly;
// the description is attached to the first entry.
func (s *Session) BackupDir(absDir, description string) error {
	if !s.enabled {
		return nil
	}

	if _, err := s.fs.Stat(absDir); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrBackupWriteFailed, "cannot stat %s", absDir)
	}

	files, err := s.collectFiles(absDir)
	if err != nil {
		return err
	}

	for i, file := range files {
		desc := ""
		if i == 0 {
			desc = description
		}
		rel := s.relativize(file)

		if s.mode.IsSimulate() {
			s.recordEntry(ManifestEntry{Original: file, Relative: rel, Description: desc})
			continue
		}

		info, err := s.fs.Lstat(file)
		if err != nil {
			return errors.Wrapf(err, errors.ErrBackupWriteFailed, "cannot stat %s", file)
		}
		if err := s.copyFile(file, rel, info); err != nil {
			return err
		}
		s.recordEntry(ManifestEntry{Original: file, Relative: rel, Description: desc})
	}

	if s.mode.IsSimulate() {
		s.logger.Info().Str("dir", absDir).Int("files", len(files)).Msg("Would back up directory")
		return nil
	}

	if len(files) > 0 {
		if err := s.writeManifest(); err != nil {
			return err
		}
	}
	s.logger.Debug().Str("dir", absDir).Int("files", len(files)).Msg("Backed up directory")
	return nil
}

// Close removes the session directory when nothing was backed up, so an
// empty session leaves no residue on disk.
func (s *Session) Close() error {
	if !s.created || len(s.entries) > 0 {
		return nil
	}
	return s.fs.RemoveAll(s.root)
}

// relativize computes the session-relative path for an absolute path by
// stripping the home directory. Paths outside home fall back to their
// absolute form minus the leading separator, which keeps the mirrored
// tree collision-free.
func (s *Session) relativize(absPath string) string {
	rel, err := filepath.Rel(s.home, absPath)
	if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return rel
	}
	return strings.TrimPrefix(filepath.Clean(absPath), string(os.PathSeparator))
}

func (s *Session) recordEntry(entry ManifestEntry) {
	// Last write wins for repeated paths
	for i, e := range s.entries {
		if e.Original == entry.Original {
			if entry.Description == "" {
				entry.Description = e.Description
			}
			s.entries[i] = entry
			return
		}
	}
	s.entries = append(s.entries, entry)
}

func (s *Session) ensureRoot() error {
	if s.created {
		return nil
	}
	if err := s.fs.MkdirAll(s.root, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrBackupWriteFailed, "cannot create session directory %s", s.root)
	}
	s.created = true
	return nil
}

func (s *Session) copyFile(absPath, rel string, info os.FileInfo) error {
	if err := s.ensureRoot(); err != nil {
		return err
	}

	dest := filepath.Join(s.root, rel)
	if err := s.fs.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrBackupWriteFailed, "cannot create directory for %s", dest)
	}

	data, err := s.fs.ReadFile(absPath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrBackupWriteFailed, "cannot read %s", absPath)
	}
	if err := s.fs.WriteFile(dest, data, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrBackupWriteFailed, "cannot write %s", dest)
	}
	// WriteFile does not change the mode of an existing file
	if err := s.fs.Chmod(dest, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrBackupWriteFailed, "cannot set mode on %s", dest)
	}
	mtime := info.ModTime()
	if err := s.fs.Chtimes(dest, mtime, mtime); err != nil {
		return errors.Wrapf(err, errors.ErrBackupWriteFailed, "cannot set times on %s", dest)
	}
	return nil
}

func (s *Session) writeManifest() error {
	manifest := filepath.Join(s.root, ManifestFileName)
	if err := s.fs.WriteFile(manifest, formatManifest(s.id, s.entries), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "cannot write manifest %s", manifest)
	}
	return nil
}

// collectFiles walks a directory through the FS interface, returning the
// regular files underneath it in a stable order.
func (s *Session) collectFiles(dir string) ([]string, error) {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrBackupWriteFailed, "cannot read directory %s", dir)
	}
	var files []string
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			sub, err := s.collectFiles(full)
			if err != nil {
				return nil, err
			}
			files = append(files, sub...)
			continue
		}
		files = append(files, full)
	}
	return files, nil
}
