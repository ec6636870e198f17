package backup

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/types"
)

var sessionIDPattern = regexp.MustCompile(`^\d{8}_\d{6}$`)

// RestoreResult reports what a restore did.
type RestoreResult struct {
	SessionID string
	Restored  int
	Skipped   int
}

// SessionInfo describes one stored session for listing.
type SessionInfo struct {
	ID        string
	FileCount int
}

// Restore copies every backed-up file of the given session back over its
// original location. Restore is a hard rollback, not a merge: originals
// are overwritten unconditionally and parent directories are recreated
// as needed. Entries whose backed-up file is missing are individually
// skipped and counted, never fatal to the whole restore.
func Restore(fs types.FS, baseDir, sessionID string) (RestoreResult, error) {
	logger := logging.GetLogger("backup.restore")
	result := RestoreResult{SessionID: sessionID}

	root := filepath.Join(baseDir, sessionID)
	if _, err := fs.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return result, errors.Newf(errors.ErrSessionNotFound, "no backup session %q under %s", sessionID, baseDir)
		}
		return result, errors.Wrapf(err, errors.ErrFileAccess, "cannot access session %s", root)
	}

	data, err := fs.ReadFile(filepath.Join(root, ManifestFileName))
	if err != nil {
		if os.IsNotExist(err) {
			// A session without a manifest has nothing restorable
			return result, nil
		}
		return result, errors.Wrapf(err, errors.ErrFileAccess, "cannot read manifest for session %s", sessionID)
	}

	for _, entry := range parseManifest(data) {
		src := filepath.Join(root, entry.Relative)
		info, err := fs.Stat(src)
		if err != nil {
			logger.Warn().Str("path", src).Msg("Backed-up file missing, skipping entry")
			result.Skipped++
			continue
		}

		if err := fs.MkdirAll(filepath.Dir(entry.Original), 0755); err != nil {
			logger.Warn().Err(err).Str("path", entry.Original).Msg("Cannot recreate parent directory, skipping entry")
			result.Skipped++
			continue
		}

		content, err := fs.ReadFile(src)
		if err != nil {
			logger.Warn().Err(err).Str("path", src).Msg("Cannot read backed-up file, skipping entry")
			result.Skipped++
			continue
		}
		if err := fs.WriteFile(entry.Original, content, info.Mode().Perm()); err != nil {
			logger.Warn().Err(err).Str("path", entry.Original).Msg("Cannot restore file, skipping entry")
			result.Skipped++
			continue
		}
		if err := fs.Chmod(entry.Original, info.Mode().Perm()); err != nil {
			logger.Warn().Err(err).Str("path", entry.Original).Msg("Restored content but could not restore mode")
		}

		logger.Info().Str("path", entry.Original).Msg("Restored")
		result.Restored++
	}

	return result, nil
}

// ListSessions enumerates the sessions stored under baseDir, oldest
// first. A missing base directory yields an empty list, not an error.
func ListSessions(fs types.FS, baseDir string) ([]SessionInfo, error) {
	entries, err := fs.ReadDir(baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read backup directory %s", baseDir)
	}

	var sessions []SessionInfo
	for _, entry := range entries {
		if !entry.IsDir() || !sessionIDPattern.MatchString(entry.Name()) {
			continue
		}
		count, err := countFiles(fs, filepath.Join(baseDir, entry.Name()))
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, SessionInfo{ID: entry.Name(), FileCount: count})
	}

	sort.Slice(sessions, func(i, j int) bool { return sessions[i].ID < sessions[j].ID })
	return sessions, nil
}

// countFiles counts the backed-up files in a session directory, the
// manifest excluded.
func countFiles(fs types.FS, root string) (int, error) {
	var walk func(dir string) (int, error)
	walk = func(dir string) (int, error) {
		entries, err := fs.ReadDir(dir)
		if err != nil {
			return 0, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", dir)
		}
		count := 0
		for _, entry := range entries {
			full := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				sub, err := walk(full)
				if err != nil {
					return 0, err
				}
				count += sub
				continue
			}
			if dir == root && entry.Name() == ManifestFileName {
				continue
			}
			count++
		}
		return count, nil
	}
	return walk(root)
}
