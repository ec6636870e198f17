package backup

import (
	"path/filepath"
	"sort"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/types"
)

// PruneResult reports what a prune did, or would do in simulate mode.
type PruneResult struct {
	Kept    []string
	Deleted []string
}

// Prune removes all but the newest keep sessions under baseDir. Session
// identifiers sort chronologically as strings, so "newest" is a plain
// descending string sort. In simulate mode the exact list of directories
// that would be deleted is reported without touching disk.
func Prune(fs types.FS, baseDir string, keep int, mode types.ExecutionMode) (PruneResult, error) {
	logger := logging.GetLogger("backup.prune")
	var result PruneResult

	if keep < 0 {
		return result, errors.Newf(errors.ErrInvalidInput, "keep count must be >= 0, got %d", keep)
	}

	sessions, err := ListSessions(fs, baseDir)
	if err != nil {
		return result, err
	}

	ids := make([]string, 0, len(sessions))
	for _, s := range sessions {
		ids = append(ids, s.ID)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))

	for i, id := range ids {
		if i < keep {
			result.Kept = append(result.Kept, id)
			continue
		}
		dir := filepath.Join(baseDir, id)
		if mode.IsSimulate() {
			logger.Info().Str("dir", dir).Msg("Would delete session")
			result.Deleted = append(result.Deleted, id)
			continue
		}
		if err := fs.RemoveAll(dir); err != nil {
			return result, errors.Wrapf(err, errors.ErrFileAccess, "cannot delete session %s", dir)
		}
		logger.Info().Str("session", id).Msg("Deleted session")
		result.Deleted = append(result.Deleted, id)
	}

	return result, nil
}
