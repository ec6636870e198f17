// pkg/backup/session_test.go
// TEST TYPE: Backup Engine Tests
// DEPENDENCIES: Real filesystem (required for permission/mtime fidelity)
// PURPOSE: Test session creation, file/directory backup, and no-op modes

package backup_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/rigup/pkg/backup"
	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/filesystem"
	"github.com/arthur-debert/rigup/pkg/types"
)

func fixedClock() time.Time {
	return time.Date(2023, 12, 15, 14, 30, 22, 0, time.UTC)
}

func setupSessionTest(t *testing.T) (types.FS, string, string) {
	t.Helper()
	tempDir := t.TempDir()
	home := filepath.Join(tempDir, "home")
	base := filepath.Join(tempDir, "backups")
	fs := filesystem.NewOS()
	require.NoError(t, fs.MkdirAll(home, 0755))
	return fs, home, base
}

func TestNewSession_IDFromClock(t *testing.T) {
	fs, home, base := setupSessionTest(t)

	s := backup.NewSession(fs, home, base, types.ModeApply, true, fixedClock)

	assert.Equal(t, "20231215_143022", s.ID())
	assert.Equal(t, filepath.Join(base, "20231215_143022"), s.Root())
}

func TestBackupFile_CopiesContentAndMetadata(t *testing.T) {
	fs, home, base := setupSessionTest(t)

	target := filepath.Join(home, ".zshrc")
	require.NoError(t, fs.WriteFile(target, []byte("export EDITOR=vim\n"), 0600))
	mtime := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, fs.Chtimes(target, mtime, mtime))

	s := backup.NewSession(fs, home, base, types.ModeApply, true, fixedClock)
	require.NoError(t, s.BackupFile(target, "before plugin update"))

	copied := filepath.Join(s.Root(), ".zshrc")
	data, err := fs.ReadFile(copied)
	require.NoError(t, err)
	assert.Equal(t, "export EDITOR=vim\n", string(data))

	info, err := fs.Stat(copied)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	assert.True(t, info.ModTime().Equal(mtime), "mtime should be preserved")

	manifest, err := fs.ReadFile(filepath.Join(s.Root(), backup.ManifestFileName))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), target+" -> .zshrc")
	assert.Contains(t, string(manifest), "  # before plugin update")
}

func TestBackupFile_MissingPathIsNoOp(t *testing.T) {
	fs, home, base := setupSessionTest(t)

	s := backup.NewSession(fs, home, base, types.ModeApply, true, fixedClock)
	require.NoError(t, s.BackupFile(filepath.Join(home, ".does-not-exist"), ""))

	_, err := fs.Stat(s.Root())
	assert.True(t, os.IsNotExist(err), "session directory must not be created for a no-op")
	assert.Equal(t, 0, s.EntryCount())
}

func TestBackupFile_DisabledSessionRecordsNothing(t *testing.T) {
	fs, home, base := setupSessionTest(t)

	target := filepath.Join(home, ".zshrc")
	require.NoError(t, fs.WriteFile(target, []byte("content"), 0644))

	s := backup.NewSession(fs, home, base, types.ModeApply, false, fixedClock)
	require.NoError(t, s.BackupFile(target, ""))

	_, err := fs.Stat(s.Root())
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, 0, s.EntryCount())
}

func TestBackupFile_SimulateRecordsIntentOnly(t *testing.T) {
	fs, home, base := setupSessionTest(t)

	target := filepath.Join(home, ".zshrc")
	require.NoError(t, fs.WriteFile(target, []byte("content"), 0644))

	s := backup.NewSession(fs, home, base, types.ModeSimulate, true, fixedClock)
	require.NoError(t, s.BackupFile(target, "simulated"))

	_, err := fs.Stat(s.Root())
	assert.True(t, os.IsNotExist(err), "simulate mode must not touch disk")
	assert.Equal(t, 1, s.EntryCount())
}

func TestBackupFile_RepeatedCallLastWriteWins(t *testing.T) {
	fs, home, base := setupSessionTest(t)

	target := filepath.Join(home, ".zshrc")
	require.NoError(t, fs.WriteFile(target, []byte("first"), 0644))

	s := backup.NewSession(fs, home, base, types.ModeApply, true, fixedClock)
	require.NoError(t, s.BackupFile(target, ""))

	require.NoError(t, fs.WriteFile(target, []byte("second"), 0644))
	require.NoError(t, s.BackupFile(target, ""))

	data, err := fs.ReadFile(filepath.Join(s.Root(), ".zshrc"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
	assert.Equal(t, 1, s.EntryCount(), "repeated backups of a path share one manifest entry")
}

func TestBackupDir_CopiesSubtree(t *testing.T) {
	fs, home, base := setupSessionTest(t)

	dir := filepath.Join(home, ".config", "tool")
	require.NoError(t, fs.MkdirAll(filepath.Join(dir, "nested"), 0755))
	require.NoError(t, fs.WriteFile(filepath.Join(dir, "a.conf"), []byte("a"), 0644))
	require.NoError(t, fs.WriteFile(filepath.Join(dir, "nested", "b.conf"), []byte("b"), 0644))

	s := backup.NewSession(fs, home, base, types.ModeApply, true, fixedClock)
	require.NoError(t, s.BackupDir(dir, "tool config"))

	for rel, want := range map[string]string{
		filepath.Join(".config", "tool", "a.conf"):           "a",
		filepath.Join(".config", "tool", "nested", "b.conf"): "b",
	} {
		data, err := fs.ReadFile(filepath.Join(s.Root(), rel))
		require.NoError(t, err, rel)
		assert.Equal(t, want, string(data))
	}
	assert.Equal(t, 2, s.EntryCount())
}

func TestBackupFile_PathOutsideHome(t *testing.T) {
	fs, home, base := setupSessionTest(t)

	outside := filepath.Join(filepath.Dir(home), "elsewhere", "file.txt")
	require.NoError(t, fs.MkdirAll(filepath.Dir(outside), 0755))
	require.NoError(t, fs.WriteFile(outside, []byte("x"), 0644))

	s := backup.NewSession(fs, home, base, types.ModeApply, true, fixedClock)
	require.NoError(t, s.BackupFile(outside, ""))

	// The copy lands somewhere under the session root and restores back
	res, err := backup.Restore(fs, base, s.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Restored)
}

func TestClose_EmptySessionLeavesNoResidue(t *testing.T) {
	fs, home, base := setupSessionTest(t)

	s := backup.NewSession(fs, home, base, types.ModeApply, true, fixedClock)
	require.NoError(t, s.Close())

	_, err := fs.Stat(s.Root())
	assert.True(t, os.IsNotExist(err))
}

func TestBackupFile_UnreadableSourceFails(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	fs, home, base := setupSessionTest(t)

	target := filepath.Join(home, ".secret")
	require.NoError(t, fs.WriteFile(target, []byte("x"), 0644))
	require.NoError(t, fs.Chmod(target, 0000))
	t.Cleanup(func() { _ = fs.Chmod(target, 0644) })

	s := backup.NewSession(fs, home, base, types.ModeApply, true, fixedClock)
	err := s.BackupFile(target, "")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrBackupWriteFailed))
}
