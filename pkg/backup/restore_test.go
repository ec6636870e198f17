package backup_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/rigup/pkg/backup"
	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/types"
)

func TestRestore_RoundTrip(t *testing.T) {
	fs, home, base := setupSessionTest(t)

	target := filepath.Join(home, ".zshrc")
	original := "plugins=(git)\nsource $ZSH/oh-my-zsh.sh\n"
	require.NoError(t, fs.WriteFile(target, []byte(original), 0600))

	s := backup.NewSession(fs, home, base, types.ModeApply, true, fixedClock)
	require.NoError(t, s.BackupFile(target, "pre-mutation"))

	// Mutate the original after the backup
	require.NoError(t, fs.WriteFile(target, []byte("mutated beyond recognition"), 0644))

	result, err := backup.Restore(fs, base, s.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Restored)
	assert.Equal(t, 0, result.Skipped)

	data, err := fs.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, original, string(data), "content restored byte-for-byte")

	info, err := fs.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "permissions restored")
}

func TestRestore_SessionNotFound(t *testing.T) {
	fs, _, base := setupSessionTest(t)

	_, err := backup.Restore(fs, base, "19990101_000000")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSessionNotFound))
}

func TestRestore_RecreatesDeletedParentDirs(t *testing.T) {
	fs, home, base := setupSessionTest(t)

	dir := filepath.Join(home, ".config", "tool")
	target := filepath.Join(dir, "settings.conf")
	require.NoError(t, fs.MkdirAll(dir, 0755))
	require.NoError(t, fs.WriteFile(target, []byte("k=v"), 0644))

	s := backup.NewSession(fs, home, base, types.ModeApply, true, fixedClock)
	require.NoError(t, s.BackupFile(target, ""))

	require.NoError(t, fs.RemoveAll(filepath.Join(home, ".config")))

	result, err := backup.Restore(fs, base, s.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Restored)

	data, err := fs.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "k=v", string(data))
}

func TestRestore_ManifestRobustness(t *testing.T) {
	fs, home, base := setupSessionTest(t)

	id := "20231215_143022"
	root := filepath.Join(base, id)
	require.NoError(t, fs.MkdirAll(root, 0755))
	require.NoError(t, fs.WriteFile(filepath.Join(root, ".zshrc"), []byte("restored"), 0644))

	target := filepath.Join(home, ".zshrc")
	manifest := "# rigup backup session " + id + "\n" +
		"\n" +
		"# a stray comment\n" +
		target + " -> .zshrc\n" +
		"  # the description for the entry above\n" +
		"this line matches no grammar at all\n" +
		"\n"
	require.NoError(t, fs.WriteFile(filepath.Join(root, backup.ManifestFileName), []byte(manifest), 0644))

	result, err := backup.Restore(fs, base, id)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Restored, "only the mapping line is restored")

	data, err := fs.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "restored", string(data))
}

func TestRestore_MissingBackedUpFileIsSkipped(t *testing.T) {
	fs, home, base := setupSessionTest(t)

	id := "20231215_143022"
	root := filepath.Join(base, id)
	require.NoError(t, fs.MkdirAll(root, 0755))
	require.NoError(t, fs.WriteFile(filepath.Join(root, "present"), []byte("ok"), 0644))

	manifest := filepath.Join(home, "present") + " -> present\n" +
		filepath.Join(home, "gone") + " -> gone\n"
	require.NoError(t, fs.WriteFile(filepath.Join(root, backup.ManifestFileName), []byte(manifest), 0644))

	result, err := backup.Restore(fs, base, id)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Restored)
	assert.Equal(t, 1, result.Skipped)
}

func TestListSessions(t *testing.T) {
	fs, home, base := setupSessionTest(t)

	// A populated session plus unrelated noise in the base directory
	s := backup.NewSession(fs, home, base, types.ModeApply, true, fixedClock)
	target := filepath.Join(home, ".zshrc")
	require.NoError(t, fs.WriteFile(target, []byte("x"), 0644))
	require.NoError(t, s.BackupFile(target, ""))

	require.NoError(t, fs.MkdirAll(filepath.Join(base, "not-a-session"), 0755))
	require.NoError(t, fs.MkdirAll(filepath.Join(base, "20230101_000000"), 0755))

	sessions, err := backup.ListSessions(fs, base)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "20230101_000000", sessions[0].ID)
	assert.Equal(t, 0, sessions[0].FileCount)
	assert.Equal(t, "20231215_143022", sessions[1].ID)
	assert.Equal(t, 1, sessions[1].FileCount, "manifest is not counted as a backed-up file")
}

func TestListSessions_MissingBaseDir(t *testing.T) {
	fs, _, base := setupSessionTest(t)

	sessions, err := backup.ListSessions(fs, base)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}
