package types

import (
	"io/fs"
	"time"
)

// FS is the filesystem interface required for rigup operations.
// The backup engine and the text patcher go through this interface
// exclusively so that tests can run against an in-memory filesystem.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Mutation operations
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error

	// Metadata operations, needed for byte-for-byte backups
	Chmod(name string, mode fs.FileMode) error
	Chtimes(name string, atime, mtime time.Time) error
}

// Decider answers yes/no questions on behalf of the user. The console
// implementation reads from the terminal; tests and --yes runs inject
// a canned one.
type Decider interface {
	// Confirm presents a prompt with a default answer and returns the
	// user's choice.
	Confirm(prompt string, def bool) (bool, error)
}
