// Package filesystem provides filesystem implementations for rigup.
//
// This package contains implementations of the types.FS interface,
// including the standard OS filesystem and an afero-backed filesystem
// used in tests.
package filesystem
