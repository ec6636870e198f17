// Package backup implements the backup/restore engine: session-scoped,
// timestamped archives of original files taken before any mutation, with
// a manifest enabling exact reversal.
//
// A session's on-disk layout is <baseDir>/<sessionID>/ holding a
// manifest.txt plus a mirrored relative-path tree of copied files. The
// session ID is a second-resolution timestamp (20060102_150405) which
// sorts chronologically as a string.
package backup
