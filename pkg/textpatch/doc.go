// Package textpatch applies targeted, reversible edits to human-owned
// configuration files without disturbing unrelated content.
//
// A document is modeled as an ordered sequence of lines with a small
// number of recognized region types: a managed block delimited by
// opening/closing markers, managed single lines identified by a key
// pattern, and free text, which is always preserved verbatim and in
// order.
//
// Every mutation runs an idempotence check first, backs the original up
// into the active backup session before any write, and replaces the
// document atomically (temp file plus rename). The write primitive is
// the single chokepoint that honors the execution mode, so simulation
// is behaviorally identical to a real run up to, but not including,
// the write.
package textpatch
