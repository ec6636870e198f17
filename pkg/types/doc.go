// Package types holds the shared types and interfaces used across rigup:
// the filesystem abstraction, the execution mode, detected capabilities,
// and the decision-provider used for interactive confirmations.
package types
