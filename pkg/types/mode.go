package types

// ExecutionMode selects between really mutating the filesystem and
// simulating the run. It is passed alongside the backup session into
// every mutating operation; the write and copy primitives are the single
// chokepoints that check it.
type ExecutionMode int

const (
	// ModeApply performs real filesystem mutations.
	ModeApply ExecutionMode = iota
	// ModeSimulate computes and reports intended changes without
	// touching the filesystem.
	ModeSimulate
)

// String returns the string representation of the mode.
func (m ExecutionMode) String() string {
	switch m {
	case ModeApply:
		return "apply"
	case ModeSimulate:
		return "simulate"
	default:
		return "unknown"
	}
}

// IsSimulate reports whether the mode is a dry run.
func (m ExecutionMode) IsSimulate() bool {
	return m == ModeSimulate
}
