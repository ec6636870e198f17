package types

// Capability is a detected external fact about the host: whether a tool
// is installed, and if so at what version and path. Capabilities are
// produced by read-only detectors and consumed as preconditions; they
// are never persisted.
type Capability struct {
	Name      string `json:"name" yaml:"name"`
	Installed bool   `json:"installed" yaml:"installed"`
	Version   string `json:"version,omitempty" yaml:"version,omitempty"`
	Path      string `json:"path,omitempty" yaml:"path,omitempty"`
}
