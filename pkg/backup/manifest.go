package backup

import (
	"fmt"
	"strings"
)

// ManifestFileName is the name of the manifest inside a session directory.
const ManifestFileName = "manifest.txt"

// ManifestEntry is a single original -> relative mapping, optionally
// carrying a human-readable description rendered as a comment line.
type ManifestEntry struct {
	Original    string
	Relative    string
	Description string
}

// formatManifest renders entries into the manifest text format:
//
//	<originalAbsolutePath> -> <sessionRelativePath>
//	  # optional description
//
// Lines starting with # are pure comments.
func formatManifest(sessionID string, entries []ManifestEntry) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# rigup backup session %s\n", sessionID)
	for _, e := range entries {
		fmt.Fprintf(&b, "%s -> %s\n", e.Original, e.Relative)
		if e.Description != "" {
			fmt.Fprintf(&b, "  # %s\n", e.Description)
		}
	}
	return []byte(b.String())
}

// parseManifest extracts the mapping lines from manifest text. Blank
// lines, comment lines, and anything that does not match the mapping
// grammar are ignored, never treated as errors.
func parseManifest(data []byte) []ManifestEntry {
	var entries []ManifestEntry
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		idx := strings.Index(line, " -> ")
		if idx < 0 {
			continue
		}
		orig := strings.TrimSpace(line[:idx])
		rel := strings.TrimSpace(line[idx+len(" -> "):])
		if orig == "" || rel == "" {
			continue
		}
		entries = append(entries, ManifestEntry{Original: orig, Relative: rel})
	}
	return entries
}
