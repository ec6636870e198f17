package textpatch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/rigup/pkg/backup"
	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/types"
)

// Outcome classifies what a mutation did.
type Outcome int

const (
	// OutcomeChanged means the document was (or would be) rewritten.
	OutcomeChanged Outcome = iota
	// OutcomeUnchanged means the document already satisfied the target
	// state; nothing was backed up or written.
	OutcomeUnchanged
	// OutcomeSkippedNoAnchor means the insertion anchor was absent; the
	// mutation was skipped with a warning.
	OutcomeSkippedNoAnchor
	// OutcomeSkippedNoKey means no line matched the upsert key; the
	// document does not use that configuration mechanism.
	OutcomeSkippedNoKey
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeChanged:
		return "changed"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeSkippedNoAnchor:
		return "skipped-no-anchor"
	case OutcomeSkippedNoKey:
		return "skipped-no-key"
	default:
		return "unknown"
	}
}

// Result reports the effect of one mutation.
type Result struct {
	Path    string
	Outcome Outcome
	Detail  string
}

// Changed reports whether the mutation rewrote (or, in simulate mode,
// would rewrite) the document.
func (r Result) Changed() bool { return r.Outcome == OutcomeChanged }

// BlockSpec describes a managed block: content between the first line
// matching Open and the next line matching Close is owned by rigup and
// rewritten wholesale. The fresh block is inserted immediately before
// the first line containing Anchor; ordering matters for the consuming
// shell, so a missing anchor skips the edit instead of appending in the
// wrong place.
type BlockSpec struct {
	Open        *regexp.Regexp
	Close       *regexp.Regexp
	Anchor      string
	Header      string
	Items       []string
	Footer      string
	Description string
}

func (b BlockSpec) render() []string {
	lines := make([]string, 0, len(b.Items)+2)
	lines = append(lines, b.Header)
	lines = append(lines, b.Items...)
	lines = append(lines, b.Footer)
	return lines
}

// LineSpec describes a managed single line matched by key, replaced in
// place, optionally with a companion comment kept immediately above it.
type LineSpec struct {
	Key         *regexp.Regexp
	Replacement string
	Comment     string
	Description string
}

// AppendSpec describes a presence-gated append: when no existing line
// contains Marker, the comment and lines are appended at end of file
// after a separating blank line.
type AppendSpec struct {
	Marker      string
	Comment     string
	Lines       []string
	Description string
}

// Patcher applies text mutations against a filesystem, protected by a
// backup session and gated by the execution mode.
type Patcher struct {
	fs      types.FS
	session *backup.Session
	mode    types.ExecutionMode
	logger  zerolog.Logger
}

// New creates a Patcher. The session must be the run's active backup
// session; it is consulted before every real write.
func New(fsys types.FS, session *backup.Session, mode types.ExecutionMode) *Patcher {
	return &Patcher{
		fs:      fsys,
		session: session,
		mode:    mode,
		logger:  logging.GetLogger("textpatch"),
	}
}

// ReplaceBlock removes the managed block wherever it currently sits and
// inserts the freshly rendered one immediately before the anchor line.
// Content comparison is order- and membership-sensitive: same items in
// a different order still count as needing an update. The target file
// must exist.
func (p *Patcher) ReplaceBlock(path string, spec BlockSpec) (Result, error) {
	doc, err := loadDocument(p.fs, path, true)
	if err != nil {
		return Result{Path: path}, err
	}

	desired := spec.render()

	start, end, found := findBlock(doc.lines, spec.Open, spec.Close)
	if found && equalLines(doc.lines[start:end+1], desired) {
		p.logger.Debug().Str("path", path).Msg("Managed block already up to date")
		return Result{Path: path, Outcome: OutcomeUnchanged}, nil
	}

	lines := doc.lines
	if found {
		lines = append(append([]string{}, lines[:start]...), lines[end+1:]...)
	}

	// First anchor match wins
	anchorIdx := -1
	for i, line := range lines {
		if strings.Contains(line, spec.Anchor) {
			anchorIdx = i
			break
		}
	}
	if anchorIdx < 0 {
		p.logger.Warn().Str("path", path).Str("anchor", spec.Anchor).
			Msg("Anchor line not found, skipping block update")
		return Result{
			Path:    path,
			Outcome: OutcomeSkippedNoAnchor,
			Detail:  fmt.Sprintf("no line containing %q", spec.Anchor),
		}, nil
	}

	updated := make([]string, 0, len(lines)+len(desired))
	updated = append(updated, lines[:anchorIdx]...)
	updated = append(updated, desired...)
	updated = append(updated, lines[anchorIdx:]...)

	detail := fmt.Sprintf("replace managed block (%d items)", len(spec.Items))
	if !found {
		detail = fmt.Sprintf("insert managed block (%d items) before anchor", len(spec.Items))
	}
	if err := p.apply(doc, updated, spec.Description); err != nil {
		return Result{Path: path}, err
	}
	return Result{Path: path, Outcome: OutcomeChanged, Detail: detail}, nil
}

// UpsertLine replaces the first line matching the key pattern in place,
// preserving its position, and keeps the companion comment immediately
// above it. A document with no key line at all does not use this
// configuration mechanism; that is reported, not an error. The target
// file must exist.
func (p *Patcher) UpsertLine(path string, spec LineSpec) (Result, error) {
	doc, err := loadDocument(p.fs, path, true)
	if err != nil {
		return Result{Path: path}, err
	}

	idx := -1
	for i, line := range doc.lines {
		if spec.Key.MatchString(line) {
			idx = i
			break
		}
	}
	if idx < 0 {
		p.logger.Info().Str("path", path).Str("key", spec.Key.String()).
			Msg("No line matches key, document does not use this mechanism")
		return Result{
			Path:    path,
			Outcome: OutcomeSkippedNoKey,
			Detail:  fmt.Sprintf("no line matching %s", spec.Key),
		}, nil
	}

	commentPresent := spec.Comment == "" || (idx > 0 && doc.lines[idx-1] == spec.Comment)
	if doc.lines[idx] == spec.Replacement && commentPresent {
		p.logger.Debug().Str("path", path).Msg("Managed line already up to date")
		return Result{Path: path, Outcome: OutcomeUnchanged}, nil
	}

	updated := append([]string{}, doc.lines...)
	updated[idx] = spec.Replacement
	if !commentPresent {
		updated = append(updated[:idx], append([]string{spec.Comment}, updated[idx:]...)...)
	}

	if err := p.apply(doc, updated, spec.Description); err != nil {
		return Result{Path: path}, err
	}
	return Result{
		Path:    path,
		Outcome: OutcomeChanged,
		Detail:  fmt.Sprintf("set %s", spec.Replacement),
	}, nil
}

// AppendIfMissing appends the given lines at end of file unless some
// existing line already contains the marker. A missing file is created.
func (p *Patcher) AppendIfMissing(path string, spec AppendSpec) (Result, error) {
	doc, err := loadDocument(p.fs, path, false)
	if err != nil {
		return Result{Path: path}, err
	}

	for _, line := range doc.lines {
		if strings.Contains(line, spec.Marker) {
			p.logger.Debug().Str("path", path).Str("marker", spec.Marker).
				Msg("Marker already present, nothing to append")
			return Result{Path: path, Outcome: OutcomeUnchanged}, nil
		}
	}

	updated := append([]string{}, doc.lines...)
	if len(updated) > 0 {
		updated = append(updated, "")
	}
	if spec.Comment != "" {
		updated = append(updated, spec.Comment)
	}
	updated = append(updated, spec.Lines...)

	if err := p.apply(doc, updated, spec.Description); err != nil {
		return Result{Path: path}, err
	}
	return Result{
		Path:    path,
		Outcome: OutcomeChanged,
		Detail:  fmt.Sprintf("append %d line(s)", len(spec.Lines)),
	}, nil
}

// apply is the mutation tail shared by all primitives: back up the
// original (which must succeed before anything is overwritten), then
// atomically replace the document. In simulate mode the backup session
// records intent and the write is skipped.
func (p *Patcher) apply(doc *document, lines []string, description string) error {
	if err := p.session.BackupFile(doc.path, description); err != nil {
		return err
	}

	if p.mode.IsSimulate() {
		p.logger.Info().Str("path", doc.path).Msg("Would rewrite document")
		return nil
	}

	tmp := doc.path + ".rigup.tmp"
	if err := p.fs.WriteFile(tmp, doc.render(lines), doc.perm); err != nil {
		return errors.Wrapf(err, errors.ErrDocumentWrite, "cannot write temp file for %s", doc.path)
	}
	if err := p.fs.Chmod(tmp, doc.perm); err != nil {
		return errors.Wrapf(err, errors.ErrDocumentWrite, "cannot set mode on temp file for %s", doc.path)
	}
	if err := p.fs.Rename(tmp, doc.path); err != nil {
		return errors.Wrapf(err, errors.ErrDocumentWrite, "cannot replace %s", doc.path)
	}

	p.logger.Debug().Str("path", doc.path).Int("lines", len(lines)).Msg("Rewrote document")
	return nil
}

// findBlock locates the managed block: the first line matching open
// through the next line matching close, inclusive. A line matching both
// markers is a one-line block (e.g. "plugins=(git)"). An opening marker
// without a closing one is treated as no block; eating user content up
// to end of file would not be recoverable by intent.
func findBlock(lines []string, open, close *regexp.Regexp) (int, int, bool) {
	start := -1
	for i, line := range lines {
		if start < 0 {
			if open.MatchString(line) {
				start = i
				if close.MatchString(line) {
					return start, start, true
				}
			}
			continue
		}
		if close.MatchString(line) {
			return start, i, true
		}
	}
	return 0, 0, false
}
