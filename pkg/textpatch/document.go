package textpatch

import (
	"io/fs"
	"os"
	"strings"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/types"
)

// document holds a config file as lines, remembering its permissions and
// whether the original ended in a newline so a rewrite is byte-faithful
// when nothing changed around the edit.
type document struct {
	path            string
	lines           []string
	perm            fs.FileMode
	exists          bool
	trailingNewline bool
}

// loadDocument reads a config file into line form. When required is true
// a missing file is a DOCUMENT_NOT_FOUND error; otherwise the document
// starts empty and will be created on write.
func loadDocument(fsys types.FS, path string, required bool) (*document, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if required {
				return nil, errors.Newf(errors.ErrDocumentNotFound, "required file %s does not exist", path)
			}
			return &document{path: path, perm: 0644, trailingNewline: true}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", path)
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}

	doc := &document{
		path:   path,
		perm:   info.Mode().Perm(),
		exists: true,
	}
	content := string(data)
	if content == "" {
		doc.trailingNewline = true
		return doc, nil
	}
	doc.trailingNewline = strings.HasSuffix(content, "\n")
	content = strings.TrimSuffix(content, "\n")
	doc.lines = strings.Split(content, "\n")
	return doc, nil
}

// render serializes lines back to file content.
func (d *document) render(lines []string) []byte {
	content := strings.Join(lines, "\n")
	if d.trailingNewline && content != "" {
		content += "\n"
	}
	return []byte(content)
}

// equalLines compares two line slices exactly: membership and order both
// matter.
func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
