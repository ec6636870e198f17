package modules

import (
	"context"
	"os"
	"path/filepath"

	"github.com/beevik/etree"

	"github.com/arthur-debert/rigup/pkg/detect"
	"github.com/arthur-debert/rigup/pkg/engine"
	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/types"
)

// Fonts installs font files from a configured source directory into the
// user font dir and registers that dir in the fontconfig configuration.
type Fonts struct{}

func (m *Fonts) Name() string        { return "fonts" }
func (m *Fonts) Description() string { return "developer fonts" }

func (m *Fonts) Detect(_ context.Context, run *engine.Run) (types.Capability, error) {
	return detect.Dir(run.FS, "fonts", m.fontDir(run)), nil
}

func (m *Fonts) Apply(ctx context.Context, run *engine.Run) error {
	logger := logging.GetLogger("modules.fonts")

	source := run.Config.Fonts.Source
	if source == "" {
		logger.Info().Msg("No font source configured, nothing to install")
		return nil
	}
	if _, err := run.FS.Stat(source); err != nil {
		return errors.Newf(errors.ErrPreconditionMissing, "font source directory %s does not exist", source)
	}

	if err := m.copyFonts(run, source); err != nil {
		return err
	}
	return m.registerFontDir(run)
}

// copyFonts mirrors the source directory's files into the user font
// dir, protecting any file it would overwrite.
func (m *Fonts) copyFonts(run *engine.Run, source string) error {
	logger := logging.GetLogger("modules.fonts")
	fontDir := m.fontDir(run)

	entries, err := run.FS.ReadDir(source)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read font source %s", source)
	}

	if run.Mode.IsSimulate() {
		logger.Info().Int("files", len(entries)).Str("dest", fontDir).Msg("Would install fonts")
		return nil
	}

	if err := run.FS.MkdirAll(fontDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", fontDir)
	}

	installed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		src := filepath.Join(source, entry.Name())
		dest := filepath.Join(fontDir, entry.Name())

		data, err := run.FS.ReadFile(src)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot read font %s", src)
		}

		if existing, err := run.FS.ReadFile(dest); err == nil {
			if string(existing) == string(data) {
				continue
			}
			if err := run.Session.BackupFile(dest, "font file before rigup update"); err != nil {
				return err
			}
		}

		if err := run.FS.WriteFile(dest, data, 0644); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "cannot install font %s", dest)
		}
		installed++
	}

	logger.Info().Int("installed", installed).Str("dest", fontDir).Msg("Fonts installed")
	return nil
}

// registerFontDir upserts a <dir> element for the user font dir into
// ~/.config/fontconfig/fonts.conf, creating a minimal document when the
// file does not exist yet.
func (m *Fonts) registerFontDir(run *engine.Run) error {
	logger := logging.GetLogger("modules.fonts")
	confPath := filepath.Join(run.Home, ".config", "fontconfig", "fonts.conf")
	fontDir := m.fontDir(run)

	doc := etree.NewDocument()
	exists := true
	data, err := run.FS.ReadFile(confPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", confPath)
		}
		exists = false
		doc.CreateProcInst("xml", `version="1.0"`)
		doc.CreateDirective(`DOCTYPE fontconfig SYSTEM "fonts.dtd"`)
		doc.CreateElement("fontconfig")
	} else {
		if err := doc.ReadFromBytes(data); err != nil {
			return errors.Wrapf(err, errors.ErrConfigParse, "cannot parse %s", confPath)
		}
	}

	root := doc.SelectElement("fontconfig")
	if root == nil {
		return errors.Newf(errors.ErrConfigParse, "%s has no fontconfig root element", confPath)
	}

	for _, dir := range root.SelectElements("dir") {
		if dir.Text() == fontDir {
			logger.Debug().Str("dir", fontDir).Msg("Font dir already registered")
			return nil
		}
	}

	if run.Mode.IsSimulate() {
		logger.Info().Str("dir", fontDir).Str("path", confPath).Msg("Would register font dir in fontconfig")
		return nil
	}

	if exists {
		if err := run.Session.BackupFile(confPath, "fontconfig before rigup update"); err != nil {
			return err
		}
	}

	root.CreateElement("dir").SetText(fontDir)
	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot serialize fontconfig document")
	}

	if err := run.FS.MkdirAll(filepath.Dir(confPath), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory for %s", confPath)
	}
	tmp := confPath + ".rigup.tmp"
	if err := run.FS.WriteFile(tmp, out, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrDocumentWrite, "cannot write temp file for %s", confPath)
	}
	if err := run.FS.Rename(tmp, confPath); err != nil {
		return errors.Wrapf(err, errors.ErrDocumentWrite, "cannot replace %s", confPath)
	}

	logger.Info().Str("dir", fontDir).Msg("Registered font dir in fontconfig")
	return nil
}

func (m *Fonts) fontDir(run *engine.Run) string {
	return filepath.Join(run.Home, ".local", "share", "fonts")
}
