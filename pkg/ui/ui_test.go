package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"auto", FormatAuto, false},
		{"", FormatAuto, false},
		{"term", FormatTerminal, false},
		{"terminal", FormatTerminal, false},
		{"text", FormatText, false},
		{"plain", FormatText, false},
		{"bogus", FormatAuto, true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestPrinter_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinterTo(FormatText, &buf)

	p.Info("installing %s", "tmux")
	p.Warning("anchor missing")
	p.Error("backup failed")

	out := buf.String()
	assert.Contains(t, out, "info: installing tmux")
	assert.Contains(t, out, "warn: anchor missing")
	assert.Contains(t, out, "error: backup failed")
}

func TestPrinter_Summary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinterTo(FormatText, &buf)

	p.Summary("Provisioning summary", []SummaryLine{
		{Name: "homebrew", Status: "ok", Detail: "already installed"},
		{Name: "ohmyzsh", Status: "failed", Detail: "~/.zshrc not found"},
	})

	out := buf.String()
	assert.Contains(t, out, "homebrew")
	assert.Contains(t, out, "already installed")
	assert.Contains(t, out, "failed")
}

func TestConsoleDecider(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   bool
		want  bool
	}{
		{"yes", "y\n", false, true},
		{"yes word", "yes\n", false, true},
		{"no", "n\n", true, false},
		{"empty takes default true", "\n", true, true},
		{"empty takes default false", "\n", false, false},
		{"garbage is no", "wat\n", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			d := &ConsoleDecider{In: strings.NewReader(tt.input), Out: &out}
			got, err := d.Confirm("proceed?", tt.def)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "proceed?")
		})
	}
}

func TestConsoleDecider_AutoYes(t *testing.T) {
	d := NewConsoleDecider(true)
	got, err := d.Confirm("proceed?", true)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestStaticDecider(t *testing.T) {
	got, err := NewStaticDecider(false).Confirm("anything", true)
	require.NoError(t, err)
	assert.False(t, got)
}
