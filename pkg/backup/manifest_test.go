package backup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatManifest(t *testing.T) {
	entries := []ManifestEntry{
		{Original: "/home/u/.zshrc", Relative: ".zshrc", Description: "pre-mutation"},
		{Original: "/home/u/.tmux.conf", Relative: ".tmux.conf"},
	}

	got := string(formatManifest("20231215_143022", entries))
	want := "# rigup backup session 20231215_143022\n" +
		"/home/u/.zshrc -> .zshrc\n" +
		"  # pre-mutation\n" +
		"/home/u/.tmux.conf -> .tmux.conf\n"
	assert.Equal(t, want, got)
}

func TestParseManifest(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []ManifestEntry
	}{
		{
			name:  "plain mapping",
			input: "/home/u/.zshrc -> .zshrc\n",
			want:  []ManifestEntry{{Original: "/home/u/.zshrc", Relative: ".zshrc"}},
		},
		{
			name: "description line is not a mapping",
			input: "/home/u/.zshrc -> .zshrc\n" +
				"  # description with -> arrow inside\n",
			want: []ManifestEntry{{Original: "/home/u/.zshrc", Relative: ".zshrc"}},
		},
		{
			name:  "comments and blanks tolerated",
			input: "\n# header\n\n/a -> b\n\n# trailer\n",
			want:  []ManifestEntry{{Original: "/a", Relative: "b"}},
		},
		{
			name:  "garbage lines skipped",
			input: "no arrow here\n->\n -> \n/a -> b\n",
			want:  []ManifestEntry{{Original: "/a", Relative: "b"}},
		},
		{
			name:  "empty manifest",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseManifest([]byte(tt.input)))
		})
	}
}
