package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/rigup/pkg/types"
)

// ConsoleDecider implements types.Decider by asking on the terminal.
// With AutoYes set every prompt resolves to its default immediately,
// which is what --yes and non-interactive runs use.
type ConsoleDecider struct {
	AutoYes bool
	In      io.Reader
	Out     io.Writer
}

// NewConsoleDecider creates a decider reading stdin and writing stdout.
func NewConsoleDecider(autoYes bool) *ConsoleDecider {
	return &ConsoleDecider{AutoYes: autoYes, In: os.Stdin, Out: os.Stdout}
}

// Confirm presents a Y/N prompt and returns the user's choice.
func (d *ConsoleDecider) Confirm(prompt string, def bool) (bool, error) {
	if d.AutoYes {
		return def, nil
	}

	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	fmt.Fprintf(d.Out, "%s %s: ", prompt, hint)

	reader := bufio.NewReader(d.In)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read user input: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// staticDecider answers every prompt with a fixed choice.
type staticDecider struct {
	answer bool
}

// NewStaticDecider returns a Decider with a canned answer, for tests and
// fully non-interactive runs.
func NewStaticDecider(answer bool) types.Decider {
	return &staticDecider{answer: answer}
}

func (d *staticDecider) Confirm(string, bool) (bool, error) {
	return d.answer, nil
}
