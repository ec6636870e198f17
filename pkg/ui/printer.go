package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

// Printer writes leveled, colorized messages. In text format all
// styling is dropped, which keeps output pipe- and CI-friendly.
type Printer struct {
	format Format
	out    io.Writer
}

// NewPrinter creates a printer for the given format. FormatAuto is
// resolved against stdout.
func NewPrinter(format Format) *Printer {
	if format == FormatAuto {
		format = DetectFormat(os.Stdout)
	}
	return &Printer{format: format, out: os.Stdout}
}

// NewPrinterTo creates a printer writing to the given writer, used in
// tests.
func NewPrinterTo(format Format, out io.Writer) *Printer {
	return &Printer{format: format, out: out}
}

// Info prints an informational message.
func (p *Printer) Info(format string, args ...interface{}) {
	p.print(pterm.Info, "info", format, args...)
}

// Success prints a success message.
func (p *Printer) Success(format string, args ...interface{}) {
	p.print(pterm.Success, "ok", format, args...)
}

// Warning prints a warning message.
func (p *Printer) Warning(format string, args ...interface{}) {
	p.print(pterm.Warning, "warn", format, args...)
}

// Error prints an error message.
func (p *Printer) Error(format string, args ...interface{}) {
	p.print(pterm.Error, "error", format, args...)
}

func (p *Printer) print(printer pterm.PrefixPrinter, level, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if p.format == FormatText {
		fmt.Fprintf(p.out, "%s: %s\n", level, msg)
		return
	}
	printer.WithWriter(p.out).Println(msg)
}

// SummaryLine is one row of the end-of-run summary.
type SummaryLine struct {
	Name   string
	Status string
	Detail string
}

var (
	summaryTitleStyle = lipgloss.NewStyle().Bold(true)
	summaryNameStyle  = lipgloss.NewStyle().Width(16)
	statusStyles      = map[string]lipgloss.Style{
		"ok":      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"skipped": lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		"failed":  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

// Summary renders the per-module run summary.
func (p *Printer) Summary(title string, lines []SummaryLine) {
	if len(lines) == 0 {
		return
	}

	if p.format == FormatText {
		fmt.Fprintf(p.out, "%s\n", title)
		for _, l := range lines {
			fmt.Fprintf(p.out, "  %-16s %-8s %s\n", l.Name, l.Status, l.Detail)
		}
		return
	}

	var b strings.Builder
	b.WriteString(summaryTitleStyle.Render(title))
	b.WriteString("\n")
	for _, l := range lines {
		status := l.Status
		if style, ok := statusStyles[l.Status]; ok {
			status = style.Render(fmt.Sprintf("%-8s", l.Status))
		}
		b.WriteString(fmt.Sprintf("  %s %s %s\n", summaryNameStyle.Render(l.Name), status, l.Detail))
	}
	fmt.Fprint(p.out, b.String())
}
