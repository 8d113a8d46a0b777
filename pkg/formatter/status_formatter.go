// File: pkg/formatter/status_formatter.go
package formatter

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Width of the widest action tag, "[deleted]", plus one space
const tagWidth = 10

// StatusFormatter writes the user-facing status lines of a sync run.
// Colors are only emitted when the writer is a color-capable terminal.
type StatusFormatter struct {
	out      io.Writer
	info     lipgloss.Style
	warn     lipgloss.Style
	err      lipgloss.Style
	tag      lipgloss.Style
	emphasis lipgloss.Style
}

func NewStatusFormatter(out io.Writer) *StatusFormatter {
	renderer := lipgloss.NewRenderer(out)
	return &StatusFormatter{
		out:      out,
		info:     renderer.NewStyle().Foreground(lipgloss.Color("6")),
		warn:     renderer.NewStyle().Foreground(lipgloss.Color("3")),
		err:      renderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		tag:      renderer.NewStyle().Foreground(lipgloss.Color("2")),
		emphasis: renderer.NewStyle().Bold(true),
	}
}

func (f *StatusFormatter) Info(format string, args ...any) {
	fmt.Fprintln(f.out, f.info.Render(fmt.Sprintf(format, args...)))
}

func (f *StatusFormatter) Warn(format string, args ...any) {
	fmt.Fprintln(f.out, f.warn.Render("warning: "+fmt.Sprintf(format, args...)))
}

func (f *StatusFormatter) Error(format string, args ...any) {
	fmt.Fprintln(f.out, f.err.Render("error: "+fmt.Sprintf(format, args...)))
}

// Prints a success line: the bracketed tag padded to a fixed width, then the target
func (f *StatusFormatter) Action(tag, target string) {
	fmt.Fprintln(f.out, FormatTag(tag, f.tag)+target)
}

// Prints the end-of-run counters
func (f *StatusFormatter) Summary(synced, ignored, failed int) {
	line := fmt.Sprintf("synced %d, ignored %d, failed %d", synced, ignored, failed)
	if failed > 0 {
		fmt.Fprintln(f.out, f.err.Render(line))
		return
	}
	fmt.Fprintln(f.out, f.emphasis.Render(line))
}

// Pads "[tag]" to the fixed tag width before styling so escape codes do not skew alignment
func FormatTag(tag string, style lipgloss.Style) string {
	return style.Render(fmt.Sprintf("%-*s", tagWidth, "["+tag+"]"))
}
