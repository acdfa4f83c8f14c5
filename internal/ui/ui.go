// Package ui renders the CLI's styled terminal output.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Theme defines the colours used by the CLI.
type Theme struct {
	Accent  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Muted   lipgloss.Color
}

// DefaultTheme returns the default theme.
func DefaultTheme() Theme {
	return Theme{
		Accent:  lipgloss.Color("14"),  // Bright cyan
		Success: lipgloss.Color("10"),  // Bright green
		Error:   lipgloss.Color("9"),   // Bright red
		Muted:   lipgloss.Color("240"), // Gray
	}
}

// Printer writes styled lines to an output stream. Styling is dropped when
// the stream is not a terminal.
type Printer struct {
	w     io.Writer
	color bool
	theme Theme
}

// New returns a Printer for w. Colour is enabled only when w is a terminal.
func New(w io.Writer) *Printer {
	return &Printer{w: w, color: IsTerminal(w), theme: DefaultTheme()}
}

// IsTerminal reports whether w is an *os.File attached to a terminal.
func IsTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (p *Printer) render(style lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return style.Render(s)
}

// Title prints a bold accent-coloured heading.
func (p *Printer) Title(s string) {
	fmt.Fprintln(p.w, p.render(lipgloss.NewStyle().Bold(true).Foreground(p.theme.Accent), s))
}

// Accent returns s in the accent colour.
func (p *Printer) Accent(s string) string {
	return p.render(lipgloss.NewStyle().Foreground(p.theme.Accent), s)
}

// Dim returns s in the muted colour.
func (p *Printer) Dim(s string) string {
	return p.render(lipgloss.NewStyle().Foreground(p.theme.Muted), s)
}

// Progress prints a dimmed progress line.
func (p *Printer) Progress(s string) {
	fmt.Fprintln(p.w, p.Dim(s))
}

// Success prints a bold green line.
func (p *Printer) Success(s string) {
	fmt.Fprintln(p.w, p.render(lipgloss.NewStyle().Bold(true).Foreground(p.theme.Success), s))
}

// Failure prints a bold red headline followed by "<kind>: <message>".
func (p *Printer) Failure(headline, kind, msg string) {
	fmt.Fprintln(p.w, p.render(lipgloss.NewStyle().Bold(true).Foreground(p.theme.Error), headline))
	fmt.Fprintf(p.w, "%s: %s\n", p.render(lipgloss.NewStyle().Foreground(p.theme.Error), kind), msg)
}
