// Package ui renders colored status messages to the console.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")

	infoStyle    = lipgloss.NewStyle().Foreground(colorBlue)
	successStyle = lipgloss.NewStyle().Foreground(colorGreen)
	warnStyle    = lipgloss.NewStyle().Foreground(colorYellow)
	errorStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	titleStyle   = lipgloss.NewStyle().Bold(true)
)

// Console writes styled status lines. The zero value is unusable;
// construct with NewConsole.
type Console struct {
	out io.Writer
	err io.Writer
}

// NewConsole returns a console writing to stdout/stderr.
func NewConsole() *Console {
	return &Console{out: os.Stdout, err: os.Stderr}
}

// NewConsoleTo returns a console writing to the given writers, for tests.
func NewConsoleTo(out, err io.Writer) *Console {
	return &Console{out: out, err: err}
}

func (c *Console) Title(format string, v ...interface{}) {
	fmt.Fprintln(c.out, titleStyle.Render(fmt.Sprintf(format, v...)))
}

func (c *Console) Info(format string, v ...interface{}) {
	fmt.Fprintln(c.out, infoStyle.Render("==> ")+fmt.Sprintf(format, v...))
}

func (c *Console) Success(format string, v ...interface{}) {
	fmt.Fprintln(c.out, successStyle.Render("[OK] ")+fmt.Sprintf(format, v...))
}

func (c *Console) Warn(format string, v ...interface{}) {
	fmt.Fprintln(c.out, warnStyle.Render("[??] ")+fmt.Sprintf(format, v...))
}

func (c *Console) Error(format string, v ...interface{}) {
	fmt.Fprintln(c.err, errorStyle.Render("[!!] ")+fmt.Sprintf(format, v...))
}
