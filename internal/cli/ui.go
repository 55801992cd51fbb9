package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// stdout receives command results. Progress and logs go to stderr.
var stdout io.Writer = os.Stdout

// Peridot palette (ANSI 256).
var (
	gold  = lipgloss.Color("178")
	green = lipgloss.Color("35")
	amber = lipgloss.Color("220")
	red   = lipgloss.Color("167")
	white = lipgloss.Color("255")
	gray  = lipgloss.Color("245")
	dim   = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(gold)
	styleDim     = lipgloss.NewStyle().Foreground(dim)
	styleValue   = lipgloss.NewStyle().Foreground(white)
	styleWarning = lipgloss.NewStyle().Foreground(amber)
	styleKey     = lipgloss.NewStyle().Foreground(gray).Width(12)
	styleSpinner = lipgloss.NewStyle().Foreground(gold)

	styleAlert = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(gold).
			Padding(0, 1)
)

// marker is a colored glyph that prefixes a status line.
type marker struct {
	glyph string
	color lipgloss.Color
}

var (
	markOK   = marker{"✓", green}
	markFail = marker{"✗", red}
	markWarn = marker{"!", amber}
	markNote = marker{"›", gray}
)

func (m marker) line(text string) {
	glyph := lipgloss.NewStyle().Foreground(m.color).Render(m.glyph)
	fmt.Fprintln(stdout, glyph+" "+text)
}

func printSuccess(format string, args ...any) { markOK.line(fmt.Sprintf(format, args...)) }
func printError(format string, args ...any)   { markFail.line(fmt.Sprintf(format, args...)) }
func printInfo(format string, args ...any)    { markNote.line(fmt.Sprintf(format, args...)) }

func printWarning(format string, args ...any) {
	markWarn.line(styleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail writes an indented, muted line under the previous status.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+styleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile points at a file the command produced.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+styleDim.Render("→")+" "+styleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+styleValue.Render(value))
}

func renderAlert(msg string) string {
	return styleAlert.Render(msg)
}
