package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorAmber = lipgloss.Color("220")
	colorRed   = lipgloss.Color("167")
	colorBlue  = lipgloss.Color("75")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

// Styles shared by the commands and the explorer.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleLink      = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

// mark is the leading glyph of a status line.
type mark struct {
	glyph string
	style lipgloss.Style
}

var (
	markOK   = mark{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	markFail = mark{"✗", lipgloss.NewStyle().Foreground(colorRed)}
	markWarn = mark{"!", lipgloss.NewStyle().Foreground(colorAmber)}
	markInfo = mark{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

// console writes styled status lines. Commands write to their own output
// stream so that callers (and tests) can redirect it.
type console struct {
	w io.Writer
}

func consoleFor(cmd *cobra.Command) console {
	return console{w: cmd.OutOrStdout()}
}

func (c console) status(m mark, msg string) {
	fmt.Fprintln(c.w, m.style.Render(m.glyph)+" "+msg)
}

func (c console) success(format string, args ...any) {
	c.status(markOK, fmt.Sprintf(format, args...))
}

func (c console) failure(format string, args ...any) {
	c.status(markFail, fmt.Sprintf(format, args...))
}

func (c console) warn(format string, args ...any) {
	c.status(markWarn, markWarn.style.Render(fmt.Sprintf(format, args...)))
}

func (c console) info(format string, args ...any) {
	c.status(markInfo, fmt.Sprintf(format, args...))
}

// detail prints an indented, muted line under the previous status.
func (c console) detail(format string, args ...any) {
	fmt.Fprintln(c.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func (c console) file(path string) {
	fmt.Fprintln(c.w, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func (c console) keyValue(key string, value any) {
	fmt.Fprintln(c.w, styleKey.Render(key)+" "+StyleValue.Render(fmt.Sprint(value)))
}

// renderSummary prints "N authors · M links · cached|fresh".
func (c console) renderSummary(authors, links int, cached bool) {
	origin := lipgloss.NewStyle().Foreground(colorGray).Render("fresh")
	if cached {
		origin = markOK.style.Render("cached")
	}
	sep := StyleDim.Render(" · ")
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d authors", authors)),
		StyleDim.Render(fmt.Sprintf("%d links", links)),
		origin,
	}
	fmt.Fprintln(c.w, "  "+strings.Join(parts, sep))
}

// nextStep suggests a follow-up command.
func (c console) nextStep(description, command string) {
	fmt.Fprintln(c.w, StyleDim.Render(description+":")+" "+styleCommand.Render(command))
}

// swatch renders a filled dot in the given hex colour.
func swatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("●")
}
