package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/kallax/pkg/core/pack"
)

// =============================================================================
// Palette and Styles
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // primary
	colorGreen  = lipgloss.Color("35")  // success, cached
	colorYellow = lipgloss.Color("220") // warnings, missing versions
	colorRed    = lipgloss.Color("167") // errors
	colorBlue   = lipgloss.Color("75")  // links, commands
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // labels
	colorDim    = lipgloss.Color("240") // muted
)

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleLink    = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleLabel       = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed    = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// stdout receives all command output. Tests replace it.
var stdout io.Writer = os.Stdout

func writeLine(s string) { fmt.Fprintln(stdout, s) }

// =============================================================================
// Status Lines
// =============================================================================

func printSuccess(format string, args ...any) {
	writeLine(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	writeLine(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	writeLine(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	writeLine(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented, muted line under a status line.
func printDetail(format string, args ...any) {
	writeLine("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	writeLine("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	writeLine(styleLabel.Render(key) + " " + StyleValue.Render(value))
}

func printNextStep(description, cmd string) {
	writeLine(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() { writeLine("") }

// =============================================================================
// Packing Results
// =============================================================================

// printStats prints the packing summary on one line, e.g.
// "212 games · 31 cubes · 84.2% full · 2 oversized · cached".
func printStats(s pack.Stats, cached bool) {
	parts := []string{
		fmt.Sprintf("%d games", s.TotalGames),
		fmt.Sprintf("%d cubes", s.TotalCubes),
		fmt.Sprintf("%.1f%% full", s.TotalUtilization),
	}
	if s.OversizedCount > 0 {
		parts = append(parts, fmt.Sprintf("%d oversized", s.OversizedCount))
	}
	if s.TreatedAsOversizedCount > 0 {
		parts = append(parts, fmt.Sprintf("%d squeezed", s.TreatedAsOversizedCount))
	}
	if s.ExcludedCount > 0 {
		parts = append(parts, fmt.Sprintf("%d excluded", s.ExcludedCount))
	}

	sep := StyleDim.Render(" · ")
	line := StyleDim.Render(strings.Join(parts, " · "))
	if cached {
		line += sep + styleCached.Render("cached")
	} else {
		line += sep + styleComputed.Render("fresh")
	}
	writeLine("  " + line)
}

// printMissingVersions lists games that still need a BGG version.
func printMissingVersions(games []pack.MissingVersion) {
	printWarning("%d games have no version selected", len(games))
	for _, g := range games {
		writeLine("  " + StyleValue.Render(g.DisplayName) + " " + StyleLink.Render(g.VersionsURL))
	}
}

// printOversized lists games that did not fit in any cube.
func printOversized(games []pack.Oversized) {
	if len(games) == 0 {
		return
	}
	printWarning("%d games do not fit in a cube", len(games))
	for _, g := range games {
		r := g.Resolved
		printDetail("%s (%.1f × %.1f × %.1f)", g.Item.DisplayName(), r.Length, r.Width, r.Depth)
	}
}
