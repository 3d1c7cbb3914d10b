package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/kallax/pkg/core/pack"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ConfirmModel - Pack anyway when versions are missing
// =============================================================================

// ConfirmModel asks whether to pack with guessed dimensions.
type ConfirmModel struct {
	Games     []pack.MissingVersion
	Yes       bool
	Cursor    int // 0 = cancel, 1 = continue
	Height    int
	Offset    int
	Confirmed bool
}

// NewConfirmModel creates a confirm prompt listing the games without a version.
func NewConfirmModel(games []pack.MissingVersion) ConfirmModel {
	return ConfirmModel{Games: games, Height: 10}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "n":
			m.Confirmed = true
			m.Yes = false
			return m, tea.Quit
		case "y":
			m.Confirmed = true
			m.Yes = true
			return m, tea.Quit
		case "left", "h", "right", "l", "tab":
			m.Cursor = 1 - m.Cursor
		case "up", "k":
			if m.Offset > 0 {
				m.Offset--
			}
		case "down", "j":
			if m.Offset+m.Height < len(m.Games) {
				m.Offset++
			}
		case "enter":
			m.Confirmed = true
			m.Yes = m.Cursor == 1
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	var b strings.Builder

	b.WriteString(StyleWarning.Render(fmt.Sprintf("%d games have no version selected", len(m.Games))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("Their sizes would be guessed. Pick a version on BGG for exact sizes."))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Games))
	for _, g := range m.Games[m.Offset:end] {
		b.WriteString("  " + listNormalStyle.Render(g.DisplayName) + "  " + StyleLink.Render(g.VersionsURL) + "\n")
	}
	if rest := len(m.Games) - end; rest > 0 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  … %d more", rest)) + "\n")
	}

	b.WriteString("\n")
	buttons := []string{"Cancel", "Pack anyway"}
	for i, label := range buttons {
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("[" + label + "]"))
		} else {
			b.WriteString(listDimStyle.Render(" " + label + " "))
		}
		b.WriteString("  ")
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("y/n or ←/→ and ⏎"))
	return b.String()
}

// =============================================================================
// CubeBrowserModel - Step through packed cubes
// =============================================================================

// CubeBrowserModel shows one cube at a time with its games.
type CubeBrowserModel struct {
	Result *pack.Result
	Cursor int
}

// NewCubeBrowserModel creates a browser over the cubes of res.
func NewCubeBrowserModel(res *pack.Result) CubeBrowserModel {
	return CubeBrowserModel{Result: res}
}

func (m CubeBrowserModel) Init() tea.Cmd {
	return nil
}

func (m CubeBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h", "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "right", "l", "down", "j":
			if m.Cursor < len(m.Result.Cubes)-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = max(len(m.Result.Cubes)-1, 0)
		}
	}
	return m, nil
}

func (m CubeBrowserModel) View() string {
	var b strings.Builder
	if len(m.Result.Cubes) == 0 {
		b.WriteString(listDimStyle.Render("No cubes packed."))
		b.WriteString("\n")
		return b.String()
	}

	c := m.Result.Cubes[m.Cursor]
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Cube %d of %d", c.ID, len(m.Result.Cubes))))
	b.WriteString("  ")
	b.WriteString(StyleNumber.Render(fmt.Sprintf("%.0f%% full", c.Utilization())))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ switch cube  q quit"))
	b.WriteString("\n\n")
	b.WriteString(cubeTable(c).Render())
	b.WriteString("\n")
	return b.String()
}

// cubeTable lists the games of one cube.
func cubeTable(c pack.Cube) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	rows := make([][]string, 0, len(c.Placements))
	for _, p := range c.Placements {
		size := fmt.Sprintf("%.1f × %.1f × %.1f", p.Resolved.Length, p.Resolved.Width, p.Resolved.Depth)
		flags := ""
		if p.Rotated {
			flags += "↻"
		}
		if p.TreatedAsOversized {
			flags += "!"
		}
		rows = append(rows, []string{p.DisplayName(), size, p.Resolved.Source.String(), flags})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Game", "Size (in)", "Source", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 2 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})
}
