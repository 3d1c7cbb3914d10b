package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/kallax/pkg/core/dims"
	"github.com/matzehuels/kallax/pkg/core/game"
	"github.com/matzehuels/kallax/pkg/core/pack"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func missingGames(n int) []pack.MissingVersion {
	games := make([]pack.MissingVersion, n)
	for i := range games {
		games[i] = pack.MissingVersion{
			ID:          "13:0",
			DisplayName: "Catan",
			VersionsURL: "https://boardgamegeek.com/boardgame/13/versions",
		}
	}
	return games
}

func TestConfirmModel(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want bool
	}{
		{"yes", []string{"y"}, true},
		{"no", []string{"n"}, false},
		{"enter defaults to cancel", []string{"enter"}, false},
		{"move and enter", []string{"right", "enter"}, true},
		{"move twice", []string{"right", "left", "enter"}, false},
		{"quit", []string{"q"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m tea.Model = NewConfirmModel(missingGames(1))
			for _, k := range tt.keys {
				m, _ = m.Update(key(k))
			}
			got := m.(ConfirmModel)
			if !got.Confirmed {
				t.Fatal("model should be confirmed")
			}
			if got.Yes != tt.want {
				t.Errorf("Yes = %v, want %v", got.Yes, tt.want)
			}
		})
	}
}

func TestConfirmModelView(t *testing.T) {
	m := NewConfirmModel(missingGames(12))
	view := m.View()
	if !strings.Contains(view, "12 games have no version selected") {
		t.Errorf("view missing header:\n%s", view)
	}
	if !strings.Contains(view, "2 more") {
		t.Errorf("view should mention hidden games:\n%s", view)
	}
}

func TestCubeBrowserModel(t *testing.T) {
	res := &pack.Result{
		Status: pack.StatusOK,
		Cubes: []pack.Cube{
			{ID: 1, CrossUsed: 6.5, Placements: []pack.Placement{{
				Item:     game.Item{GameID: 1, Name: "Azul"},
				Resolved: dims.Resolved{Length: 11.7, Width: 11.7, Depth: 2.9, Source: game.KindVersion},
			}}},
			{ID: 2, CrossUsed: 3, Placements: []pack.Placement{{
				Item:     game.Item{GameID: 2, Name: "Brass"},
				Resolved: dims.Resolved{Length: 12, Width: 12, Depth: 3, Source: game.KindGuessed},
				Rotated:  true,
			}}},
		},
	}

	var m tea.Model = NewCubeBrowserModel(res)
	if !strings.Contains(m.View(), "Azul") {
		t.Errorf("first cube should list Azul:\n%s", m.View())
	}

	m, _ = m.Update(key("right"))
	m, _ = m.Update(key("right"))
	if got := m.(CubeBrowserModel).Cursor; got != 1 {
		t.Fatalf("Cursor = %d, want 1", got)
	}
	view := m.View()
	if !strings.Contains(view, "Cube 2 of 2") || !strings.Contains(view, "Brass") {
		t.Errorf("second cube view:\n%s", view)
	}

	m, _ = m.Update(key("g"))
	if got := m.(CubeBrowserModel).Cursor; got != 0 {
		t.Errorf("Cursor after home = %d, want 0", got)
	}
}

func TestCubeBrowserModelEmpty(t *testing.T) {
	m := NewCubeBrowserModel(&pack.Result{Status: pack.StatusOK})
	if !strings.Contains(m.View(), "No cubes") {
		t.Errorf("empty view = %q", m.View())
	}
}
