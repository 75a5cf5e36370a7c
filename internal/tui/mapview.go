package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/jottings/internal/geo"
	"github.com/idilsaglam/jottings/internal/model"
)

const (
	gridCols = 33
	gridRows = 11
)

type mapScreen struct {
	title  string
	marker model.Coordinate
	region geo.Region
}

func newMapScreen(title string, c model.Coordinate) mapScreen {
	return mapScreen{title: title, marker: c, region: geo.NewRegion(c)}
}

func (m Model) updateMap(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "+", "=", "i":
			m.mapv.region = m.mapv.region.ZoomIn()
		case "-", "o":
			m.mapv.region = m.mapv.region.ZoomOut()
		case "esc", "q":
			return m.back()
		}
	}
	return m, nil
}

// grid draws the viewport with a single marker. The marker stays at the
// center: the region is always centered on the note.
func (s mapScreen) grid() string {
	var b strings.Builder
	for r := 0; r < gridRows; r++ {
		for c := 0; c < gridCols; c++ {
			switch {
			case r == gridRows/2 && c == gridCols/2:
				b.WriteString(successStyle.Render(pinMarker))
			case r == gridRows/2 || c == gridCols/2:
				b.WriteString(mutedStyle.Render("·"))
			default:
				b.WriteString(" ")
			}
		}
		if r < gridRows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) viewMap() string {
	s := m.mapv
	sw, ne := s.region.Bounds()
	lines := []string{
		titleStyle.Render("Map"),
		"",
		accentStyle.Render(s.title),
		s.grid(),
		"",
		fmt.Sprintf("marker  %s", s.marker),
		fmt.Sprintf("span    %.5f° x %.5f°  (zoom %d)", s.region.LatitudeDelta, s.region.LongitudeDelta, s.region.Zoom()),
		fmt.Sprintf("bounds  %s  ..  %s", sw, ne),
		mutedStyle.Render(s.region.OSMURL()),
		"",
		helpStyle.Render("+ zoom in • - zoom out • esc back"),
	}
	return panelString(strings.Join(lines, "\n"))
}
