package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

type editScreen struct {
	id     int64
	area   textarea.Model
	busy   bool
	status string
}

func newEditScreen(id int64, name string, w, h int) editScreen {
	ta := textarea.New()
	ta.Placeholder = "Edit your note..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 500
	ta.SetValue(name)
	e := editScreen{id: id, area: ta}
	e.setSize(w, h)
	return e
}

func (e *editScreen) setSize(w, h int) {
	e.area.SetWidth(max(w-6, 20))
	e.area.SetHeight(min(max(h-8, 3), 8))
}

func (m Model) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	e := &m.edit
	switch msg := msg.(type) {
	case itemSavedMsg:
		e.busy = false
		switch {
		case msg.err != nil:
			e.status = "Save failed: " + msg.err.Error()
		case msg.affected == 0:
			e.status = "Note not found"
		default:
			return m.back()
		}
		return m, nil

	case itemRemovedMsg:
		e.busy = false
		switch {
		case msg.err != nil:
			e.status = "Delete failed: " + msg.err.Error()
		case msg.affected == 0:
			e.status = "Note not found"
		default:
			return m.back()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m.back()
		case "ctrl+s":
			if e.busy {
				return m, nil
			}
			name := strings.TrimSpace(e.area.Value())
			if name == "" {
				e.status = "Note cannot be empty"
				return m, nil
			}
			e.busy = true
			return m, m.saveCmd(e.id, name)
		case "ctrl+d":
			if e.busy {
				return m, nil
			}
			e.busy = true
			return m, m.removeCmd(e.id)
		}
	}

	var cmd tea.Cmd
	e.area, cmd = e.area.Update(msg)
	return m, cmd
}

func (m Model) saveCmd(id int64, name string) tea.Cmd {
	nav, ed := m.nav, m.deps.Editor
	return func() tea.Msg {
		n, err := ed.Update(context.Background(), id, name)
		return itemSavedMsg{nav: nav, affected: n, err: err}
	}
}

func (m Model) removeCmd(id int64) tea.Cmd {
	nav, ed := m.nav, m.deps.Editor
	return func() tea.Msg {
		n, err := ed.Delete(context.Background(), id)
		return itemRemovedMsg{nav: nav, affected: n, err: err}
	}
}

func (m Model) viewEdit() string {
	e := m.edit
	var b strings.Builder
	b.WriteString(titleStyle.Render("Edit"))
	b.WriteString("\n\n")
	b.WriteString(e.area.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("ctrl+s save • ctrl+d delete • esc back"))
	if e.status != "" {
		b.WriteString("\n" + errorStyle.Render(e.status))
	}
	return panelString(b.String())
}
