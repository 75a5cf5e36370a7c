// Package tui is the interactive front end: a list of jottings, an edit
// screen and a map screen.
//
// Every store round-trip runs as a tea.Cmd and reports back with a message
// stamped with the navigation sequence it was issued under. A message whose
// sequence no longer matches belongs to a screen the user already left and
// is dropped.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/idilsaglam/jottings/internal/listctl"
	"github.com/idilsaglam/jottings/internal/location"
	"github.com/idilsaglam/jottings/internal/model"
)

// Editor is what the edit screen needs from the item store.
type Editor interface {
	Update(ctx context.Context, id int64, name string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// Deps are the collaborators the screens call into.
type Deps struct {
	List     *listctl.Controller
	Editor   Editor
	Location location.Provider
	Variant  model.Variant
	Log      *zap.Logger
	// Notice is shown on the list screen at start (e.g. a schema failure).
	Notice string
}

type screen int

const (
	screenList screen = iota
	screenEdit
	screenMap
)

// Model is the root Bubble Tea model.
type Model struct {
	deps   Deps
	screen screen
	nav    int

	width, height int

	list listScreen
	edit editScreen
	mapv mapScreen
}

// New builds the root model showing the list screen.
func New(deps Deps) Model {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Location == nil {
		deps.Location = location.DeniedProvider{}
	}
	m := Model{deps: deps, width: 80, height: 24}
	m.list = newListScreen(deps.Variant)
	if deps.Notice != "" {
		m.list.flash(deps.Notice, true)
	}
	return m
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(deps Deps) error {
	p := tea.NewProgram(New(deps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return m.activate() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.setSize(msg.Width, msg.Height)
		if m.screen == screenEdit {
			m.edit.setSize(msg.Width, msg.Height)
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case stamped:
		if msg.navSeq() != m.nav {
			m.deps.Log.Debug("dropping stale completion", zap.String("msg", msgName(msg)))
			return m, nil
		}
	}

	switch m.screen {
	case screenEdit:
		return m.updateEdit(msg)
	case screenMap:
		return m.updateMap(msg)
	default:
		return m.updateList(msg)
	}
}

func (m Model) View() string {
	switch m.screen {
	case screenEdit:
		return m.viewEdit()
	case screenMap:
		return m.viewMap()
	default:
		return m.viewList()
	}
}

// leaveList unmounts the list projection and moves to another screen.
// An add still in flight will be dropped as stale, so the form must not
// keep waiting for it.
func (m Model) leaveList(to screen) Model {
	m.deps.List.Deactivate()
	m.list.saving = false
	m.nav++
	m.screen = to
	return m
}

// back returns to the list and resyncs it.
func (m Model) back() (Model, tea.Cmd) {
	m.nav++
	m.screen = screenList
	return m, m.activate()
}

func (m Model) activate() tea.Cmd {
	nav, ctl := m.nav, m.deps.List
	return func() tea.Msg {
		items, err := ctl.Activate(context.Background())
		return itemsLoadedMsg{nav: nav, items: items, err: err}
	}
}
