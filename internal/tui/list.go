package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/jottings/internal/location"
	"github.com/idilsaglam/jottings/internal/model"
	"github.com/idilsaglam/jottings/internal/store"
	"github.com/idilsaglam/jottings/internal/ui"
)

// maxNameWidth is how much of a name the list shows before "...".
const maxNameWidth = 40

// listItem adapts model.Item to bubbles/list.Item
type listItem struct {
	model.Item
}

// Implement list.Item interface
func (i listItem) Title() string       { return i.Name }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.Name }

// Custom delegate to control how items render (single line)
type itemDelegate struct {
	variant model.Variant
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	name := ui.Truncate(strings.ReplaceAll(it.Name, "\n", " "), maxNameWidth)

	var meta string
	switch d.variant {
	case model.VariantList:
		if a, ok := it.AmountText(); ok && a != "" {
			meta = amountStyle.Render(a)
		}
	default:
		meta = mutedStyle.Render(noPinMarker)
		if _, ok := it.Coord(); ok {
			meta = successStyle.Render(pinMarker)
		}
	}

	line := fmt.Sprintf("%s %s", meta, name)
	if d.variant == model.VariantList {
		line = fmt.Sprintf("%s  %s", name, meta)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render(">") + " "
	}
	fmt.Fprint(w, prefix+line)
}

type listScreen struct {
	list    list.Model
	variant model.Variant

	// Inline add
	adding      bool
	saving      bool
	name        textinput.Model
	amount      textinput.Model
	amountFocus bool

	status    string
	statusErr bool
}

func newListScreen(v model.Variant) listScreen {
	l := list.New(nil, itemDelegate{variant: v}, 0, 0)
	l.Title = "Jottings"
	if v == model.VariantList {
		l.Title = "Shopping list"
	}
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("note", "notes")
	if v == model.VariantList {
		l.SetStatusBarItemName("item", "items")
	}

	// Extend help with our bindings
	binds := []key.Binding{
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
	if v == model.VariantNotes {
		binds = append(binds, key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "map")))
	}
	l.AdditionalShortHelpKeys = func() []key.Binding { return binds }
	l.AdditionalFullHelpKeys = func() []key.Binding { return binds }

	name := textinput.New()
	name.Prompt = "> "
	name.Placeholder = "What is on your mind..."
	name.CharLimit = 500
	if v == model.VariantList {
		name.Placeholder = "Product"
	}

	amount := textinput.New()
	amount.Prompt = "amount: "
	amount.Placeholder = "2"
	amount.CharLimit = 40

	return listScreen{list: l, variant: v, name: name, amount: amount}
}

func (s *listScreen) setSize(w, h int) {
	listHeight := h - 4
	if s.adding {
		listHeight = h - 8
	}
	s.list.SetSize(max(w-4, 10), max(listHeight, 3))
}

func (s *listScreen) flash(msg string, isErr bool) {
	s.status, s.statusErr = msg, isErr
}

func (s *listScreen) setItems(items []model.Item) tea.Cmd {
	li := make([]list.Item, 0, len(items))
	for _, it := range items {
		li = append(li, listItem{Item: it})
	}
	return s.list.SetItems(li)
}

func (s listScreen) selected() (model.Item, bool) {
	it, ok := s.list.SelectedItem().(listItem)
	return it.Item, ok
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := &m.list
	switch msg := msg.(type) {
	case itemsLoadedMsg:
		if msg.err != nil {
			s.flash("Could not load: "+msg.err.Error(), true)
		}
		return m, s.setItems(msg.items)

	case itemAddedMsg:
		s.saving = false
		if msg.err != nil {
			// Keep what was typed so the user can retry.
			s.flash(addFailureText(msg.err), true)
			return m, nil
		}
		s.adding = false
		s.name.SetValue("")
		s.amount.SetValue("")
		s.name.Blur()
		s.amount.Blur()
		s.setSize(m.width, m.height)
		s.flash("Saved", false)
		cmd := s.setItems(m.deps.List.Items())
		s.list.Select(len(s.list.Items()) - 1)
		return m, cmd

	case itemDeletedMsg:
		if msg.err != nil {
			s.flash("Delete failed: "+msg.err.Error(), true)
			return m, nil
		}
		if msg.affected == 0 {
			s.flash("Already deleted", false)
		} else {
			s.flash("Deleted", false)
		}
		return m, s.setItems(m.deps.List.Items())

	case tea.KeyMsg:
		if s.adding {
			return m.updateAdding(msg)
		}
		if s.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "a":
			s.adding = true
			s.amountFocus = false
			s.status = ""
			s.setSize(m.width, m.height)
			return m, s.name.Focus()
		case "r":
			return m, m.activate()
		case "enter":
			it, ok := s.selected()
			if !ok {
				return m, nil
			}
			m = m.leaveList(screenEdit)
			m.edit = newEditScreen(it.ID, it.Name, m.width, m.height)
			return m, m.edit.area.Focus()
		case "m":
			it, ok := s.selected()
			if !ok {
				return m, nil
			}
			c, ok := it.Coord()
			if !ok {
				s.flash("This note has no location", true)
				return m, nil
			}
			m = m.leaveList(screenMap)
			m.mapv = newMapScreen(it.Name, c)
			return m, nil
		case "d":
			it, ok := s.selected()
			if !ok {
				return m, nil
			}
			return m, m.deleteCmd(it.ID)
		}
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.list
	switch msg.String() {
	case "enter":
		if s.saving {
			return m, nil
		}
		name := strings.TrimSpace(s.name.Value())
		if name == "" {
			s.flash("Note cannot be empty", true)
			return m, nil
		}
		s.saving = true
		s.flash("Saving...", false)
		return m, m.addCmd(name, strings.TrimSpace(s.amount.Value()))
	case "esc":
		s.adding = false
		s.saving = false
		s.status = ""
		s.name.SetValue("")
		s.amount.SetValue("")
		s.name.Blur()
		s.amount.Blur()
		s.setSize(m.width, m.height)
		return m, nil
	case "tab", "shift+tab":
		if s.variant != model.VariantList {
			return m, nil
		}
		s.amountFocus = !s.amountFocus
		if s.amountFocus {
			s.name.Blur()
			return m, s.amount.Focus()
		}
		s.amount.Blur()
		return m, s.name.Focus()
	}

	var cmd tea.Cmd
	if s.amountFocus {
		s.amount, cmd = s.amount.Update(msg)
	} else {
		s.name, cmd = s.name.Update(msg)
	}
	return m, cmd
}

func (m Model) addCmd(name, amount string) tea.Cmd {
	nav, ctl, p, v := m.nav, m.deps.List, m.deps.Location, m.deps.Variant
	return func() tea.Msg {
		ctx := context.Background()
		var (
			it  model.Item
			err error
		)
		switch v {
		case model.VariantList:
			var meta model.Metadata
			if amount != "" {
				meta = model.Amount(amount)
			}
			it, err = ctl.Add(ctx, name, meta)
		default:
			it, err = ctl.AddAt(ctx, name, p)
		}
		return itemAddedMsg{nav: nav, item: it, err: err}
	}
}

func (m Model) deleteCmd(id int64) tea.Cmd {
	nav, ctl := m.nav, m.deps.List
	return func() tea.Msg {
		n, err := ctl.Delete(context.Background(), id)
		return itemDeletedMsg{nav: nav, id: id, affected: n, err: err}
	}
}

func addFailureText(err error) string {
	var we *store.WriteError
	switch {
	case errors.Is(err, location.ErrPermissionDenied):
		return "Location permission denied, note not saved"
	case errors.Is(err, location.ErrLocationUnavailable):
		return "Could not get your location, try again"
	case errors.Is(err, model.ErrEmptyName):
		return "Note cannot be empty"
	case errors.As(err, &we):
		return "Save failed: " + we.Err.Error()
	}
	return "Save failed: " + err.Error()
}

func (m Model) viewList() string {
	s := m.list
	content := s.list.View()
	if s.adding {
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		title := "New note"
		if s.variant == model.VariantList {
			title = "New item"
		}
		inputLine := title + "\n" + s.name.View()
		if s.variant == model.VariantList {
			inputLine += "\n" + s.amount.View()
		}
		content = content + "\n" + bar.Render(inputLine)
	}
	if s.status != "" {
		st := accentStyle
		if s.statusErr {
			st = errorStyle
		}
		content += "\n" + st.Render(s.status)
	}
	return panelString(content)
}
