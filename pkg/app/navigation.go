package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/feedtui/pkg/companion"
	"gitlab.com/tinyland/lab/feedtui/pkg/sources"
	"gitlab.com/tinyland/lab/feedtui/pkg/widgets"
)

// handleKey routes a key press. Quit and help work in every mode; the
// rest depends on whether the reader or the companion menu is open.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	}
	if _, open := m.store.Reader(); open {
		return m.handleReaderKey(msg)
	}
	if m.store.MenuOpen() {
		return m.handleMenuKey(msg)
	}
	return m.handleGridKey(msg)
}

func (m Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh(m.store.Focus())

	case key.Matches(msg, m.keys.RefreshAll):
		return m, m.refreshAll()

	case key.Matches(msg, m.keys.Menu):
		m.openMenu()

	case key.Matches(msg, m.keys.NextWidget):
		m.store.FocusNext()
		m.grant(m.engine.Action(companion.ActionNavigate), m.now())

	case key.Matches(msg, m.keys.PrevWidget):
		m.store.FocusPrev()
		m.grant(m.engine.Action(companion.ActionNavigate), m.now())

	case key.Matches(msg, m.keys.Up):
		m.store.MoveSelection(-1)

	case key.Matches(msg, m.keys.Down):
		m.store.MoveSelection(1)

	case key.Matches(msg, m.keys.Select):
		if !m.store.OpenReader() {
			m.showLink(m.store.SelectedLink())
		}

	case key.Matches(msg, m.keys.OpenLink):
		m.showLink(m.store.SelectedLink())

	case key.Matches(msg, m.keys.Expand):
		m.store.ToggleExpand()

	case key.Matches(msg, m.keys.Back):
		m.store.CollapseExpanded()
	}
	return m, nil
}

func (m Model) handleReaderKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r, _ := m.store.Reader()
	width, height := m.readerSize()
	limit := widgets.ReaderMaxScroll(r.Item, width, height, m.styles)
	page := max(height-1, 1)

	switch {
	case key.Matches(msg, m.keys.Back):
		m.store.CloseReader()
	case key.Matches(msg, m.keys.Up):
		m.store.ScrollReader(-1, limit)
	case key.Matches(msg, m.keys.Down):
		m.store.ScrollReader(1, limit)
	case key.Matches(msg, m.keys.PageUp):
		m.store.ScrollReader(-page, limit)
	case key.Matches(msg, m.keys.PageDown):
		m.store.ScrollReader(page, limit)
	case key.Matches(msg, m.keys.OpenLink), key.Matches(msg, m.keys.Select):
		m.showLink(r.Item.Link)
	}
	return m, nil
}

// showLink puts url in the status line. The dashboard never launches a
// browser.
func (m *Model) showLink(url string) {
	if url != "" {
		m.setStatus(url, m.now())
	}
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Menu), key.Matches(msg, m.keys.Back):
		m.store.ToggleCompanionMenu()

	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.PrevWidget):
		m.store.PrevCompanionTab()

	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.NextWidget):
		m.store.NextCompanionTab()

	case key.Matches(msg, m.keys.Up):
		m.store.MoveMenuCursor(-1, widgets.MenuSize(m.store.CompanionTab()))

	case key.Matches(msg, m.keys.Down):
		m.store.MoveMenuCursor(1, widgets.MenuSize(m.store.CompanionTab()))

	case key.Matches(msg, m.keys.Select):
		m.purchaseOrEquip()
	}
	return m, nil
}

// openMenu opens the companion menu and moves focus to the companion pane
// when one is configured.
func (m *Model) openMenu() {
	for _, w := range m.store.Widgets() {
		if w.Kind == sources.KindCreature {
			m.store.SetFocus(w.ID)
			break
		}
	}
	m.store.ToggleCompanionMenu()
}

// onMouse focuses the pane under a left click.
func (m *Model) onMouse(msg tea.MouseMsg) {
	if m.zones == nil || msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return
	}
	for _, id := range m.store.IDs() {
		if z := m.zones.Get(zoneID(id)); z != nil && z.InBounds(msg) {
			if id != m.store.Focus() {
				m.store.SetFocus(id)
				m.grant(m.engine.Action(companion.ActionNavigate), m.now())
			}
			return
		}
	}
}
