package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/feedtui/pkg/companion"
	"gitlab.com/tinyland/lab/feedtui/pkg/layout"
	"gitlab.com/tinyland/lab/feedtui/pkg/sources"
	"gitlab.com/tinyland/lab/feedtui/pkg/state"
	"gitlab.com/tinyland/lab/feedtui/pkg/widgets"
)

func zoneID(widgetID string) string { return "widget:" + widgetID }

// View draws the grid (or the expanded widget) above the status and help
// lines.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width <= 0 || m.height <= 0 {
		return "starting..."
	}

	footer := m.footer()
	area := layout.Rect{Width: m.width, Height: m.height - lipgloss.Height(footer)}

	if r, open := m.store.Reader(); open {
		return lipgloss.JoinVertical(lipgloss.Left, m.reader(r, area), footer)
	}

	var placements []layout.Placement
	if id := m.store.Expanded(); id != "" {
		placements = []layout.Placement{{ID: id, Rect: area}}
	} else {
		cells := make([]layout.Cell, 0, m.store.Len())
		for _, w := range m.store.Widgets() {
			cells = append(cells, layout.Cell{ID: w.ID, Row: w.Row, Col: w.Col})
		}
		placements = layout.Grid(cells, area)
	}

	view := lipgloss.JoinVertical(lipgloss.Left, m.grid(placements), footer)
	if m.zones != nil {
		return m.zones.Scan(view)
	}
	return view
}

// grid renders placements row by row. Placements arrive row-major, so a
// change of Y starts a new row.
func (m Model) grid(placements []layout.Placement) string {
	var (
		rows    []string
		current []string
		y       = -1
	)
	for _, p := range placements {
		if p.Rect.Y != y && len(current) > 0 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
		y = p.Rect.Y
		current = append(current, m.pane(p))
	}
	if len(current) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) pane(p layout.Placement) string {
	w, ok := m.store.Widget(p.ID)
	if !ok {
		return ""
	}
	ctx := widgets.Context{
		Styles:  m.styles,
		Width:   max(p.Rect.Width-widgets.PaneFrameWidth, 0),
		Height:  max(p.Rect.Height-widgets.PaneFrameHeight, 0),
		Focused: w.ID == m.store.Focus(),
		Now:     m.now(),
		Effects: m.effects(),
	}
	if ctx.Width == 0 || ctx.Height == 0 {
		return ""
	}

	var body string
	if w.Kind == sources.KindCreature {
		body = widgets.RenderCompanion(m.companionView(), ctx)
	} else {
		body = widgets.Render(w, ctx)
	}
	out := widgets.Pane(widgets.Title(w, ctx), body, ctx)
	if m.zones != nil {
		out = m.zones.Mark(zoneID(w.ID), out)
	}
	return out
}

// reader draws the open reader over the whole grid area.
func (m Model) reader(r state.Reader, area layout.Rect) string {
	ctx := widgets.Context{
		Styles:  m.styles,
		Width:   max(area.Width-widgets.PaneFrameWidth, 0),
		Height:  max(area.Height-widgets.PaneFrameHeight, 0),
		Focused: true,
		Now:     m.now(),
	}
	if ctx.Width == 0 || ctx.Height == 0 {
		return ""
	}
	title := m.styles.Title.Render(r.Item.Title)
	return widgets.Pane(title, widgets.RenderReader(r.Item, r.Scroll, ctx), ctx)
}

// readerSize is the reader's content area for the current window.
func (m Model) readerSize() (width, height int) {
	area := m.height - lipgloss.Height(m.footer())
	return max(m.width-widgets.PaneFrameWidth, 0), max(area-widgets.PaneFrameHeight, 0)
}

func (m Model) effects() widgets.Effects {
	c := m.engine.Companion()
	return widgets.Effects{
		NewsDigest:   c.HasEffect(companion.EffectNewsDigest),
		StockAlert:   c.HasEffect(companion.EffectStockAlert),
		AlertPercent: companion.StockAlertPercent,
	}
}

func (m Model) companionView() widgets.CompanionView {
	return widgets.CompanionView{
		Companion: m.engine.Companion(),
		Rules:     m.engine.Rules(),
		Mood:      m.mood,
		Frame:     m.frame,
		Greeting:  m.greeting,
		Headline:  m.headline(),
		MenuOpen:  m.store.MenuOpen(),
		Tab:       m.store.CompanionTab(),
		Cursor:    m.store.MenuCursor(),
	}
}

// headline is the highest scoring story of the first news widget with
// data.
func (m Model) headline() string {
	for _, w := range m.store.Widgets() {
		if p, ok := w.Payload.(sources.Stories); ok {
			if i := p.Top(); i >= 0 {
				return p.Items[i].Title
			}
		}
	}
	return ""
}

func (m Model) footer() string {
	s := m.styles
	var parts []string
	switch {
	case m.status != "":
		parts = append(parts, s.Highlight.Render(m.status))
	case m.notice != "":
		parts = append(parts, s.Warn.Render(m.notice))
	}
	if n := m.store.Fetching(); n > 0 {
		label := "fetching"
		if m.store.RefreshAllInFlight() {
			label = "refreshing all"
		}
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%s (%d)", label, n)))
	}
	status := s.Status.Width(m.width).MaxWidth(m.width).Render(strings.Join(parts, "  "))

	var keys help.KeyMap = m.keys
	if _, open := m.store.Reader(); open {
		keys = readerKeys{m.keys}
	} else if m.store.MenuOpen() {
		keys = menuKeys{m.keys}
	}
	return lipgloss.JoinVertical(lipgloss.Left, status, m.help.View(keys))
}
