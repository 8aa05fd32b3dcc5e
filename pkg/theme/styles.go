package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles are the lipgloss styles the dashboard draws with.
type Styles struct {
	Theme Theme

	Pane        lipgloss.Style
	PaneFocused lipgloss.Style
	Title       lipgloss.Style
	Text        lipgloss.Style
	Dim         lipgloss.Style
	Accent      lipgloss.Style
	Selected    lipgloss.Style
	Highlight   lipgloss.Style

	OK      lipgloss.Style
	Warn    lipgloss.Style
	Error   lipgloss.Style
	Unknown lipgloss.Style

	Gain lipgloss.Style
	Loss lipgloss.Style

	XPFilled lipgloss.Style
	XPEmpty  lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
	Status   lipgloss.Style
}

// NewStyles builds styles from an already adapted theme.
func NewStyles(t Theme) Styles {
	fg := func(c string) lipgloss.Style {
		s := lipgloss.NewStyle()
		if c != "" {
			s = s.Foreground(lipgloss.Color(c))
		}
		return s
	}
	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if t.Border != "" {
		pane = pane.BorderForeground(lipgloss.Color(t.Border))
	}
	focused := pane
	if t.BorderFocus != "" {
		focused = focused.BorderForeground(lipgloss.Color(t.BorderFocus))
	}

	return Styles{
		Theme:       t,
		Pane:        pane,
		PaneFocused: focused,
		Title:       fg(t.Title).Bold(true),
		Text:        fg(t.Foreground),
		Dim:         fg(t.Dim),
		Accent:      fg(t.Accent),
		Selected:    fg(t.Accent).Bold(true),
		Highlight:   fg(t.Highlight).Bold(true),
		OK:          fg(t.StatusOK),
		Warn:        fg(t.StatusWarn),
		Error:       fg(t.StatusError),
		Unknown:     fg(t.StatusUnknown),
		Gain:        fg(t.Gain),
		Loss:        fg(t.Loss),
		XPFilled:    fg(t.XPFilled),
		XPEmpty:     fg(t.XPEmpty),
		HelpKey:     fg(t.HelpKey).Bold(true),
		HelpDesc:    fg(t.HelpDesc),
		Status:      fg(t.StatusWarn).Italic(true),
	}
}

// ForProfile resolves name, adapts it to profile and builds its styles.
func ForProfile(name string, profile termenv.Profile) Styles {
	return NewStyles(Adapt(Get(name), profile))
}
