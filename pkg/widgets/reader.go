package widgets

import (
	"strings"

	"gitlab.com/tinyland/lab/feedtui/pkg/sources"
	"gitlab.com/tinyland/lab/feedtui/pkg/theme"
)

// ReaderLines lays out d for a content width: source, info and link
// headers, then the body between two rules.
func ReaderLines(d sources.Detail, width int, s theme.Styles) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	header := func(label, value string, style func(...string) string) {
		if value == "" {
			return
		}
		lines = append(lines, wrap(s.Dim.Render(label+": ")+style(value), width)...)
	}
	header("Source", d.Source, s.Accent.Render)
	header("Info", d.Meta, s.OK.Render)
	header("URL", d.Link, s.Text.Render)

	rule := s.Dim.Render(strings.Repeat("─", width))
	lines = append(lines, "", rule, "")
	if strings.TrimSpace(d.Body) == "" {
		lines = append(lines, s.Dim.Render("No description available."))
		if d.Link != "" {
			lines = append(lines, "", s.Warn.Render("Press o to show the link."))
		}
	} else {
		for _, para := range strings.Split(d.Body, "\n") {
			if para == "" {
				lines = append(lines, "")
				continue
			}
			lines = append(lines, wrap(s.Text.Render(para), width)...)
		}
	}
	return append(lines, "", rule)
}

// ReaderMaxScroll is the largest useful scroll offset for d in a
// width x height content area.
func ReaderMaxScroll(d sources.Detail, width, height int, s theme.Styles) int {
	return max(len(ReaderLines(d, width, s))-height, 0)
}

// RenderReader draws d from line scroll: exactly ctx.Height lines.
func RenderReader(d sources.Detail, scroll int, ctx Context) string {
	if ctx.Width <= 0 || ctx.Height <= 0 {
		return ""
	}
	lines := ReaderLines(d, ctx.Width, ctx.Styles)
	scroll = min(max(scroll, 0), max(len(lines)-ctx.Height, 0))
	return block(lines[scroll:], ctx.Width, ctx.Height)
}
