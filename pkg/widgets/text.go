package widgets

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// fit truncates s to width visible cells, adding an ellipsis when it cuts.
// ANSI sequences before the cut point are preserved.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// padRight pads s with trailing spaces to exactly width visible cells.
func padRight(s string, width int) string {
	vis := ansi.StringWidth(s)
	if vis >= width {
		return s
	}
	return s + strings.Repeat(" ", width-vis)
}

// wrap word-wraps s at width, respecting ANSI sequences and wide runes.
func wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	return strings.Split(ansi.Wrap(s, width, ""), "\n")
}

// block fits lines into a width x height rectangle.
func block(lines []string, width, height int) string {
	out := make([]string, height)
	for i := range out {
		if i < len(lines) {
			out[i] = padRight(fit(lines[i], width), width)
		} else {
			out[i] = strings.Repeat(" ", width)
		}
	}
	return strings.Join(out, "\n")
}

// row is one rendered list line. index is the payload row it represents,
// or -1 for headers and notes that cannot be selected.
type row struct {
	text  string
	index int
}

// window renders rows into at most height lines, scrolling so that the
// selected payload row stays visible and marking it.
func window(rows []row, selected, height int, ctx Context) []string {
	if height <= 0 {
		return nil
	}
	start := 0
	if selected >= 0 {
		for i, r := range rows {
			if r.index == selected && i >= height {
				start = i - height + 1
			}
		}
	}
	end := min(len(rows), start+height)

	lines := make([]string, 0, end-start)
	for _, r := range rows[start:end] {
		switch {
		case r.index < 0:
			lines = append(lines, r.text)
		case r.index == selected:
			lines = append(lines, ctx.Styles.Selected.Render("> ")+r.text)
		default:
			lines = append(lines, "  "+r.text)
		}
	}
	return lines
}
