// Package layout places dashboard panes on a terminal grid. Widgets name a
// (row, col) cell; occupied rows share the height evenly and each row's
// occupied columns share its width.
package layout

import (
	"slices"
)

// Rect is a rectangle in terminal cells.
type Rect struct {
	X, Y, Width, Height int
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the point (px, py) lies within r.
func (r Rect) Contains(px, py int) bool {
	return px >= r.X && px < r.X+r.Width && py >= r.Y && py < r.Y+r.Height
}

// Cell is one widget's requested grid position.
type Cell struct {
	ID       string
	Row, Col int
}

// Placement is a widget's resolved rectangle.
type Placement struct {
	ID   string
	Rect Rect
}

// Split divides total into n parts separated by spacing cells. The last
// part absorbs the rounding remainder.
func Split(total, n, spacing int) []int {
	if n <= 0 {
		return nil
	}
	avail := max(total-spacing*(n-1), 0)
	parts := make([]int, n)
	for i := range parts {
		parts[i] = avail / n
	}
	parts[n-1] += avail % n
	return parts
}

// Grid resolves cells inside area. When two cells name the same position
// the later one wins and the earlier one is not placed. Placements are
// returned row by row, left to right.
func Grid(cells []Cell, area Rect) []Placement {
	if area.Empty() || len(cells) == 0 {
		return nil
	}

	type pos struct{ row, col int }
	owner := make(map[pos]string, len(cells))
	for _, c := range cells {
		owner[pos{c.Row, c.Col}] = c.ID
	}

	var rows []int
	cols := make(map[int][]int)
	for p := range owner {
		if _, seen := cols[p.row]; !seen {
			rows = append(rows, p.row)
		}
		cols[p.row] = append(cols[p.row], p.col)
	}
	slices.Sort(rows)

	heights := Split(area.Height, len(rows), 0)
	out := make([]Placement, 0, len(owner))
	y := area.Y
	for i, r := range rows {
		cs := cols[r]
		slices.Sort(cs)
		widths := Split(area.Width, len(cs), 0)
		x := area.X
		for j, c := range cs {
			out = append(out, Placement{
				ID:   owner[pos{r, c}],
				Rect: Rect{X: x, Y: y, Width: widths[j], Height: heights[i]},
			})
			x += widths[j]
		}
		y += heights[i]
	}
	return out
}
