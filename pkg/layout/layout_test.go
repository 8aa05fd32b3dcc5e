package layout

import "testing"

func TestSplitEven(t *testing.T) {
	got := Split(100, 4, 0)
	for i, v := range got {
		if v != 25 {
			t.Errorf("part %d = %d, want 25", i, v)
		}
	}
}

func TestSplitRemainderGoesLast(t *testing.T) {
	got := Split(10, 3, 0)
	want := []int{3, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Split(10,3) = %v, want %v", got, want)
		}
	}
}

func TestSplitSpacing(t *testing.T) {
	got := Split(11, 2, 1)
	if got[0]+got[1] != 10 {
		t.Errorf("expected 10 cells after spacing, got %v", got)
	}
}

func TestSplitDegenerate(t *testing.T) {
	if got := Split(10, 0, 0); got != nil {
		t.Errorf("Split with n=0 = %v, want nil", got)
	}
	got := Split(2, 3, 5)
	for _, v := range got {
		if v != 0 {
			t.Errorf("overfull spacing should yield zero parts, got %v", got)
		}
	}
}

func TestGridTwoByTwo(t *testing.T) {
	cells := []Cell{
		{ID: "a", Row: 0, Col: 0},
		{ID: "b", Row: 0, Col: 1},
		{ID: "c", Row: 1, Col: 0},
		{ID: "d", Row: 1, Col: 1},
	}
	got := Grid(cells, Rect{Width: 80, Height: 20})
	want := map[string]Rect{
		"a": {X: 0, Y: 0, Width: 40, Height: 10},
		"b": {X: 40, Y: 0, Width: 40, Height: 10},
		"c": {X: 0, Y: 10, Width: 40, Height: 10},
		"d": {X: 40, Y: 10, Width: 40, Height: 10},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d placements, want %d", len(got), len(want))
	}
	for _, p := range got {
		if p.Rect != want[p.ID] {
			t.Errorf("%s: got %+v, want %+v", p.ID, p.Rect, want[p.ID])
		}
	}
}

func TestGridSingleWidgetRowSpansWidth(t *testing.T) {
	cells := []Cell{
		{ID: "wide", Row: 0, Col: 3},
		{ID: "l", Row: 1, Col: 0},
		{ID: "r", Row: 1, Col: 1},
	}
	got := Grid(cells, Rect{Width: 60, Height: 30})
	if got[0].ID != "wide" || got[0].Rect.Width != 60 {
		t.Errorf("lone widget should span the row, got %+v", got[0])
	}
}

func TestGridCollisionLaterWins(t *testing.T) {
	cells := []Cell{
		{ID: "first", Row: 0, Col: 0},
		{ID: "second", Row: 0, Col: 0},
	}
	got := Grid(cells, Rect{Width: 10, Height: 10})
	if len(got) != 1 || got[0].ID != "second" {
		t.Errorf("expected only the later widget, got %+v", got)
	}
}

func TestGridOrderRowMajor(t *testing.T) {
	cells := []Cell{
		{ID: "bottom", Row: 5, Col: 0},
		{ID: "top-right", Row: 0, Col: 2},
		{ID: "top-left", Row: 0, Col: 0},
	}
	got := Grid(cells, Rect{X: 1, Y: 2, Width: 10, Height: 10})
	order := []string{"top-left", "top-right", "bottom"}
	for i, id := range order {
		if got[i].ID != id {
			t.Errorf("placement %d = %s, want %s", i, got[i].ID, id)
		}
	}
	if got[0].Rect.X != 1 || got[0].Rect.Y != 2 {
		t.Errorf("placements should be offset by the area origin, got %+v", got[0].Rect)
	}
}

func TestGridEmpty(t *testing.T) {
	if got := Grid(nil, Rect{Width: 10, Height: 10}); got != nil {
		t.Errorf("Grid(nil) = %v", got)
	}
	if got := Grid([]Cell{{ID: "a"}}, Rect{}); got != nil {
		t.Errorf("Grid on empty area = %v", got)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 2, Y: 3, Width: 4, Height: 2}
	if !r.Contains(2, 3) || !r.Contains(5, 4) {
		t.Error("expected corners inside")
	}
	if r.Contains(6, 3) || r.Contains(2, 5) {
		t.Error("right and bottom edges are exclusive")
	}
}
