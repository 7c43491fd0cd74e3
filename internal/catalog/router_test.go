package catalog

import (
	"testing"

	"catalog-gateway/internal/model"
)

func TestPlanWindowsSpansCategories(t *testing.T) {
	counts := model.CategoryCounts{Columns: 5, OutgoingFKs: 3, IncomingFKs: 2}

	// Page 1: first four columns.
	windows := PlanWindows(1, 4, counts)
	if len(windows) != 1 {
		t.Fatalf("page 1: expected 1 window, got %d", len(windows))
	}
	assertWindow(t, windows[0], model.CategoryColumns, 0, 4)

	// Page 2 straddles the boundary: last column plus all outgoing keys.
	windows = PlanWindows(2, 4, counts)
	if len(windows) != 2 {
		t.Fatalf("page 2: expected 2 windows, got %d", len(windows))
	}
	assertWindow(t, windows[0], model.CategoryColumns, 4, 1)
	assertWindow(t, windows[1], model.CategoryOutgoingFK, 0, 3)

	// Page 3: the two incoming keys.
	windows = PlanWindows(3, 4, counts)
	if len(windows) != 1 {
		t.Fatalf("page 3: expected 1 window, got %d", len(windows))
	}
	assertWindow(t, windows[0], model.CategoryIncomingFK, 0, 2)

	// Page 4 is past the end: a valid empty outcome.
	windows = PlanWindows(4, 4, counts)
	if len(windows) != 0 {
		t.Fatalf("page 4: expected no windows, got %d", len(windows))
	}
}

func TestPlanWindowsSkipsEmptyCategories(t *testing.T) {
	counts := model.CategoryCounts{Columns: 2, OutgoingFKs: 0, IncomingFKs: 3}

	windows := PlanWindows(1, 4, counts)
	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(windows))
	}
	assertWindow(t, windows[0], model.CategoryColumns, 0, 2)
	assertWindow(t, windows[1], model.CategoryIncomingFK, 0, 2)
}

func TestPlanWindowsOffsetWithinLaterCategory(t *testing.T) {
	counts := model.CategoryCounts{Columns: 1, OutgoingFKs: 10, IncomingFKs: 10}

	// Global offset 6 lands 5 deep in outgoing keys.
	windows := PlanWindows(3, 3, counts)
	if len(windows) != 1 {
		t.Fatalf("expected 1 window, got %d", len(windows))
	}
	assertWindow(t, windows[0], model.CategoryOutgoingFK, 5, 3)
}

// Every page's windows, concatenated, must reproduce the global slice: no
// gaps, no duplicates, nothing out of order.
func TestPlanWindowsExhaustive(t *testing.T) {
	cases := []model.CategoryCounts{
		{Columns: 5, OutgoingFKs: 3, IncomingFKs: 2},
		{Columns: 0, OutgoingFKs: 0, IncomingFKs: 7},
		{Columns: 1, OutgoingFKs: 1, IncomingFKs: 1},
		{Columns: 13, OutgoingFKs: 0, IncomingFKs: 4},
		{Columns: 0, OutgoingFKs: 0, IncomingFKs: 0},
	}

	for _, counts := range cases {
		for limit := 1; limit <= 7; limit++ {
			var global []int // global index of every item emitted, in order
			page := 1
			for {
				windows := PlanWindows(page, limit, counts)
				if len(windows) == 0 {
					break
				}
				emitted := 0
				for _, w := range windows {
					base := 0
					for _, cat := range model.Categories {
						if cat == w.Category {
							break
						}
						base += counts.Count(cat)
					}
					for i := 0; i < w.Limit; i++ {
						global = append(global, base+w.Offset+i)
					}
					emitted += w.Limit
				}
				if emitted > limit {
					t.Fatalf("counts=%+v limit=%d page=%d: emitted %d > limit", counts, limit, page, emitted)
				}
				page++
			}

			if len(global) != counts.Total() {
				t.Fatalf("counts=%+v limit=%d: emitted %d items, want %d", counts, limit, len(global), counts.Total())
			}
			for i, idx := range global {
				if idx != i {
					t.Fatalf("counts=%+v limit=%d: position %d holds global index %d", counts, limit, i, idx)
				}
			}
		}
	}
}

func TestPlanWindowsRejectsInvalidInput(t *testing.T) {
	counts := model.CategoryCounts{Columns: 5}
	if w := PlanWindows(0, 4, counts); w != nil {
		t.Errorf("page 0: expected nil plan, got %v", w)
	}
	if w := PlanWindows(1, 0, counts); w != nil {
		t.Errorf("limit 0: expected nil plan, got %v", w)
	}
	if w := PlanWindows(-2, -1, counts); w != nil {
		t.Errorf("negative input: expected nil plan, got %v", w)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, limit, want int
	}{
		{0, 4, 0},
		{1, 4, 1},
		{4, 4, 1},
		{5, 4, 2},
		{10, 4, 3},
		{10, 1, 10},
		{3, 100, 1},
	}
	for _, c := range cases {
		if got := TotalPages(c.total, c.limit); got != c.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", c.total, c.limit, got, c.want)
		}
	}
}

func TestClampLimit(t *testing.T) {
	if got := ClampLimit(10000, 500); got != 500 {
		t.Errorf("expected clamp to 500, got %d", got)
	}
	if got := ClampLimit(50, 500); got != 50 {
		t.Errorf("expected 50 to pass through, got %d", got)
	}
	if got := ClampLimit(50, 0); got != 50 {
		t.Errorf("expected no clamping with max 0, got %d", got)
	}
}

func assertWindow(t *testing.T, w model.PageWindow, cat model.Category, offset, limit int) {
	t.Helper()
	if w.Category != cat || w.Offset != offset || w.Limit != limit {
		t.Errorf("window = {%s offset=%d limit=%d}, want {%s offset=%d limit=%d}",
			w.Category, w.Offset, w.Limit, cat, offset, limit)
	}
}
