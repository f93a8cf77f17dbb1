package kpiboard

import "testing"

func TestExpandBreakpointsForcesFullWidthOnSmall(t *testing.T) {
	layout := ExpandBreakpoints([]Placement{
		{ID: "a", X: 0, Y: 0, W: 6, H: 4},
		{ID: "b", X: 6, Y: 0, W: 6, H: 4},
	})

	if len(layout[BreakpointLG]) != 2 || len(layout[BreakpointMD]) != 2 {
		t.Fatalf("lg/md should carry the authored placements verbatim")
	}
	for _, p := range layout[BreakpointSM] {
		if p.X != 0 || p.W != GridColumns {
			t.Fatalf("sm placement %s should be full width, got x=%d w=%d", p.ID, p.X, p.W)
		}
	}
	if layout[BreakpointSM][1].H != 4 {
		t.Fatalf("sm should preserve heights")
	}
}

func TestCloneIsDeep(t *testing.T) {
	layout := ExpandBreakpoints([]Placement{{ID: "a", W: 6, H: 4}})
	clone := layout.Clone()
	clone[BreakpointLG][0].W = 12
	if layout[BreakpointLG][0].W != 6 {
		t.Fatalf("mutating the clone leaked into the original")
	}
}

func TestWithPlacementUsesAuthoredPosition(t *testing.T) {
	dept := testDepartment()
	layout := GridLayout{}.withPlacement(dept, "churnRate")

	p, ok := layout.Placement(BreakpointLG, "churnRate")
	if !ok {
		t.Fatalf("expected placement on lg")
	}
	if p.X != 6 || p.W != 6 {
		t.Fatalf("expected authored position, got %+v", p)
	}
	sm, _ := layout.Placement(BreakpointSM, "churnRate")
	if sm.X != 0 || sm.W != GridColumns {
		t.Fatalf("sm placement should be full width, got %+v", sm)
	}
}

func TestWithPlacementAppendsBelowBottomRowWithoutAuthoredEntry(t *testing.T) {
	dept := testDepartment()
	layout := dept.DefaultLayout().withPlacement(dept, "winRate")

	p, ok := layout.Placement(BreakpointLG, "winRate")
	if !ok {
		t.Fatalf("expected synthesized placement")
	}
	if p.Y != 4 {
		t.Fatalf("expected placement below bottom row, got y=%d", p.Y)
	}
	if p.W != GridColumns/2 {
		t.Fatalf("expected half width, got %d", p.W)
	}
}

func TestWithPlacementIsIdempotent(t *testing.T) {
	dept := testDepartment()
	layout := dept.DefaultLayout().withPlacement(dept, "mrr")
	if n := len(layout[BreakpointLG]); n != 2 {
		t.Fatalf("expected no duplicate placement, got %d entries", n)
	}
}

func TestWithoutPlacementDropsEveryBreakpoint(t *testing.T) {
	dept := testDepartment()
	layout := dept.DefaultLayout().withoutPlacement("mrr")
	if layout.Contains("mrr") {
		t.Fatalf("expected mrr removed from every breakpoint")
	}
	if !layout.Contains("churnRate") {
		t.Fatalf("other placements should survive")
	}
}

func TestOverviewLayoutTwoPerRow(t *testing.T) {
	layout := OverviewLayout([]string{"a", "b", "c"})
	want := []Placement{
		{ID: "a", X: 0, Y: 0, W: 6, H: 4},
		{ID: "b", X: 6, Y: 0, W: 6, H: 4},
		{ID: "c", X: 0, Y: 4, W: 6, H: 4},
	}
	got := layout[BreakpointLG]
	if len(got) != len(want) {
		t.Fatalf("expected %d placements, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("placement %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}
