package kpiboard

const (
	// GridColumns is the column count of the responsive grid.
	GridColumns = 12

	// BreakpointLG, BreakpointMD, and BreakpointSM are the responsive size
	// classes every layout carries.
	BreakpointLG = "lg"
	BreakpointMD = "md"
	BreakpointSM = "sm"
)

// Breakpoints returns the supported breakpoint names in descending size.
func Breakpoints() []string {
	return []string{BreakpointLG, BreakpointMD, BreakpointSM}
}

// ExpandBreakpoints builds the three breakpoint variants from an authored
// placement table: lg and md use the placements verbatim, sm forces every
// item to full width while preserving height and row order.
func ExpandBreakpoints(placements []Placement) GridLayout {
	lg := append([]Placement(nil), placements...)
	md := append([]Placement(nil), placements...)
	sm := make([]Placement, len(placements))
	for i, p := range placements {
		p.X = 0
		p.W = GridColumns
		sm[i] = p
	}
	return GridLayout{
		BreakpointLG: lg,
		BreakpointMD: md,
		BreakpointSM: sm,
	}
}

// Clone returns a deep copy of the layout.
func (l GridLayout) Clone() GridLayout {
	if l == nil {
		return nil
	}
	out := make(GridLayout, len(l))
	for bp, placements := range l {
		out[bp] = append([]Placement(nil), placements...)
	}
	return out
}

// Placement finds the placement record for a KPI id at a breakpoint.
func (l GridLayout) Placement(breakpoint, id string) (Placement, bool) {
	for _, p := range l[breakpoint] {
		if p.ID == id {
			return p, true
		}
	}
	return Placement{}, false
}

// Contains reports whether any breakpoint positions the given KPI id.
func (l GridLayout) Contains(id string) bool {
	for _, placements := range l {
		for _, p := range placements {
			if p.ID == id {
				return true
			}
		}
	}
	return false
}

// withPlacement returns a copy of the layout with a placement record for id
// on every breakpoint. The authored default placement is used when the
// department config knows the id; otherwise the card is appended below the
// current bottom row at half width (full width on sm).
func (l GridLayout) withPlacement(dept DepartmentConfig, id string) GridLayout {
	out := l.Clone()
	if out == nil {
		out = GridLayout{}
	}
	authored, hasAuthored := authoredPlacement(dept, id)
	for _, bp := range Breakpoints() {
		if _, ok := out.Placement(bp, id); ok {
			continue
		}
		p := authored
		if !hasAuthored {
			p = Placement{ID: id, X: 0, Y: bottomRow(out[bp]), W: GridColumns / 2, H: 4}
		}
		if bp == BreakpointSM {
			p.X = 0
			p.W = GridColumns
		}
		out[bp] = append(out[bp], p)
	}
	return out
}

// withoutPlacement returns a copy of the layout with every placement record
// for id dropped.
func (l GridLayout) withoutPlacement(id string) GridLayout {
	out := make(GridLayout, len(l))
	for bp, placements := range l {
		kept := make([]Placement, 0, len(placements))
		for _, p := range placements {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		out[bp] = kept
	}
	return out
}

func authoredPlacement(dept DepartmentConfig, id string) (Placement, bool) {
	for _, p := range dept.DefaultPlacements {
		if p.ID == id {
			return p, true
		}
	}
	return Placement{}, false
}

func bottomRow(placements []Placement) int {
	bottom := 0
	for _, p := range placements {
		if edge := p.Y + p.H; edge > bottom {
			bottom = edge
		}
	}
	return bottom
}

// OverviewLayout synthesizes the aggregator's two-per-row layout for the
// given KPI ids in arrival order.
func OverviewLayout(ids []string) GridLayout {
	placements := make([]Placement, len(ids))
	for i, id := range ids {
		placements[i] = Placement{
			ID: id,
			X:  (i % 2) * (GridColumns / 2),
			Y:  (i / 2) * 4,
			W:  GridColumns / 2,
			H:  4,
		}
	}
	return ExpandBreakpoints(placements)
}
