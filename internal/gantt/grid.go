package gantt

// OccupancyGrid is a dense interval membership matrix: one row per
// interval, one column per month.
type OccupancyGrid [][]bool

// ToOccupancyGrid marks row i true on [intervals[i].Start, intervals[i].End).
// Months outside [0, width) are clipped.
func ToOccupancyGrid(intervals []Interval, width int) OccupancyGrid {
	if width < 0 {
		width = 0
	}
	grid := make(OccupancyGrid, len(intervals))
	for i, iv := range intervals {
		row := make([]bool, width)
		for m := range row {
			row[m] = iv.Contains(m)
		}
		grid[i] = row
	}
	return grid
}

// Rows returns the number of rows.
func (g OccupancyGrid) Rows() int {
	return len(g)
}

// Width returns the number of month columns.
func (g OccupancyGrid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Span scans row for its first contiguous run of true cells.
func (g OccupancyGrid) Span(row int) (Interval, bool) {
	if row < 0 || row >= len(g) {
		return Interval{}, false
	}
	cells := g[row]
	start := -1
	for m, on := range cells {
		if on && start < 0 {
			start = m
		}
		if !on && start >= 0 {
			return Interval{Start: start, End: m}, true
		}
	}
	if start >= 0 {
		return Interval{Start: start, End: len(cells)}, true
	}
	return Interval{}, false
}

// FirstActive returns the first true month of row, or 0 when the row is
// empty. Row labels are anchored there.
func (g OccupancyGrid) FirstActive(row int) int {
	if iv, ok := g.Span(row); ok {
		return iv.Start
	}
	return 0
}
