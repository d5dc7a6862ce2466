package scheduler

import "github.com/javiermolinar/meetgrid/internal/calendar"

// Grid records which (week, day, slot) cells are occupied.
// The zero value is an empty grid. A Grid is a plain value: copying it
// produces an independent snapshot.
type Grid struct {
	cells [calendar.NumWeeks][calendar.NumDays][calendar.NumSlots]bool
}

// Occupied reports whether a single cell is taken.
// Cells outside the grid are reported as occupied.
func (g Grid) Occupied(w calendar.Week, d calendar.Day, s calendar.Slot) bool {
	if !w.Valid() || !d.Valid() || !s.Valid() {
		return true
	}
	return g.cells[w][d][s]
}

// Free reports whether a run of n slots starting at start fits the working
// day and is unoccupied in week w.
func (g Grid) Free(w calendar.Week, d calendar.Day, start calendar.Slot, n int) bool {
	if !w.Valid() || !d.Valid() || !calendar.Fits(start, n) {
		return false
	}
	for i := range n {
		if g.cells[w][d][start+calendar.Slot(i)] {
			return false
		}
	}
	return true
}

// FreeAllWeeks reports whether the run is free in every week of the horizon.
func (g Grid) FreeAllWeeks(d calendar.Day, start calendar.Slot, n int) bool {
	for _, w := range calendar.Weeks() {
		if !g.Free(w, d, start, n) {
			return false
		}
	}
	return true
}

// Empty reports whether no cell is occupied.
func (g Grid) Empty() bool {
	return g == Grid{}
}

// mark occupies a run of n slots in week w. Callers check Free first.
func (g *Grid) mark(w calendar.Week, d calendar.Day, start calendar.Slot, n int) {
	for i := range n {
		g.cells[w][d][start+calendar.Slot(i)] = true
	}
}
