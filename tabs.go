package textline

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/utils"
)

// TabIncrement is the distance between default tab stops.
const TabIncrement = 20.0

// TabStops is a tab-stop policy: a sorted list of explicit stops, followed
// by default stops at multiples of an increment.
type TabStops struct {
	stops     *arraylist.List // of float64, ascending
	increment float64
}

// NewTabStops creates a tab-stop policy with explicit stops and a default
// increment for positions after the last explicit stop. An increment <= 0
// selects TabIncrement.
func NewTabStops(increment float64, stops ...float64) *TabStops {
	if increment <= 0 {
		increment = TabIncrement
	}
	ts := &TabStops{stops: arraylist.New(), increment: increment}
	for _, s := range stops {
		ts.stops.Add(s)
	}
	ts.stops.Sort(utils.Float64Comparator)
	return ts
}

// Increment returns the distance between default stops.
func (ts *TabStops) Increment() float64 {
	if ts == nil || ts.increment <= 0 {
		return TabIncrement
	}
	return ts.increment
}

// Stops returns the explicit stops in ascending order.
func (ts *TabStops) Stops() []float64 {
	if ts == nil || ts.stops == nil {
		return nil
	}
	stops := make([]float64, 0, ts.stops.Size())
	it := ts.stops.Iterator()
	for it.Next() {
		stops = append(stops, it.Value().(float64))
	}
	return stops
}

// NextTab returns the first tab stop strictly after h. h is an unsigned
// distance from the leading margin. A nil policy has default stops only.
func (ts *TabStops) NextTab(h float64) float64 {
	if ts != nil && ts.stops != nil {
		it := ts.stops.Iterator()
		for it.Next() {
			if stop := it.Value().(float64); stop > h {
				return stop
			}
		}
	}
	return NextDefaultStop(h, ts.Increment())
}

// NextDefaultStop returns the next multiple of inc strictly after h.
func NextDefaultStop(h, inc float64) float64 {
	return float64(int((h+inc)/inc)) * inc
}
