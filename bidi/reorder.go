package bidi

import "github.com/npillmayer/textline"

// reorder puts runs from logical order into visual order starting at the
// leading edge of a paragraph with embedding level base. This is rule L2 of
// UAX#9, stopped above the paragraph level: from the highest level down to
// base+1, every maximal sequence of runs at that level or higher is
// reversed. Runs at the paragraph level keep their logical order. reorder
// works in place.
func reorder(runs []textline.Run, base uint8) []textline.Run {
	if len(runs) < 2 {
		return runs
	}
	var maxLevel uint8
	for _, r := range runs {
		maxLevel = max(maxLevel, r.Level)
	}
	for lvl := maxLevel; lvl > base; lvl-- {
		for i := 0; i < len(runs); {
			if runs[i].Level < lvl {
				i++
				continue
			}
			j := i
			for j < len(runs) && runs[j].Level >= lvl {
				j++
			}
			reverse(runs, i, j)
			i = j
		}
	}
	return runs
}

// reverse ordering of [i,j)
func reverse(runs []textline.Run, i, j int) {
	for j--; i < j; i, j = i+1, j-1 {
		runs[i], runs[j] = runs[j], runs[i]
	}
}
