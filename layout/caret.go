package layout

import "github.com/npillmayer/textline"

// OffsetToLeftRightOf moves a caret one position to the left or to the
// right, in visual terms, skipping positions inside of clusters and
// replacement objects.
//
// A caret at the boundary between two runs belongs to the run with the lower
// embedding level. If the caret leaves the line, the result is -1 (moving
// backwards past the start) or Len()+1 (moving forward past the end), and
// clients should continue on the neighbouring line.
func (l *Line) OffsetToLeftRightOf(cursor int, toLeft bool) int {
	// The caret marks the leading edge of a character. The character
	// logically before it may be on a different level; the active position
	// is on the character at the lower level, possibly at its trailing edge.
	// We move this position in the requested direction and resolve the new
	// boundary the same way.
	lineStart, lineEnd := 0, l.length
	paraIsRtl := l.dir.IsRTL()
	runs := l.dirs.Runs
	n := len(runs)

	runIndex, runLevel := 0, uint8(0)
	runStart, runLimit := lineStart, lineEnd
	newCaret := -1
	trailing := false

	if cursor == lineStart {
		runIndex = -1
	} else if cursor == lineEnd {
		runIndex = n
	} else {
		for runIndex = 0; runIndex < n; runIndex++ {
			runStart = lineStart + runs[runIndex].Start
			if cursor < runStart {
				continue
			}
			runLimit = min(runStart+runs[runIndex].Length, lineEnd)
			if cursor >= runLimit {
				continue
			}
			runLevel = runs[runIndex].Level
			if cursor == runStart {
				// On a run boundary: use the trailing edge of the previous
				// character if it is on a lower level.
				pos := cursor - 1
				for prev := 0; prev < n; prev++ {
					prevStart := lineStart + runs[prev].Start
					if pos < prevStart {
						continue
					}
					prevLimit := min(prevStart+runs[prev].Length, lineEnd)
					if pos >= prevLimit {
						continue
					}
					if prevLevel := runs[prev].Level; prevLevel < runLevel {
						runIndex, runLevel = prev, prevLevel
						runStart, runLimit = prevStart, prevLimit
						trailing = true
						break
					}
				}
			}
			break
		}
		// If the cursor is not covered by any run, we are at a run
		// boundary and skip moving within a run.
		if runIndex != n {
			runIsRtl := runLevel&1 != 0
			advance := toLeft == runIsRtl
			edge := runStart
			if advance {
				edge = runLimit
			}
			if cursor != edge || advance != trailing {
				newCaret = l.offsetBeforeAfter(runIndex, runStart, runLimit, runIsRtl, cursor, advance)
				if newCaret != edge { // strong position inside the run
					return newCaret
				}
			}
		}
	}
	// Either we start at a run boundary and cross into the adjacent run
	// (newCaret == -1), or we arrived at a boundary and have to decide which
	// run it belongs to. Crossing may end at another boundary, which is
	// resolved in a second and final round.
	for {
		advance := toLeft == paraIsRtl
		other := runIndex - 1
		if advance {
			other = runIndex + 1
		}
		if other >= 0 && other < n {
			otherStart := lineStart + runs[other].Start
			otherLimit := min(otherStart+runs[other].Length, lineEnd)
			otherLevel := runs[other].Level
			otherIsRtl := otherLevel&1 != 0
			advance = toLeft == otherIsRtl
			near, far := otherLimit, otherStart
			if advance {
				near, far = otherStart, otherLimit
			}
			if newCaret == -1 {
				newCaret = l.offsetBeforeAfter(other, otherStart, otherLimit, otherIsRtl, near, advance)
				if newCaret == far {
					runIndex, runLevel = other, otherLevel
					continue
				}
				break
			}
			if otherLevel < runLevel { // the strong character is in the other run
				newCaret = near
			}
			break
		}
		if newCaret == -1 {
			// Walking off the line. The paragraph level is lower than or
			// equal to any level inside, so the boundaries are strong.
			if advance {
				newCaret = l.length + 1
			} else {
				newCaret = -1
			}
			break
		}
		// Arrived at the end of the line, which is a strong position.
		// A single counter-directional run may have left us at lineEnd while
		// we want lineStart, hence the comparison.
		if newCaret <= lineEnd {
			if advance {
				newCaret = lineEnd
			} else {
				newCaret = lineStart
			}
		}
		break
	}
	T().Debugf("layout: caret %d moved %s to %d", cursor, leftOrRight(toLeft), newCaret)
	return newCaret
}

// offsetBeforeAfter returns the next valid caret offset within a run,
// before or after offset. Replacement objects are skipped as a whole.
// At the edges of the line the source text is consulted instead, which is
// only a guess, as shaping on neighbouring lines is unknown here.
func (l *Line) offsetBeforeAfter(runIndex, runStart, runLimit int, rtl bool, offset int, after bool) int {
	if runIndex < 0 || (after && offset == l.length) || (!after && offset == 0) {
		if after {
			return offsetAfter(l.text, l.spanned, offset+l.start) - l.start
		}
		return offsetBefore(l.text, l.spanned, offset+l.start) - l.start
	}
	wp := &l.workPaint
	*wp = *l.paint
	wp.WordSpacing = l.addedWidth
	spanStart, spanLimit := runStart, runLimit
	if l.spanned != nil {
		target := offset
		if after {
			target++
		}
		limit := l.start + runLimit
		for {
			spanLimit = textline.NextTransition(l.spanned, l.start+spanStart, limit, textline.MetricAffecting) - l.start
			if spanLimit >= target || spanLimit >= runLimit {
				break
			}
			spanStart = spanLimit
		}
		var replacement textline.Replacement
		for _, s := range l.spanned.Spans(l.start+spanStart, l.start+spanLimit, textline.MetricAffecting) {
			if s.Empty() {
				continue
			}
			if r, ok := s.Style.(textline.Replacement); ok {
				replacement = r
			} else {
				s.Style.UpdatePaint(wp)
			}
		}
		if replacement != nil { // move to the start or end of the replacement
			if after {
				return spanLimit
			}
			return spanStart
		}
	}
	return l.shaper.RunCursor(wp, l.chars, spanStart, spanLimit, rtl, offset, after)
}

// offsetAfter steps one character forward in text, skipping over
// replacement objects.
func offsetAfter(text []rune, spanned textline.Spanned, offset int) int {
	if offset >= len(text) {
		return len(text)
	}
	offset++
	if spanned != nil {
		for _, s := range spanned.Spans(offset, offset, textline.MetricAffecting) {
			if _, ok := s.Style.(textline.Replacement); ok && s.Start < offset && s.End > offset {
				offset = s.End
			}
		}
	}
	return offset
}

// offsetBefore steps one character backward in text, skipping over
// replacement objects.
func offsetBefore(text []rune, spanned textline.Spanned, offset int) int {
	if offset <= 0 {
		return 0
	}
	offset--
	if spanned != nil {
		for _, s := range spanned.Spans(offset, offset, textline.MetricAffecting) {
			if _, ok := s.Style.(textline.Replacement); ok && s.Start < offset && s.End > offset {
				offset = s.Start
			}
		}
	}
	return offset
}

func leftOrRight(toLeft bool) string {
	if toLeft {
		return "left"
	}
	return "right"
}
