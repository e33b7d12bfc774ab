package layout

import (
	"fmt"
	"slices"

	"github.com/npillmayer/textline"
)

// Metrics returns the signed width of the line and, if fm is non-nil, widens
// fm by the font metrics of every piece of the line.
func (l *Line) Metrics(fm *textline.FontMetrics) float64 {
	return l.Measure(l.length, false, fm)
}

// Measure returns the signed distance from the leading margin to an edge of
// a character. With trailing set, the trailing edge of the character before
// offset is measured, otherwise the leading edge of the character at offset.
// offset is line-relative, in [0, Len()].
//
// If fm is non-nil, it is widened by the font metrics of the text measured.
func (l *Line) Measure(offset int, trailing bool, fm *textline.FontMetrics) float64 {
	target := offset
	if trailing {
		target--
	}
	if target < 0 {
		return 0
	}
	if l.isUniform() {
		return l.measureRun(0, offset, l.length, l.dir.IsRTL(), fm)
	}
	h := 0.0
	for _, seg := range l.walk() {
		inSegment := target >= seg.start && target < seg.end
		advance := l.dir.IsRTL() == seg.rtl
		if inSegment && advance {
			return h + l.measureRun(seg.start, offset, seg.end, seg.rtl, fm)
		}
		w := l.measureRun(seg.start, seg.end, seg.end, seg.rtl, fm)
		if advance {
			h += w
		} else {
			h -= w
		}
		if inSegment {
			return h + l.measureRun(seg.start, offset, seg.end, seg.rtl, nil)
		}
		if seg.tab {
			if offset == seg.end {
				return h
			}
			h = l.tabAfter(h)
			if target == seg.end {
				return h
			}
		}
	}
	return h
}

// MeasureAllOffsets measures every offset in [0, Len()] in a single walk over
// the line. trailing[i] selects the edge measured for offset i, as in
// Measure. If fm is non-nil, it is widened as in Metrics.
//
// Runs without styles are measured with one shaper call for all of their
// offsets if the shaper implements textline.RunAdvancer.
func (l *Line) MeasureAllOffsets(trailing []bool, fm *textline.FontMetrics) []float64 {
	if len(trailing) < l.length+1 {
		panic(fmt.Sprintf("layout: need %d trailing flags, have %d", l.length+1, len(trailing)))
	}
	measurement := make([]float64, l.length+1)
	target := make([]int, l.length+1)
	for offset := range target {
		target[offset] = offset
		if trailing[offset] {
			target[offset]--
		}
	}
	if l.isUniform() {
		rtl := l.dir.IsRTL()
		if l.prefixAdvances(0, l.length, rtl, measurement) {
			if fm != nil {
				l.measureRun(0, l.length, l.length, rtl, fm)
			}
			return measurement
		}
		for offset := 0; offset <= l.length; offset++ {
			measurement[offset] = l.measureRun(0, offset, l.length, rtl, fm)
		}
		return measurement
	}
	h := 0.0
	for _, seg := range l.walk() {
		oldh := h
		advance := l.dir.IsRTL() == seg.rtl
		w := l.measureRun(seg.start, seg.end, seg.end, seg.rtl, fm)
		if advance {
			h += w
		} else {
			h -= w
		}
		baseh, segfm := h, (*textline.FontMetrics)(nil)
		if advance {
			baseh, segfm = oldh, fm
		}
		prefix := l.prefixBuf[:0]
		if seg.end > seg.start {
			prefix = slices.Grow(prefix, seg.end-seg.start+1)[:seg.end-seg.start+1]
			if !l.prefixAdvances(seg.start, seg.end, seg.rtl, prefix) {
				prefix = prefix[:0]
			}
			l.prefixBuf = prefix
		}
		for offset := seg.start; offset <= seg.end && offset <= l.length; offset++ {
			if target[offset] >= seg.start && target[offset] < seg.end {
				if len(prefix) != 0 {
					measurement[offset] = baseh + prefix[offset-seg.start]
					continue
				}
				measurement[offset] = baseh + l.measureRun(seg.start, offset, seg.end, seg.rtl, segfm)
			}
		}
		if seg.tab {
			if target[seg.end] == seg.end {
				measurement[seg.end] = h
			}
			h = l.tabAfter(h)
			if target[seg.end+1] == seg.end {
				measurement[seg.end+1] = h
			}
		}
	}
	if target[l.length] == l.length {
		measurement[l.length] = h
	}
	return measurement
}

// measureRun returns the width of [start, offset) of a unidirectional run
// [start, limit), signed by the run direction.
func (l *Line) measureRun(start, offset, limit int, rtl bool, fm *textline.FontMetrics) float64 {
	return l.handleRun(start, offset, limit, rtl, nil, 0, fm, true)
}

// prefixAdvances sets adv[i] to the width of [start, start+i) of a run
// [start, limit), signed by the run direction, with a single call to the
// shaper. It reports false if the shaper cannot measure all offsets at once
// or if styles apply to the run, in which case adv is left untouched.
func (l *Line) prefixAdvances(start, limit int, rtl bool, adv []float64) bool {
	ra, ok := l.shaper.(textline.RunAdvancer)
	if !ok || l.styled(start, limit) {
		return false
	}
	wp := &l.workPaint
	*wp = *l.paint
	wp.HyphenEdit = l.adjustHyphenEdit(start, limit, wp.HyphenEdit)
	wp.WordSpacing = l.addedWidth
	ra.RunAdvances(wp, l.chars, start, limit, start, limit, rtl, adv[:limit-start+1])
	spaces := 0
	for i := 0; i <= limit-start; i++ {
		if i > 0 && textline.IsStretchableSpace(l.chars[start+i-1]) {
			spaces++
		}
		a := adv[i] + wp.WordSpacing*float64(spaces)
		if rtl {
			a = -a
		}
		adv[i] = a
	}
	T().Debugf("layout: measured offsets of [%d, %d) in a single pass", start, limit)
	return true
}

// styled is true if any style span covers a character of [start, limit).
func (l *Line) styled(start, limit int) bool {
	if l.spanned == nil {
		return false
	}
	l.metricSpans.init(l.spanned, l.start+start, l.start+limit, textline.MetricAffecting, nil)
	l.charSpans.init(l.spanned, l.start+start, l.start+limit, textline.CharacterStyle, nil)
	return l.metricSpans.len() != 0 || l.charSpans.len() != 0
}
