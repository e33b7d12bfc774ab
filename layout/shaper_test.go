package layout

import (
	"unicode"

	"github.com/npillmayer/textline"
)

// cellShaper gives every character an advance of half the text size.
// Combining marks and U+FEFF have no advance and are skipped by the cursor.
type cellShaper struct{}

var _ textline.Shaper = cellShaper{}

func isMark(r rune) bool {
	return r == '\ufeff' || unicode.Is(unicode.Mn, r)
}

func (cellShaper) RunAdvance(p *textline.Paint, text []rune, start, end, ctxStart, ctxEnd int,
	rtl bool, offset int) float64 {
	//
	w := 0.0
	for _, r := range text[start:offset] {
		if !isMark(r) {
			w += p.Size / 2
		}
	}
	return w
}

func (cellShaper) RunCursor(p *textline.Paint, text []rune, ctxStart, ctxEnd int, rtl bool,
	offset int, after bool) int {
	//
	if after {
		offset++
		for offset < ctxEnd && isMark(text[offset]) {
			offset++
		}
		return min(offset, ctxEnd)
	}
	offset--
	for offset > ctxStart && isMark(text[offset]) {
		offset--
	}
	return max(offset, ctxStart)
}

func (cellShaper) FontMetrics(p *textline.Paint) textline.FontMetrics {
	return textline.FontMetrics{
		Top:     -p.Size,
		Ascent:  -0.8 * p.Size,
		Descent: 0.2 * p.Size,
		Bottom:  0.3 * p.Size,
	}
}

func (cellShaper) DecorationMetrics(p *textline.Paint) textline.DecorationMetrics {
	return textline.DefaultDecorationMetrics(p.Size)
}

// countingShaper is a cellShaper which measures all offsets of a run at
// once and counts the calls it receives.
type countingShaper struct {
	cellShaper
	advanceCalls int
	prefixCalls  int
}

var _ textline.RunAdvancer = (*countingShaper)(nil)

func (cs *countingShaper) RunAdvance(p *textline.Paint, text []rune, start, end, ctxStart, ctxEnd int,
	rtl bool, offset int) float64 {
	//
	cs.advanceCalls++
	return cs.cellShaper.RunAdvance(p, text, start, end, ctxStart, ctxEnd, rtl, offset)
}

func (cs *countingShaper) RunAdvances(p *textline.Paint, text []rune, start, end, ctxStart, ctxEnd int,
	rtl bool, advances []float64) {
	//
	cs.prefixCalls++
	advances[0] = 0
	for i := start; i < end; i++ {
		advances[i-start+1] = advances[i-start]
		if !isMark(text[i]) {
			advances[i-start+1] += p.Size / 2
		}
	}
}
