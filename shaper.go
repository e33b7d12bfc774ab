package textline

import "image/color"

// Shaper measures runs of text. Implementations are provided by clients;
// sub-packages shaping (HarfBuzz shaping with OpenType fonts) and uax11
// (fixed-pitch character cells) contain ready-made shapers.
//
// Text slices are given with a context: text[ctxStart:ctxEnd] surrounds the
// measured part and may influence shaping at its edges. All offsets are
// indices into text.
type Shaper interface {
	// RunAdvance returns the advance of text[start:offset], shaped as part of
	// text[start:end] in direction rtl. The advance is never negative.
	// Word spacing of p is not included.
	RunAdvance(p *Paint, text []rune, start, end, ctxStart, ctxEnd int, rtl bool, offset int) float64
	// RunCursor returns the next valid cursor position after (after=true) or
	// before offset within [ctxStart, ctxEnd], skipping over positions inside
	// of grapheme clusters and ligatures.
	RunCursor(p *Paint, text []rune, ctxStart, ctxEnd int, rtl bool, offset int, after bool) int
	// FontMetrics returns the font metrics for p.
	FontMetrics(p *Paint) FontMetrics
	// DecorationMetrics returns underline and strike-through parameters for p.
	DecorationMetrics(p *Paint) DecorationMetrics
}

// RunAdvancer may be implemented by shapers which are able to measure every
// offset of a run at once. RunAdvances sets advances[i] to what RunAdvance
// would return for offset start+i, for i in [0, end-start]. advances must
// have room for end-start+1 values.
type RunAdvancer interface {
	RunAdvances(p *Paint, text []rune, start, end, ctxStart, ctxEnd int, rtl bool, advances []float64)
}

// Canvas is a drawing surface. Coordinates are in pixels, y grows downwards.
type Canvas interface {
	// DrawRect fills the rectangle [left, right) x [top, bottom).
	DrawRect(left, top, right, bottom float64, col color.RGBA)
	// DrawTextRun draws text[start:end] with its left edge at x and its
	// baseline at y. text[ctxStart:ctxEnd] is the shaping context.
	DrawTextRun(text []rune, start, end, ctxStart, ctxEnd int, x, y float64, rtl bool, p *Paint)
}

// IsStretchableSpace reports whether r is widened by word spacing and by
// justification. Only U+0020 is.
func IsStretchableSpace(r rune) bool {
	return r == ' '
}

// CountStretchableSpaces counts the stretchable spaces in text[start:end].
func CountStretchableSpaces(text []rune, start, end int) int {
	n := 0
	for _, r := range text[start:end] {
		if IsStretchableSpace(r) {
			n++
		}
	}
	return n
}

// IsLineEndSpace reports whether r is trimmed from the end of a line before
// justification: space, tab, Ogham space mark, the general punctuation spaces
// except figure space, medium mathematical space and ideographic space.
func IsLineEndSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == 0x1680 ||
		(0x2000 <= r && r <= 0x200a && r != 0x2007) ||
		r == 0x205f || r == 0x3000
}
