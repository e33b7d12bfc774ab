package layout

import "github.com/npillmayer/textline"

// Draw renders the line onto c. x is the leading margin: the left edge for
// left-to-right paragraphs, the right edge for right-to-left ones. top and
// bottom delimit the line vertically, y is the baseline.
//
// Runs are drawn in visual order. Within a run, every styled piece paints
// its background, then its decorations, then its text.
func (l *Line) Draw(c textline.Canvas, x, top, y, bottom float64) {
	if c == nil {
		return
	}
	d := &drawing{canvas: c, top: top, y: y, bottom: bottom}
	if l.isUniform() {
		l.drawRun(d, 0, l.length, l.dir.IsRTL(), x, false)
		return
	}
	h := 0.0
	for _, seg := range l.walk() {
		h += l.drawRun(d, seg.start, seg.end, seg.rtl, x+h, seg.needWidth)
		if seg.tab {
			h = l.tabAfter(h)
		}
	}
}

// drawRun draws a unidirectional run and returns its width, signed by the
// paragraph direction. Runs against the paragraph direction are measured
// first, then drawn from their far edge.
func (l *Line) drawRun(d *drawing, start, limit int, rtl bool, x float64, needWidth bool) float64 {
	if l.dir.IsRTL() != rtl {
		w := -l.measureRun(start, limit, limit, rtl, nil)
		l.handleRun(start, limit, limit, rtl, d, x+w, nil, false)
		return w
	}
	return l.handleRun(start, limit, limit, rtl, d, x, nil, needWidth)
}
