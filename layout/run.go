package layout

import (
	"fmt"
	"image/color"
	"math"

	"github.com/npillmayer/textline"
)

// drawing is the drawing target of a run: a canvas and the vertical
// position of the line. A nil drawing means measuring only.
type drawing struct {
	canvas textline.Canvas
	top    float64
	y      float64 // baseline
	bottom float64
}

// decorationInfo holds the decorations of a piece of text, which are drawn
// separately from the text itself.
type decorationInfo struct {
	strikeThru         bool
	underline          bool
	underlineColor     color.RGBA
	underlineThickness float64
	start, end         int
}

func (info *decorationInfo) hasDecoration() bool {
	return info.strikeThru || info.underline || info.underlineColor.A != 0
}

// extract moves the decoration attributes of p into info and clears them
// in p, so that paints differing only in decorations compare equal.
func (info *decorationInfo) extract(p *textline.Paint) {
	info.strikeThru = p.StrikeThru
	info.underline = p.Underline
	info.underlineColor = p.UnderlineColor
	info.underlineThickness = p.UnderlineThickness
	p.StrikeThru = false
	p.Underline = false
	p.UnderlineColor = color.RGBA{}
	p.UnderlineThickness = 0
}

// handleRun measures and/or draws a unidirectional run without tabs, which
// may carry styles. It returns the width of [start, measureLimit), signed by
// the run direction. The width is valid only if needWidth is set.
//
// x is the edge of the run closest to the leading margin.
func (l *Line) handleRun(start, measureLimit, limit int, rtl bool, d *drawing, x float64,
	fm *textline.FontMetrics, needWidth bool) float64 {
	//
	if measureLimit < start || measureLimit > limit {
		panic(fmt.Sprintf("layout: measure limit %d is out of bounds [%d, %d]",
			measureLimit, start, limit))
	}
	if start == measureLimit { // empty run: metrics of the base paint only
		l.workPaint = *l.paint
		if fm != nil {
			l.expandMetrics(fm, &l.workPaint)
		}
		return 0
	}
	needsSpans := false
	if l.spanned != nil {
		l.metricSpans.init(l.spanned, l.start+start, l.start+limit, textline.MetricAffecting, nil)
		l.charSpans.init(l.spanned, l.start+start, l.start+limit, textline.CharacterStyle, nil)
		needsSpans = l.metricSpans.len() != 0 || l.charSpans.len() != 0
	}
	if !needsSpans {
		wp := &l.workPaint
		*wp = *l.paint
		wp.HyphenEdit = l.adjustHyphenEdit(start, limit, wp.HyphenEdit)
		return l.handleText(wp, start, limit, start, limit, rtl, d, x, fm, needWidth, measureLimit, nil)
	}
	// Shaping needs the context up to metric boundaries, drawing needs
	// the character style boundaries. We iterate over metric pieces first,
	// then over character style pieces within each.
	originalX := x
	for i, inext := start, 0; i < measureLimit; i = inext {
		wp := &l.workPaint
		*wp = *l.paint
		inext = l.metricSpans.nextTransition(l.start+i, l.start+limit) - l.start
		mlimit := min(inext, measureLimit)
		var replacement textline.Replacement
		for _, s := range l.metricSpans.spans {
			if s.Start >= l.start+mlimit || s.End <= l.start+i {
				continue
			}
			if r, ok := s.Style.(textline.Replacement); ok {
				replacement = r
			} else {
				s.Style.UpdatePaint(wp)
			}
		}
		if replacement != nil {
			x += l.handleReplacement(replacement, wp, i, mlimit, rtl, d, x, fm,
				needWidth || mlimit < measureLimit)
			continue
		}
		active := &l.activePaint
		*active = *l.paint
		activeStart, activeEnd := i, mlimit
		l.decorations = l.decorations[:0]
		for j, jnext := i, 0; j < mlimit; j = jnext {
			jnext = l.charSpans.nextTransition(l.start+j, l.start+inext) - l.start
			offset := min(jnext, mlimit)
			*wp = *l.paint
			l.applyMetricStyles(wp, j, offset)
			for _, s := range l.charSpans.spans {
				if s.Start >= l.start+offset || s.End <= l.start+j {
					continue
				}
				s.Style.UpdatePaint(wp)
			}
			l.decoration.extract(wp)
			if j == i {
				// first piece: keep it until we know whether the next one
				// can be merged with it
				*active = *wp
			} else if !wp.EqualAttributes(active) {
				active.HyphenEdit = l.adjustHyphenEdit(activeStart, activeEnd, l.paint.HyphenEdit)
				x += l.handleText(active, activeStart, activeEnd, i, inext, rtl, d, x, fm,
					needWidth || activeEnd < measureLimit, min(activeEnd, mlimit), l.decorations)
				activeStart = j
				*active = *wp
				l.decorations = l.decorations[:0]
			}
			activeEnd = jnext
			if l.decoration.hasDecoration() {
				info := l.decoration
				info.start, info.end = j, jnext
				l.decorations = append(l.decorations, info)
			}
		}
		active.HyphenEdit = l.adjustHyphenEdit(activeStart, activeEnd, l.paint.HyphenEdit)
		x += l.handleText(active, activeStart, activeEnd, i, inext, rtl, d, x, fm,
			needWidth || activeEnd < measureLimit, min(activeEnd, mlimit), l.decorations)
	}
	return x - originalX
}

// applyMetricStyles applies the metric-affecting styles covering
// [start, end) to p.
func (l *Line) applyMetricStyles(p *textline.Paint, start, end int) {
	for _, s := range l.metricSpans.spans {
		if s.Start >= l.start+end || s.End <= l.start+start {
			continue
		}
		if _, ok := s.Style.(textline.Replacement); !ok {
			s.Style.UpdatePaint(p)
		}
	}
}

// handleText measures and/or draws chars[start:end], which must not contain
// a tab. offset limits the measured width. Returns the width signed by the
// run direction; valid only if needWidth is set.
func (l *Line) handleText(wp *textline.Paint, start, end, ctxStart, ctxEnd int, rtl bool,
	d *drawing, x float64, fm *textline.FontMetrics, needWidth bool, offset int,
	decorations []decorationInfo) float64 {
	//
	wp.WordSpacing = l.addedWidth
	if fm != nil { // metrics even for empty pieces
		l.expandMetrics(fm, wp)
	}
	if end == start {
		return 0
	}
	totalWidth := 0.0
	if needWidth || (d != nil && (wp.HasBackground() || len(decorations) != 0 || rtl)) {
		totalWidth = l.runAdvance(wp, start, end, ctxStart, ctxEnd, rtl, offset)
	}
	if d != nil {
		leftX, rightX := x, x+totalWidth
		if rtl {
			leftX, rightX = x-totalWidth, x
		}
		if wp.HasBackground() {
			d.canvas.DrawRect(leftX, d.top, rightX, d.bottom, wp.BgColor)
		}
		if len(decorations) != 0 {
			dm := l.shaper.DecorationMetrics(wp)
			for _, info := range decorations {
				decStart := max(info.start, start)
				decEnd := min(info.end, offset)
				startAdvance := l.runAdvance(wp, start, end, ctxStart, ctxEnd, rtl, decStart)
				endAdvance := l.runAdvance(wp, start, end, ctxStart, ctxEnd, rtl, decEnd)
				var xleft, xright float64
				if rtl {
					xleft, xright = rightX-endAdvance, rightX-startAdvance
				} else {
					xleft, xright = leftX+startAdvance, leftX+endAdvance
				}
				// A custom underline and the default underline may both be
				// requested. The custom one is drawn first.
				if info.underlineColor.A != 0 {
					drawStroke(wp, d, info.underlineColor, dm.UnderlinePosition,
						info.underlineThickness, xleft, xright)
				}
				if info.underline {
					drawStroke(wp, d, wp.Color, dm.UnderlinePosition,
						math.Max(dm.UnderlineThickness, 1), xleft, xright)
				}
				if info.strikeThru {
					drawStroke(wp, d, wp.Color, dm.StrikeThruPosition,
						math.Max(dm.StrikeThruThickness, 1), xleft, xright)
				}
			}
		}
		d.canvas.DrawTextRun(l.chars, start, end, ctxStart, ctxEnd, leftX, d.y+wp.BaselineShift, rtl, wp)
	}
	if rtl {
		return -totalWidth
	}
	return totalWidth
}

// handleReplacement measures and/or draws a replacement object covering
// [start, limit). Returns its width signed by the run direction.
func (l *Line) handleReplacement(r textline.Replacement, wp *textline.Paint, start, limit int,
	rtl bool, d *drawing, x float64, fm *textline.FontMetrics, needWidth bool) float64 {
	//
	w := 0.0
	textStart, textLimit := l.start+start, l.start+limit
	if needWidth || (d != nil && rtl) {
		var previous textline.FontMetrics
		if fm != nil {
			previous = *fm
		}
		w = r.Size(wp, l.text, textStart, textLimit, fm)
		if fm != nil {
			fm.Union(previous)
		}
	}
	if d != nil {
		if rtl {
			x -= w
		}
		r.Draw(d.canvas, l.text, textStart, textLimit, x, d.top, d.y, d.bottom, wp)
	}
	if rtl {
		return -w
	}
	return w
}

// runAdvance asks the shaper for the advance of chars[start:offset] and adds
// word spacing for every stretchable space.
func (l *Line) runAdvance(wp *textline.Paint, start, end, ctxStart, ctxEnd int, rtl bool, offset int) float64 {
	adv := l.shaper.RunAdvance(wp, l.chars, start, end, ctxStart, ctxEnd, rtl, offset)
	if wp.WordSpacing != 0 && offset > start {
		adv += wp.WordSpacing * float64(textline.CountStretchableSpaces(l.chars, start, offset))
	}
	return adv
}

func (l *Line) expandMetrics(fm *textline.FontMetrics, wp *textline.Paint) {
	fm.Union(l.shaper.FontMetrics(wp))
}

// adjustHyphenEdit drops start-of-line hyphen edits for pieces not starting
// the line and end-of-line hyphen edits for pieces not ending it.
func (l *Line) adjustHyphenEdit(start, limit int, edit textline.HyphenEdit) textline.HyphenEdit {
	if start > 0 {
		edit &^= textline.HyphenMaskStartOfLine
	}
	if limit < l.length {
		edit &^= textline.HyphenMaskEndOfLine
	}
	return edit
}

func drawStroke(wp *textline.Paint, d *drawing, col color.RGBA, position, thickness,
	xleft, xright float64) {
	//
	top := d.y + wp.BaselineShift + position
	d.canvas.DrawRect(xleft, top, xright, top+thickness, col)
}
