package layout

import (
	"fmt"

	"github.com/npillmayer/textline"
)

// Params describes a line of text to lay out.
type Params struct {
	Paint      *textline.Paint      // base paint of the line
	Shaper     textline.Shaper      // measures text runs
	Text       []rune               // source text
	Spans      textline.Spanned     // style spans over Text, may be nil
	Start      int                  // start of the line within Text
	Limit      int                  // end of the line within Text (exclusive)
	Dir        textline.Direction   // paragraph direction
	Directions *textline.Directions // run table in visual order
	HasTabs    bool                 // line may contain tab characters
	TabStops   *textline.TabStops   // may be nil for default tab stops
}

// Line is the layout engine for one line of text. A Line is loaded with
// Set and is then ready for drawing, measuring and caret movement.
//
// A Line is not safe for concurrent use. Its buffers are re-used between
// calls; every entry point overwrites the parts it reads.
type Line struct {
	paint   *textline.Paint
	shaper  textline.Shaper
	text    []rune
	spanned textline.Spanned
	start   int
	length  int
	dir     textline.Direction
	dirs    *textline.Directions
	hasTabs bool
	tabs    *textline.TabStops

	chars      []rune  // line-relative characters, with replacements substituted
	charsBuf   []rune  // backing store for chars
	charsValid bool    // chars is a decoded copy
	addedWidth float64 // extra width per stretchable space, from Justify

	workPaint        textline.Paint
	activePaint      textline.Paint
	metricSpans      spanSet
	charSpans        spanSet
	replacementSpans spanSet
	decoration       decorationInfo
	decorations      []decorationInfo
	segments         []segment
	prefixBuf        []float64
}

// Characters used to encode replacement spans in the decoded buffer.
const (
	objectReplacementChar = '\ufffc'
	zeroWidthNoBreakSpace = '\ufeff'
)

// Set loads a line. It panics if the run table is missing or empty, if the
// paragraph direction is not one of LeftToRight or RightToLeft, or if the
// line bounds are not within the text.
func (l *Line) Set(params Params) {
	if params.Directions == nil {
		panic("layout: run table of line must not be nil")
	}
	if params.Directions.Len() == 0 {
		panic("layout: run table of line must not be empty")
	}
	if !params.Dir.Valid() {
		panic(fmt.Sprintf("layout: illegal paragraph direction %d", params.Dir))
	}
	if params.Start < 0 || params.Limit < params.Start || params.Limit > len(params.Text) {
		panic(fmt.Sprintf("layout: line [%d, %d) out of text bounds [0, %d)",
			params.Start, params.Limit, len(params.Text)))
	}
	if params.Paint == nil || params.Shaper == nil {
		panic("layout: line needs a paint and a shaper")
	}
	l.paint = params.Paint
	l.shaper = params.Shaper
	l.text = params.Text
	l.start = params.Start
	l.length = params.Limit - params.Start
	l.dir = params.Dir
	l.dirs = params.Directions
	l.hasTabs = params.HasTabs
	l.tabs = params.TabStops
	l.spanned = params.Spans

	hasReplacement := false
	if l.spanned != nil {
		l.replacementSpans.init(l.spanned, params.Start, params.Limit, textline.MetricAffecting, isReplacement)
		hasReplacement = l.replacementSpans.len() > 0
	}
	l.charsValid = hasReplacement || l.hasTabs || l.dirs != textline.AllLeftToRight
	if !l.charsValid {
		l.chars = l.text[params.Start:params.Limit]
	} else {
		if cap(l.charsBuf) < l.length {
			l.charsBuf = make([]rune, l.length)
		}
		l.chars = l.charsBuf[:l.length]
		copy(l.chars, l.text[params.Start:params.Limit])
		if hasReplacement {
			// The first character of a replacement becomes U+FFFC, the others
			// U+FEFF. Caret movement skips over the latter.
			for i, inext := params.Start, 0; i < params.Limit; i = inext {
				inext = l.replacementSpans.nextTransition(i, params.Limit)
				if l.replacementSpans.hasSpansIntersecting(i, inext) {
					l.chars[i-params.Start] = objectReplacementChar
					for j := i - params.Start + 1; j < inext-params.Start; j++ {
						l.chars[j] = zeroWidthNoBreakSpace
					}
				}
			}
		}
	}
	l.addedWidth = 0
	T().Debugf("layout: line [%d, %d) dir=%v runs=%v", params.Start, params.Limit, l.dir, l.dirs)
}

// reset drops all references to client data.
func (l *Line) reset() {
	l.paint = nil
	l.shaper = nil
	l.text = nil
	l.spanned = nil
	l.dirs = nil
	l.tabs = nil
	l.chars = nil
	l.metricSpans.recycle()
	l.charSpans.recycle()
	l.replacementSpans.recycle()
	l.decorations = l.decorations[:0]
	l.segments = l.segments[:0]
}

// Len returns the number of characters of the line.
func (l *Line) Len() int {
	return l.length
}

// Direction returns the paragraph direction of the line.
func (l *Line) Direction() textline.Direction {
	return l.dir
}

// AddedWidth returns the extra width per stretchable space set by Justify.
func (l *Line) AddedWidth() float64 {
	return l.addedWidth
}

// Chars returns the line-relative characters, with replacement spans
// encoded as U+FFFC followed by U+FEFF. Clients must not modify them.
func (l *Line) Chars() []rune {
	return l.chars
}

// NextTab returns the next tab position after h, an unsigned distance from
// the leading margin.
func (l *Line) NextTab(h float64) float64 {
	return l.tabs.NextTab(h)
}

// isUniform is true if the line may be handled as a single run without
// walking the run table.
func (l *Line) isUniform() bool {
	return !l.hasTabs && l.dirs.IsUniform(l.dir, l.length)
}

func isReplacement(s textline.Style) bool {
	_, ok := s.(textline.Replacement)
	return ok
}
