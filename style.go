package textline

import (
	"fmt"
	"image/color"
	"sort"
)

// Category distinguishes styles which change the shape of text from styles
// which change only its appearance.
type Category int8

// Style categories
const (
	MetricAffecting Category = iota // typeface, size, replacement objects
	CharacterStyle                  // color, background, decorations
)

func (c Category) String() string {
	switch c {
	case MetricAffecting:
		return "metric-affecting"
	case CharacterStyle:
		return "character-style"
	}
	return fmt.Sprintf("Category(%d)", int8(c))
}

// Style modifies a paint. Metric-affecting styles are applied before
// character styles.
type Style interface {
	Category() Category
	UpdatePaint(p *Paint)
}

// Replacement is a metric-affecting style which replaces the text it covers
// by an object of its own, e.g. an inline image. The text inside a
// replacement span is neither shaped nor drawn, and carets do not stop
// inside of it.
type Replacement interface {
	Style
	// Size returns the width of the replacement for text[start:end]. It may
	// update fm to reflect the extent of the replacement, if fm is non-nil.
	Size(p *Paint, text []rune, start, end int, fm *FontMetrics) float64
	// Draw draws the replacement with its left edge at x.
	Draw(c Canvas, text []rune, start, end int, x, top, y, bottom float64, p *Paint)
}

// Span attaches a style to the half-open interval [Start, End) of a text.
type Span struct {
	Start, End int
	Style      Style
}

// Empty is true for spans of zero length.
func (s Span) Empty() bool {
	return s.Start >= s.End
}

// Intersects is true if s covers at least one character of [start, end).
func (s Span) Intersects(start, end int) bool {
	return s.Start < end && s.End > start
}

// Spanned is a source of style spans for a text.
//
// Spans returns the spans of category cat which intersect [start, end), in
// order of insertion. For an empty query window, spans containing start are
// returned.
type Spanned interface {
	Spans(start, end int, cat Category) []Span
}

// SpanList is a simple implementation of Spanned.
type SpanList struct {
	spans []Span
}

// NewSpanList creates a span list from a set of spans.
func NewSpanList(spans ...Span) *SpanList {
	sl := &SpanList{}
	for _, s := range spans {
		sl.Add(s.Start, s.End, s.Style)
	}
	return sl
}

// Add attaches style to [start, end). Spans with end < start are rejected by
// a panic.
func (sl *SpanList) Add(start, end int, style Style) *SpanList {
	if end < start || start < 0 {
		panic(fmt.Sprintf("illegal span [%d, %d)", start, end))
	}
	sl.spans = append(sl.spans, Span{Start: start, End: end, Style: style})
	return sl
}

// Len returns the number of spans in the list.
func (sl *SpanList) Len() int {
	return len(sl.spans)
}

// Spans is part of interface Spanned.
func (sl *SpanList) Spans(start, end int, cat Category) []Span {
	var result []Span
	for _, s := range sl.spans {
		if s.Style == nil || s.Style.Category() != cat {
			continue
		}
		if start == end {
			if s.Start <= start && s.End >= start {
				result = append(result, s)
			}
		} else if s.Intersects(start, end) {
			result = append(result, s)
		}
	}
	return result
}

// NextTransition returns the first position in (start, limit) where a span
// of category cat starts or ends, or limit if there is none.
func NextTransition(spanned Spanned, start, limit int, cat Category) int {
	for _, s := range spanned.Spans(start, limit, cat) {
		if s.Start > start && s.Start < limit {
			limit = s.Start
		}
		if s.End > start && s.End < limit {
			limit = s.End
		}
	}
	return limit
}

// SortSpans orders spans by start position, keeping the insertion order of
// spans with equal start.
func SortSpans(spans []Span) {
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].Start < spans[j].Start
	})
}

// --- Stock styles ----------------------------------------------------------

// StyleFunc adapts a function to a Style of a given category.
type StyleFunc struct {
	Cat Category
	Fn  func(*Paint)
}

// Category is part of interface Style.
func (sf StyleFunc) Category() Category { return sf.Cat }

// UpdatePaint is part of interface Style.
func (sf StyleFunc) UpdatePaint(p *Paint) { sf.Fn(p) }

// ForegroundColor sets the text color.
type ForegroundColor color.RGBA

// Category is part of interface Style.
func (ForegroundColor) Category() Category { return CharacterStyle }

// UpdatePaint is part of interface Style.
func (c ForegroundColor) UpdatePaint(p *Paint) { p.Color = color.RGBA(c) }

// BackgroundColor sets a background color.
type BackgroundColor color.RGBA

// Category is part of interface Style.
func (BackgroundColor) Category() Category { return CharacterStyle }

// UpdatePaint is part of interface Style.
func (c BackgroundColor) UpdatePaint(p *Paint) { p.BgColor = color.RGBA(c) }

// Underline switches on the default underline, or, if Color is not
// transparent, adds an underline with a custom color.
type Underline struct {
	Color     color.RGBA
	Thickness float64
}

// Category is part of interface Style.
func (Underline) Category() Category { return CharacterStyle }

// UpdatePaint is part of interface Style.
func (u Underline) UpdatePaint(p *Paint) {
	if u.Color.A == 0 {
		p.Underline = true
		return
	}
	p.UnderlineColor = u.Color
	p.UnderlineThickness = u.Thickness
}

// StrikeThrough switches on strike-through.
type StrikeThrough struct{}

// Category is part of interface Style.
func (StrikeThrough) Category() Category { return CharacterStyle }

// UpdatePaint is part of interface Style.
func (StrikeThrough) UpdatePaint(p *Paint) { p.StrikeThru = true }

// TextSize sets the text size in pixels.
type TextSize float64

// Category is part of interface Style.
func (TextSize) Category() Category { return MetricAffecting }

// UpdatePaint is part of interface Style.
func (s TextSize) UpdatePaint(p *Paint) { p.Size = float64(s) }

// RelativeSize scales the text size.
type RelativeSize float64

// Category is part of interface Style.
func (RelativeSize) Category() Category { return MetricAffecting }

// UpdatePaint is part of interface Style.
func (s RelativeSize) UpdatePaint(p *Paint) { p.Size *= float64(s) }

// Typeface selects a typeface by name.
type Typeface string

// Category is part of interface Style.
func (Typeface) Category() Category { return MetricAffecting }

// UpdatePaint is part of interface Style.
func (t Typeface) UpdatePaint(p *Paint) { p.Typeface = string(t) }

// BaselineShift moves text up (negative) or down (positive).
type BaselineShift float64

// Category is part of interface Style.
func (BaselineShift) Category() Category { return MetricAffecting }

// UpdatePaint is part of interface Style.
func (b BaselineShift) UpdatePaint(p *Paint) { p.BaselineShift += float64(b) }

// ReplacementBox is a Replacement of fixed size, drawn as a filled
// rectangle sitting on the baseline.
type ReplacementBox struct {
	Width, Height float64
	Color         color.RGBA
}

// Category is part of interface Style.
func (ReplacementBox) Category() Category { return MetricAffecting }

// UpdatePaint is part of interface Style.
func (ReplacementBox) UpdatePaint(*Paint) {}

// Size is part of interface Replacement. The box extends the ascent and top
// of fm to its height.
func (b ReplacementBox) Size(p *Paint, text []rune, start, end int, fm *FontMetrics) float64 {
	if fm != nil {
		fm.Ascent = -b.Height
		fm.Top = -b.Height
	}
	return b.Width
}

// Draw is part of interface Replacement.
func (b ReplacementBox) Draw(c Canvas, text []rune, start, end int, x, top, y, bottom float64, p *Paint) {
	col := b.Color
	if col.A == 0 {
		col = p.Color
	}
	c.DrawRect(x, y-b.Height, x+b.Width, y, col)
}
