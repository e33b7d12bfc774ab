package textline

import (
	"fmt"
	"math"
)

// FontMetrics describes the vertical extent of text, relative to the
// baseline. Values above the baseline are negative: Top and Ascent are
// usually negative, Descent and Bottom positive.
type FontMetrics struct {
	Top     float64 // maximum extent above the baseline of any glyph
	Ascent  float64 // recommended distance above the baseline
	Descent float64 // recommended distance below the baseline
	Bottom  float64 // maximum extent below the baseline of any glyph
	Leading float64 // recommended additional space between lines
}

// Union widens fm to include o: top and ascent take the minimum, descent,
// bottom and leading the maximum. The union never narrows fm.
func (fm *FontMetrics) Union(o FontMetrics) {
	fm.Top = math.Min(fm.Top, o.Top)
	fm.Ascent = math.Min(fm.Ascent, o.Ascent)
	fm.Descent = math.Max(fm.Descent, o.Descent)
	fm.Bottom = math.Max(fm.Bottom, o.Bottom)
	fm.Leading = math.Max(fm.Leading, o.Leading)
}

// Height returns the recommended line height, descent - ascent + leading.
func (fm FontMetrics) Height() float64 {
	return fm.Descent - fm.Ascent + fm.Leading
}

func (fm FontMetrics) String() string {
	return fmt.Sprintf("{top=%.2f asc=%.2f desc=%.2f bot=%.2f lead=%.2f}",
		fm.Top, fm.Ascent, fm.Descent, fm.Bottom, fm.Leading)
}

// DecorationMetrics gives the position of decoration strokes relative to the
// baseline (positive is below), and their thickness.
type DecorationMetrics struct {
	UnderlinePosition   float64
	UnderlineThickness  float64
	StrikeThruPosition  float64
	StrikeThruThickness float64
}

// DefaultDecorationMetrics derives decoration metrics from the text size,
// for shapers without font-provided values.
func DefaultDecorationMetrics(size float64) DecorationMetrics {
	return DecorationMetrics{
		UnderlinePosition:   size / 9,
		UnderlineThickness:  size / 18,
		StrikeThruPosition:  -size * 0.3,
		StrikeThruThickness: size / 18,
	}
}
