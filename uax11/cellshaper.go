package uax11

import (
	"github.com/npillmayer/textline"
	"github.com/npillmayer/textline/grapheme"
)

// CellShaper is a textline.Shaper for fixed pitch output. Every grapheme
// occupies 0, 1 or 2 cells, where a cell is half the text size wide.
// Widths of ambiguous characters are resolved by the shaper's context.
//
// A CellShaper is not safe for concurrent use.
type CellShaper struct {
	ctx     *Context
	breaker *grapheme.Breaker
}

var (
	_ textline.Shaper      = (*CellShaper)(nil)
	_ textline.RunAdvancer = (*CellShaper)(nil)
)

// NewCellShaper creates a shaper for context ctx. If ctx is nil,
// LatinContext is used.
func NewCellShaper(ctx *Context) *CellShaper {
	if ctx == nil {
		ctx = LatinContext
	}
	return &CellShaper{ctx: ctx, breaker: grapheme.NewBreaker()}
}

// Cells returns the number of cells of text[start:end].
func (cs *CellShaper) Cells(text []rune, start, end int) int {
	bounds := cs.breaker.Boundaries(text, start, end)
	cells := 0
	for i := 1; i < len(bounds); i++ {
		cells += clusterWidth(text[bounds[i-1]:bounds[i]], cs.ctx)
	}
	return cells
}

// RunAdvance implements textline.Shaper. Offsets inside of a grapheme
// cluster count the whole cluster if they are past its first rune.
func (cs *CellShaper) RunAdvance(p *textline.Paint, text []rune, start, end, ctxStart, ctxEnd int,
	rtl bool, offset int) float64 {
	if offset <= start {
		return 0
	}
	if offset > end {
		offset = end
	}
	bounds := cs.breaker.Boundaries(text, start, end)
	cells := 0
	for i := 1; i < len(bounds); i++ {
		if bounds[i-1] >= offset {
			break
		}
		cells += clusterWidth(text[bounds[i-1]:bounds[i]], cs.ctx)
	}
	return float64(cells) * cellSize(p)
}

// RunAdvances implements textline.RunAdvancer.
func (cs *CellShaper) RunAdvances(p *textline.Paint, text []rune, start, end, ctxStart, ctxEnd int,
	rtl bool, advances []float64) {
	//
	advances[0] = 0
	bounds := cs.breaker.Boundaries(text, start, end)
	cells := 0
	for i := 1; i < len(bounds); i++ {
		cells += clusterWidth(text[bounds[i-1]:bounds[i]], cs.ctx)
		for pos := bounds[i-1] + 1; pos <= bounds[i]; pos++ {
			advances[pos-start] = float64(cells) * cellSize(p)
		}
	}
}

// RunCursor implements textline.Shaper.
func (cs *CellShaper) RunCursor(p *textline.Paint, text []rune, ctxStart, ctxEnd int,
	rtl bool, offset int, after bool) int {
	if after {
		return cs.breaker.After(text, ctxStart, ctxEnd, offset)
	}
	return cs.breaker.Before(text, ctxStart, ctxEnd, offset)
}

// FontMetrics implements textline.Shaper. A cell line is as high as the
// text size, with a fifth of it below the baseline.
func (cs *CellShaper) FontMetrics(p *textline.Paint) textline.FontMetrics {
	size := paintSize(p)
	return textline.FontMetrics{
		Top:     -size * 0.8,
		Ascent:  -size * 0.8,
		Descent: size * 0.2,
		Bottom:  size * 0.2,
	}
}

// DecorationMetrics implements textline.Shaper.
func (cs *CellShaper) DecorationMetrics(p *textline.Paint) textline.DecorationMetrics {
	return textline.DefaultDecorationMetrics(paintSize(p))
}

func paintSize(p *textline.Paint) float64 {
	if p == nil {
		return textline.DefaultPaint().Size
	}
	return p.Size
}

func cellSize(p *textline.Paint) float64 {
	return paintSize(p) / 2
}
