package layout

import (
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textline"
	"github.com/npillmayer/textline/bidi"
	"github.com/npillmayer/textline/canvas"
)

var (
	black  = color.RGBA{A: 0xff}
	red    = color.RGBA{R: 0xff, A: 0xff}
	yellow = color.RGBA{R: 0xff, G: 0xff, A: 0xff}
)

// bidiRuns is "abCD": an LTR run [0,2) followed by an RTL run [2,4).
var bidiRuns = textline.NewDirections(
	textline.Run{Start: 0, Length: 2, Level: 0},
	textline.Run{Start: 2, Length: 2, Level: 1},
)

// rtlBidiRuns is "ABcd" in a right-to-left paragraph: an RTL run [0,2) at
// the right margin, followed to its left by an LTR run [2,4).
var rtlBidiRuns = textline.NewDirections(
	textline.Run{Start: 0, Length: 2, Level: 1},
	textline.Run{Start: 2, Length: 2, Level: 2},
)

func setup(t *testing.T) func() {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	return teardown
}

// newLine loads a whole text as a line, with 10 units per character.
func newLine(text string, dir textline.Direction, dirs *textline.Directions,
	spans textline.Spanned, hasTabs bool) *Line {
	//
	return loadLine(cellShaper{}, text, dir, dirs, spans, hasTabs)
}

func loadLine(shaper textline.Shaper, text string, dir textline.Direction, dirs *textline.Directions,
	spans textline.Spanned, hasTabs bool) *Line {
	//
	p := textline.DefaultPaint()
	p.Size = 20
	runes := []rune(text)
	l := &Line{}
	l.Set(Params{
		Paint:      &p,
		Shaper:     shaper,
		Text:       runes,
		Spans:      spans,
		Start:      0,
		Limit:      len(runes),
		Dir:        dir,
		Directions: dirs,
		HasTabs:    hasTabs,
	})
	return l
}

func ltrLine(text string) *Line {
	return newLine(text, textline.LeftToRight, textline.AllLeftToRight, nil, false)
}

func TestMeasureSimpleLine(t *testing.T) {
	defer setup(t)()
	//
	l := ltrLine("ab")
	if w := l.Metrics(nil); w != 20 {
		t.Errorf("expected width of 'ab' to be 20, is %g", w)
	}
	if w := l.Measure(1, false, nil); w != 10 {
		t.Errorf("expected leading edge of 'b' at 10, is %g", w)
	}
	if w := l.Measure(1, true, nil); w != 10 {
		t.Errorf("expected trailing edge of 'a' at 10, is %g", w)
	}
	// trailing edge at the end of the line is the right edge of its last character
	if w := l.Measure(2, true, nil); w != 20 {
		t.Errorf("expected trailing edge of 'b' at 20, is %g", w)
	}
	if w := l.Measure(0, true, nil); w != 0 {
		t.Errorf("expected trailing edge before line start at 0, is %g", w)
	}
}

func TestMeasureSubLine(t *testing.T) {
	defer setup(t)()
	//
	p := textline.DefaultPaint()
	p.Size = 20
	text := []rune("Hello World")
	l := &Line{}
	l.Set(Params{
		Paint:      &p,
		Shaper:     cellShaper{},
		Text:       text,
		Start:      6,
		Limit:      11,
		Dir:        textline.LeftToRight,
		Directions: textline.AllLeftToRight,
	})
	if l.Len() != 5 || string(l.Chars()) != "World" {
		t.Fatalf("expected line 'World', have %q", string(l.Chars()))
	}
	if w := l.Metrics(nil); w != 50 {
		t.Errorf("expected width 50, is %g", w)
	}
}

func TestMetricsFold(t *testing.T) {
	defer setup(t)()
	//
	spans := textline.NewSpanList().Add(1, 2, textline.TextSize(40))
	l := newLine("abcd", textline.LeftToRight, textline.AllLeftToRight, spans, false)
	fm := textline.FontMetrics{}
	w := l.Metrics(&fm)
	if w != 50 {
		t.Errorf("expected width 10+20+10+10 = 50, is %g", w)
	}
	if fm.Top != -40 || fm.Ascent != -32 || fm.Descent != 8 || fm.Bottom != 12 {
		t.Errorf("expected metrics of the larger text to win, have %v", fm)
	}
	empty := newLine("", textline.LeftToRight, textline.AllLeftToRight, nil, false)
	fm = textline.FontMetrics{}
	if w := empty.Metrics(&fm); w != 0 || fm.Top != -20 {
		t.Errorf("expected empty line to report base metrics, have w=%g, fm=%v", w, fm)
	}
}

func TestMeasureMonotonic(t *testing.T) {
	defer setup(t)()
	//
	spans := textline.NewSpanList().
		Add(2, 5, textline.RelativeSize(1.5)).
		Add(3, 8, textline.ForegroundColor(red))
	l := newLine("hello world", textline.LeftToRight, textline.AllLeftToRight, spans, false)
	prev := 0.0
	for i := 0; i <= l.Len(); i++ {
		w := l.Measure(i, false, nil)
		if w < prev {
			t.Errorf("measure is not monotonic at %d: %g < %g", i, w, prev)
		}
		prev = w
	}
	if again := l.Measure(l.Len(), false, nil); again != prev {
		t.Errorf("repeated measure differs: %g vs %g", again, prev)
	}
}

func TestMeasureAllOffsetsAgrees(t *testing.T) {
	defer setup(t)()
	//
	lines := map[string]*Line{
		"ltr":      ltrLine("hello"),
		"bidi":     newLine("abCD", textline.LeftToRight, bidiRuns, nil, false),
		"tabs":     newLine("ab\tc", textline.LeftToRight, textline.AllLeftToRight, nil, true),
		"rtl":      newLine("abc", textline.RightToLeft, textline.AllRightToLeft, nil, false),
		"rtl-bidi": newLine("ABcd", textline.RightToLeft, rtlBidiRuns, nil, false),
		"rtl-tabs": newLine("ab\tc", textline.RightToLeft, textline.AllRightToLeft, nil, true),
	}
	for name, l := range lines {
		for _, trailing := range []bool{false, true} {
			flags := make([]bool, l.Len()+1)
			for i := range flags {
				flags[i] = trailing
			}
			all := l.MeasureAllOffsets(flags, nil)
			for i := 0; i <= l.Len(); i++ {
				if w := l.Measure(i, trailing, nil); w != all[i] {
					t.Errorf("%s: offset %d trailing=%v: Measure=%g, MeasureAllOffsets=%g",
						name, i, trailing, w, all[i])
				}
			}
		}
	}
}

func TestMeasureBidi(t *testing.T) {
	defer setup(t)()
	//
	l := newLine("abCD", textline.LeftToRight, bidiRuns, nil, false)
	expected := []float64{0, 10, 40, 30, 40}
	for i, e := range expected {
		if w := l.Measure(i, false, nil); w != e {
			t.Errorf("expected leading edge of offset %d at %g, is %g", i, e, w)
		}
	}
	if w := l.Metrics(nil); w != 40 {
		t.Errorf("expected line width 40, is %g", w)
	}
}

func TestMeasureRTL(t *testing.T) {
	defer setup(t)()
	//
	l := newLine("abc", textline.RightToLeft, textline.AllRightToLeft, nil, false)
	if w := l.Measure(1, false, nil); w != -10 {
		t.Errorf("expected offset 1 at -10, is %g", w)
	}
	if w := l.Metrics(nil); w != -30 {
		t.Errorf("expected signed width -30, is %g", w)
	}
}

func TestMeasureRTLBidi(t *testing.T) {
	defer setup(t)()
	//
	l := newLine("ABcd", textline.RightToLeft, rtlBidiRuns, nil, false)
	expected := []float64{0, -10, -40, -30, -40}
	for i, e := range expected {
		if w := l.Measure(i, false, nil); w != e {
			t.Errorf("expected leading edge of offset %d at %g, is %g", i, e, w)
		}
	}
	if w := l.Measure(2, true, nil); w != -20 {
		t.Errorf("expected trailing edge of 'B' at -20, is %g", w)
	}
	if w := l.Measure(4, true, nil); w != -20 {
		t.Errorf("expected trailing edge of 'd' at -20, is %g", w)
	}
	if w := l.Metrics(nil); w != -40 {
		t.Errorf("expected signed line width -40, is %g", w)
	}
}

func TestDrawRTLBidi(t *testing.T) {
	defer setup(t)()
	//
	l := newLine("ABcd", textline.RightToLeft, rtlBidiRuns, nil, false)
	rec := &canvas.Recorder{}
	l.Draw(rec, 100, -20, 0, 6)
	if len(rec.Ops) != 2 {
		t.Fatalf("expected two text runs, have\n%s", rec)
	}
	ab, cd := rec.Ops[0], rec.Ops[1]
	if string(ab.Text) != "AB" || !ab.RTL || ab.X != 80 {
		t.Errorf("expected RTL run 'AB' from 80 to the right margin, have %s", ab)
	}
	if string(cd.Text) != "cd" || cd.RTL || cd.X != 60 {
		t.Errorf("expected LTR run 'cd' from 60 to 80, have %s", cd)
	}
}

func TestCaretRTLBidi(t *testing.T) {
	defer setup(t)()
	//
	// visual order from left to right is c d B A; offset 2 is owned by
	// the trailing edge of 'B', which sits between 'd' and 'B'
	l := newLine("ABcd", textline.RightToLeft, rtlBidiRuns, nil, false)
	left := map[int]int{0: 1, 1: 2, 2: 3, 3: 4, 4: 5}
	for from, to := range left {
		if c := l.OffsetToLeftRightOf(from, true); c != to {
			t.Errorf("caret left from %d: expected %d, have %d", from, to, c)
		}
	}
	right := map[int]int{4: 3, 3: 2, 2: 1, 1: 0, 0: -1}
	for from, to := range right {
		if c := l.OffsetToLeftRightOf(from, false); c != to {
			t.Errorf("caret right from %d: expected %d, have %d", from, to, c)
		}
	}
}

func TestTabsRTL(t *testing.T) {
	defer setup(t)()
	//
	l := newLine("ab\tc", textline.RightToLeft, textline.AllRightToLeft, nil, true)
	expected := []float64{0, -10, -20, -40, -50}
	for i, e := range expected {
		if w := l.Measure(i, false, nil); w != e {
			t.Errorf("expected offset %d at %g, is %g", i, e, w)
		}
	}
	rec := &canvas.Recorder{}
	l.Draw(rec, 100, -20, 0, 6)
	if len(rec.Ops) != 2 || rec.Ops[0].X != 80 || rec.Ops[1].X != 50 || string(rec.Ops[1].Text) != "c" {
		t.Errorf("expected 'ab' at 80 and 'c' snapped to the stop 40 left of the margin, have\n%s", rec)
	}
}

func TestResolvedLine(t *testing.T) {
	defer setup(t)()
	//
	text := []rune("ABcd")
	dirs, err := bidi.ResolveLine(text, 0, len(text), textline.RightToLeft, bidi.Testing(true))
	if err != nil {
		t.Fatal(err)
	}
	l := loadLine(cellShaper{}, string(text), textline.RightToLeft, dirs, nil, false)
	for i, e := range []float64{0, -10, -40, -30, -40} {
		if w := l.Measure(i, false, nil); w != e {
			t.Errorf("expected leading edge of offset %d at %g, is %g", i, e, w)
		}
	}
	rec := &canvas.Recorder{}
	l.Draw(rec, 100, -20, 0, 6)
	if len(rec.Ops) != 2 || string(rec.Ops[0].Text) != "AB" || rec.Ops[0].X != 80 || rec.Ops[1].X != 60 {
		t.Errorf("expected 'AB' at the right margin and 'cd' left of it, have\n%s", rec)
	}
	text = []rune("abCD")
	dirs, err = bidi.ResolveLine(text, 0, len(text), textline.LeftToRight, bidi.Testing(true))
	if err != nil {
		t.Fatal(err)
	}
	l = loadLine(cellShaper{}, string(text), textline.LeftToRight, dirs, nil, false)
	for i, e := range []float64{0, 10, 40, 30, 40} {
		if w := l.Measure(i, false, nil); w != e {
			t.Errorf("expected leading edge of offset %d at %g, is %g", i, e, w)
		}
	}
}

func TestMeasureAllOffsetsSinglePass(t *testing.T) {
	defer setup(t)()
	//
	text := strings.Repeat("ab ", 40)
	cs := &countingShaper{}
	l := loadLine(cs, text, textline.LeftToRight, textline.AllLeftToRight, nil, false)
	l.Justify(float64(len(text)) * 12)
	cs.advanceCalls = 0
	flags := make([]bool, l.Len()+1)
	all := l.MeasureAllOffsets(flags, nil)
	if cs.prefixCalls != 1 || cs.advanceCalls != 0 {
		t.Errorf("expected one call measuring all offsets, have %d + %d single calls",
			cs.prefixCalls, cs.advanceCalls)
	}
	plain := newLine(text, textline.LeftToRight, textline.AllLeftToRight, nil, false)
	plain.Justify(float64(len(text)) * 12)
	for i := 0; i <= l.Len(); i++ {
		if w := plain.Measure(i, false, nil); math.Abs(w-all[i]) > 1e-9 {
			t.Errorf("offset %d: Measure=%g, MeasureAllOffsets=%g", i, w, all[i])
		}
	}
	cs.prefixCalls, cs.advanceCalls = 0, 0
	l = loadLine(cs, "ABcd", textline.RightToLeft, rtlBidiRuns, nil, false)
	all = l.MeasureAllOffsets(make([]bool, 5), nil)
	if cs.prefixCalls != 2 {
		t.Errorf("expected one call per run, have %d", cs.prefixCalls)
	}
	for i, e := range []float64{0, -10, -40, -30, -40} {
		if all[i] != e {
			t.Errorf("expected offset %d at %g, is %g", i, e, all[i])
		}
	}
	cs.prefixCalls = 0
	spans := textline.NewSpanList().Add(1, 2, textline.TextSize(40))
	l = loadLine(cs, "abcd", textline.LeftToRight, textline.AllLeftToRight, spans, false)
	all = l.MeasureAllOffsets(make([]bool, 5), nil)
	if cs.prefixCalls != 0 || all[4] != 50 {
		t.Errorf("expected styled line to be measured piecewise, have %v", all)
	}
}

func TestTabs(t *testing.T) {
	defer setup(t)()
	//
	l := newLine("ab\tc", textline.LeftToRight, textline.AllLeftToRight, nil, true)
	expected := []float64{0, 10, 20, 40, 50}
	for i, e := range expected {
		if w := l.Measure(i, false, nil); w != e {
			t.Errorf("expected offset %d at %g, is %g", i, e, w)
		}
	}
	p := textline.DefaultPaint()
	p.Size = 20
	text := []rune("ab\tc")
	l.Set(Params{
		Paint: &p, Shaper: cellShaper{}, Text: text, Limit: len(text),
		Dir: textline.LeftToRight, Directions: textline.AllLeftToRight,
		HasTabs: true, TabStops: textline.NewTabStops(0, 64),
	})
	if w := l.Measure(3, false, nil); w != 64 {
		t.Errorf("expected 'c' at explicit tab stop 64, is %g", w)
	}
	if next := l.NextTab(64); next != 80 {
		t.Errorf("expected default stop 80 after last explicit stop, is %g", next)
	}
}

func TestJustify(t *testing.T) {
	defer setup(t)()
	//
	l := ltrLine("abc")
	l.Justify(100)
	if l.AddedWidth() != 0 || l.Metrics(nil) != 30 {
		t.Errorf("expected justify without spaces to do nothing, added=%g", l.AddedWidth())
	}
	l = ltrLine("a b c")
	l.Justify(70)
	if l.AddedWidth() != 10 {
		t.Errorf("expected 10 units added per space, have %g", l.AddedWidth())
	}
	if w := l.Metrics(nil); w != 70 {
		t.Errorf("expected justified width 70, is %g", w)
	}
	if w := l.Measure(2, false, nil); w != 30 {
		t.Errorf("expected 'b' at 30 after stretching first space, is %g", w)
	}
	l = ltrLine("a b  ")
	l.Justify(50)
	if l.AddedWidth() != 20 {
		t.Errorf("expected trailing spaces to be ignored, added=%g", l.AddedWidth())
	}
}

func TestCaretLTR(t *testing.T) {
	defer setup(t)()
	//
	l := ltrLine("abc")
	moves := []struct {
		from   int
		toLeft bool
		to     int
	}{
		{0, false, 1}, {2, false, 3}, {3, false, 4},
		{3, true, 2}, {1, true, 0}, {0, true, -1},
	}
	for _, m := range moves {
		if c := l.OffsetToLeftRightOf(m.from, m.toLeft); c != m.to {
			t.Errorf("caret from %d (left=%v): expected %d, have %d", m.from, m.toLeft, m.to, c)
		}
	}
	l = ltrLine("e\u0301x")
	if c := l.OffsetToLeftRightOf(0, false); c != 2 {
		t.Errorf("expected caret to skip combining mark, moved to %d", c)
	}
	if c := l.OffsetToLeftRightOf(2, true); c != 0 {
		t.Errorf("expected caret to skip combining mark backwards, moved to %d", c)
	}
}

func TestCaretBidi(t *testing.T) {
	defer setup(t)()
	//
	l := newLine("abCD", textline.LeftToRight, bidiRuns, nil, false)
	right := map[int]int{1: 2, 2: 3, 3: 4, 4: 5}
	for from, to := range right {
		if c := l.OffsetToLeftRightOf(from, false); c != to {
			t.Errorf("caret right from %d: expected %d, have %d", from, to, c)
		}
	}
	left := map[int]int{4: 3, 3: 2, 2: 1, 0: -1}
	for from, to := range left {
		if c := l.OffsetToLeftRightOf(from, true); c != to {
			t.Errorf("caret left from %d: expected %d, have %d", from, to, c)
		}
	}
}

func TestReplacement(t *testing.T) {
	defer setup(t)()
	//
	box := textline.ReplacementBox{Width: 30, Height: 25, Color: red}
	spans := textline.NewSpanList().Add(1, 3, box)
	l := newLine("aXYb", textline.LeftToRight, textline.AllLeftToRight, spans, false)
	chars := l.Chars()
	if chars[1] != objectReplacementChar || chars[2] != zeroWidthNoBreakSpace || chars[3] != 'b' {
		t.Errorf("expected replacement to be encoded, have %q", string(chars))
	}
	fm := textline.FontMetrics{}
	if w := l.Metrics(&fm); w != 50 {
		t.Errorf("expected width 10+30+10, is %g", w)
	}
	if fm.Ascent != -25 || fm.Top != -25 {
		t.Errorf("expected box to extend ascent and top, have %v", fm)
	}
	if c := l.OffsetToLeftRightOf(1, false); c != 3 {
		t.Errorf("expected caret to jump over replacement to 3, is at %d", c)
	}
	if c := l.OffsetToLeftRightOf(3, true); c != 1 {
		t.Errorf("expected caret to jump back over replacement to 1, is at %d", c)
	}
	rec := &canvas.Recorder{}
	l.Draw(rec, 0, -20, 0, 6)
	if rec.Count(canvas.RectOp) != 1 || rec.Count(canvas.TextOp) != 2 {
		t.Fatalf("expected box and two text runs, have\n%s", rec)
	}
	if r := rec.Ops[1]; r.Kind != canvas.RectOp || r.Left != 10 || r.Right != 40 || r.Top != -25 {
		t.Errorf("expected box from 10 to 40, have %s", r)
	}
}

func TestDrawDecorationOrder(t *testing.T) {
	defer setup(t)()
	//
	spans := textline.NewSpanList().
		Add(0, 4, textline.BackgroundColor(yellow)).
		Add(0, 4, textline.Underline{Color: red, Thickness: 2}).
		Add(0, 4, textline.Underline{}).
		Add(0, 4, textline.StrikeThrough{})
	l := newLine("abcd", textline.LeftToRight, textline.AllLeftToRight, spans, false)
	rec := &canvas.Recorder{}
	l.Draw(rec, 0, -20, 0, 6)
	if len(rec.Ops) != 5 {
		t.Fatalf("expected 5 drawing operations, have\n%s", rec)
	}
	bg, custom, ul, strike, text := rec.Ops[0], rec.Ops[1], rec.Ops[2], rec.Ops[3], rec.Ops[4]
	if bg.Color != yellow || bg.Top != -20 || bg.Bottom != 6 || bg.Right != 40 {
		t.Errorf("expected background first, have %s", bg)
	}
	if custom.Color != red || math.Abs(custom.Bottom-custom.Top-2) > 1e-9 {
		t.Errorf("expected custom underline second, have %s", custom)
	}
	if ul.Color != black || math.Abs(ul.Top-20.0/9) > 1e-9 {
		t.Errorf("expected default underline third, have %s", ul)
	}
	if strike.Color != black || strike.Top >= 0 {
		t.Errorf("expected strike-through above baseline fourth, have %s", strike)
	}
	if text.Kind != canvas.TextOp || string(text.Text) != "abcd" {
		t.Errorf("expected text last, have %s", text)
	}
	if text.Paint.Underline || text.Paint.StrikeThru {
		t.Errorf("expected decorations to be stripped from text paint")
	}
}

func TestDrawMergesPieces(t *testing.T) {
	defer setup(t)()
	//
	spans := textline.NewSpanList().Add(1, 3, textline.Underline{})
	l := newLine("abcd", textline.LeftToRight, textline.AllLeftToRight, spans, false)
	rec := &canvas.Recorder{}
	l.Draw(rec, 0, -20, 0, 6)
	if rec.Count(canvas.TextOp) != 1 {
		t.Fatalf("expected pieces differing in decoration only to merge, have\n%s", rec)
	}
	ul := rec.Ops[0]
	if ul.Kind != canvas.RectOp || ul.Left != 10 || ul.Right != 30 {
		t.Errorf("expected underline from 10 to 30, have %s", ul)
	}
	spans.Add(2, 3, textline.ForegroundColor(red))
	l = newLine("abcd", textline.LeftToRight, textline.AllLeftToRight, spans, false)
	rec.Reset()
	l.Draw(rec, 0, -20, 0, 6)
	if rec.Count(canvas.TextOp) != 3 {
		t.Errorf("expected color change to split text into 3 runs, have\n%s", rec)
	}
}

func TestHyphenEdits(t *testing.T) {
	defer setup(t)()
	//
	p := textline.DefaultPaint()
	p.Size = 20
	p.HyphenEdit = textline.HyphenStartOfLine | textline.HyphenEndOfLine
	text := []rune("abcd")
	spans := textline.NewSpanList().Add(2, 4, textline.ForegroundColor(red))
	l := &Line{}
	l.Set(Params{
		Paint: &p, Shaper: cellShaper{}, Text: text, Spans: spans, Limit: 4,
		Dir: textline.LeftToRight, Directions: textline.AllLeftToRight,
	})
	rec := &canvas.Recorder{}
	l.Draw(rec, 0, -20, 0, 6)
	if len(rec.Ops) != 2 {
		t.Fatalf("expected two text runs, have\n%s", rec)
	}
	if e := rec.Ops[0].Paint.HyphenEdit; e != textline.HyphenStartOfLine {
		t.Errorf("expected first run to keep start-of-line edit only, has %#x", e)
	}
	if e := rec.Ops[1].Paint.HyphenEdit; e != textline.HyphenEndOfLine {
		t.Errorf("expected last run to keep end-of-line edit only, has %#x", e)
	}
}

func TestDrawRuns(t *testing.T) {
	defer setup(t)()
	//
	rec := &canvas.Recorder{}
	l := newLine("ab", textline.RightToLeft, textline.AllRightToLeft, nil, false)
	l.Draw(rec, 20, -20, 0, 6)
	if len(rec.Ops) != 1 || rec.Ops[0].X != 0 || !rec.Ops[0].RTL {
		t.Errorf("expected RTL run drawn from 0 to 20, have\n%s", rec)
	}
	rec.Reset()
	l = newLine("abCD", textline.LeftToRight, bidiRuns, nil, false)
	l.Draw(rec, 0, -20, 0, 6)
	if len(rec.Ops) != 2 || rec.Ops[0].X != 0 || rec.Ops[1].X != 20 || !rec.Ops[1].RTL {
		t.Errorf("expected LTR run at 0 and RTL run at 20, have\n%s", rec)
	}
	rec.Reset()
	l = newLine("ab\tc", textline.LeftToRight, textline.AllLeftToRight, nil, true)
	l.Draw(rec, 0, -20, 0, 6)
	if len(rec.Ops) != 2 || rec.Ops[0].X != 0 || rec.Ops[1].X != 40 || string(rec.Ops[1].Text) != "c" {
		t.Errorf("expected text split at tab with 'c' at 40, have\n%s", rec)
	}
	l.Draw(nil, 0, 0, 0, 0) // must not panic
}

func TestPanics(t *testing.T) {
	defer setup(t)()
	//
	expectPanic := func(name string, f func()) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		f()
	}
	p := textline.DefaultPaint()
	text := []rune("abcd")
	expectPanic("nil directions", func() {
		(&Line{}).Set(Params{Paint: &p, Shaper: cellShaper{}, Text: text, Limit: 4,
			Dir: textline.LeftToRight})
	})
	expectPanic("empty directions", func() {
		newLine("abcd", textline.LeftToRight, textline.NewDirections(), nil, false)
	})
	expectPanic("bad direction", func() {
		(&Line{}).Set(Params{Paint: &p, Shaper: cellShaper{}, Text: text, Limit: 4,
			Directions: textline.AllLeftToRight})
	})
	expectPanic("bounds", func() {
		(&Line{}).Set(Params{Paint: &p, Shaper: cellShaper{}, Text: text, Start: 2, Limit: 5,
			Dir: textline.LeftToRight, Directions: textline.AllLeftToRight})
	})
	expectPanic("measure beyond line", func() {
		ltrLine("abcd").Measure(5, false, nil)
	})
	expectPanic("too few trailing flags", func() {
		ltrLine("abcd").MeasureAllOffsets(make([]bool, 2), nil)
	})
}

func TestPool(t *testing.T) {
	defer setup(t)()
	//
	lines := make([]*Line, 5)
	for i := range lines {
		lines[i] = Obtain()
		p := textline.DefaultPaint()
		lines[i].Set(Params{Paint: &p, Shaper: cellShaper{}, Text: []rune("x"), Limit: 1,
			Dir: textline.LeftToRight, Directions: textline.AllLeftToRight})
	}
	for _, l := range lines {
		Recycle(l)
	}
	if n := IdleLines(); n != PoolSize {
		t.Errorf("expected %d idle lines in pool, have %d", PoolSize, n)
	}
	l := Obtain()
	if l.text != nil || l.paint != nil {
		t.Errorf("expected recycled line to hold no client data")
	}
	Recycle(l)
	Recycle(nil)
}
