package uax11

import (
	"math"
	"testing"
	"unicode/utf8"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textline"
	"github.com/npillmayer/textline/grapheme"
)

func TestTables(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	chars := [...]rune{
		'A',    // LATIN CAPITAL LETTER A           => Na
		0x05BD, // HEBREW POINT METEG               => N
		0x2223, // DIVIDES                          => A
		0x3008, // LEFT ANGLE BRACKET               => W
		0xFF41, // FULLWIDTH LATIN SMALL LETTER A   => F
		0xFF61, // HALFWIDTH IDEOGRAPHIC FULL STOP  => H
		0x3401, // CJK UNIFIED IDEOGRAPH-3401       => W
	}
	cats := [...]Category{Na, N, A, W, F, H, W}
	for i, c := range chars {
		cat := WidthCategory(c)
		if cat != cats[i] {
			t.Errorf("expected width category of %#U to be %s, is %s", c, cats[i], cat)
		}
	}
}

func TestEnvLocale(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	ctx := ContextFromEnvironment()
	if ctx == nil {
		t.Fatalf("context from environment is nil, should not")
	}
	t.Logf("user environment has locale '%s'", ctx.Locale)
}

func TestWidth(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	chars := [...]rune{
		'A',    // LATIN CAPITAL LETTER A           => Na
		0x05BD, // HEBREW POINT METEG               => N, non-spacing
		0x2223, // DIVIDES                          => A
		0x3008, // LEFT ANGLE BRACKET               => W
		0xFF41, // FULLWIDTH LATIN SMALL LETTER A   => F
	}
	ctx := LatinContext
	buf := make([]byte, 10)
	ww := 0
	for i, r := range chars {
		n := utf8.EncodeRune(buf, r)
		w := Width(buf[:n], ctx)
		t.Logf("%d: %#U:'%08x' (%s) => %d", i, r, buf[:n], WidthCategory(r), w)
		ww += w
	}
	if ww != 6 {
		t.Errorf("expected accumulated width of 5 runes to be 6, is %d", ww)
	}
	if w := Width([]byte("\u2223"), EastAsianContext); w != 2 {
		t.Errorf("expected ambiguous character to be wide in East Asian context, is %d", w)
	}
	if w := Width([]byte{0xff, 0xfe}, ctx); w != 0 {
		t.Errorf("expected invalid UTF-8 to have width 0, is %d", w)
	}
}

func TestContext(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	context := &Context{Locale: "zh-HK"}
	if w := Width([]byte("\u2223"), context); w != 2 {
		t.Errorf("expected ambiguous character to be wide for zh-HK, is %d", w)
	}
	t.Logf("%v", context.Script)
	context = &Context{Locale: "de-AT"}
	if w := Width([]byte("\u2223"), context); w != 1 {
		t.Errorf("expected ambiguous character to be narrow for de-AT, is %d", w)
	}
}

func TestString(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	input := "A (世). "
	buf := make([]byte, 10)
	n := utf8.EncodeRune(buf, 0x1f600)
	input = input + string(buf[:n])
	t.Logf("input string = '%v'", input)
	ctx := EastAsianContext
	s := grapheme.StringFromString(input)
	w := StringWidth(s, ctx)
	if w != 10 {
		t.Errorf("expected fixed width length of string to be 10, is %d", w)
	}
}

func TestCellShaperAdvance(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	p := textline.DefaultPaint()
	p.Size = 20
	cs := NewCellShaper(nil)
	text := []rune("a\u4e16b")
	for offset, expected := range []float64{0, 10, 30, 40} {
		if adv := cs.RunAdvance(&p, text, 0, 3, 0, 3, false, offset); adv != expected {
			t.Errorf("expected advance up to %d to be %.1f, is %.1f", offset, expected, adv)
		}
	}
	if adv := cs.RunAdvance(&p, text, 1, 3, 0, 3, true, 2); adv != 20 {
		t.Errorf("expected wide character to advance 2 cells, is %.1f", adv)
	}
	text = []rune("e\u0301x")
	if adv := cs.RunAdvance(&p, text, 0, 3, 0, 3, false, 1); adv != 10 {
		t.Errorf("expected offset inside a cluster to count the cluster, is %.1f", adv)
	}
	if n := cs.Cells(text, 0, 3); n != 2 {
		t.Errorf("expected 2 cells for e+acute x, have %d", n)
	}
}

func TestCellShaperAllOffsets(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	p := textline.DefaultPaint()
	p.Size = 20
	cs := NewCellShaper(nil)
	text := []rune("xa\u4e16e\u0301b")
	advances := make([]float64, len(text))
	cs.RunAdvances(&p, text, 1, len(text), 0, len(text), false, advances)
	for i, adv := range advances {
		if single := cs.RunAdvance(&p, text, 1, len(text), 0, len(text), false, 1+i); single != adv {
			t.Errorf("expected advance up to %d to be %.1f, is %.1f", 1+i, single, adv)
		}
	}
}

func TestCellShaperCursor(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	p := textline.DefaultPaint()
	cs := NewCellShaper(EastAsianContext)
	text := []rune("e\u0301x")
	if n := cs.RunCursor(&p, text, 0, 3, false, 0, true); n != 2 {
		t.Errorf("expected cursor to skip the combining mark, is at %d", n)
	}
	if n := cs.RunCursor(&p, text, 0, 3, false, 2, false); n != 0 {
		t.Errorf("expected cursor to move before the cluster, is at %d", n)
	}
	fm := cs.FontMetrics(&p)
	if fm.Ascent >= 0 || fm.Descent <= 0 || math.Abs(fm.Height()-p.Size) > 1e-9 {
		t.Errorf("expected a cell line to be as high as the text size, is %v", fm)
	}
}
