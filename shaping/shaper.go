package shaping

import (
	"bytes"
	"fmt"
	"math"
	"slices"
	"sort"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/npillmayer/textline"
	"github.com/npillmayer/textline/grapheme"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Shaper is a textline.Shaper using HarfBuzz shaping. It is safe for
// concurrent use.
type Shaper struct {
	mx       sync.Mutex
	faces    map[string]*font.Face
	fallback string
	lang     language.Language
	hb       shaping.HarfbuzzShaper
	breaker  *grapheme.Breaker
	metrics  map[metricsKey]textline.FontMetrics
	last     runKey
	lastText []rune
	clusters []cluster
}

var (
	_ textline.Shaper      = (*Shaper)(nil)
	_ textline.RunAdvancer = (*Shaper)(nil)
)

// cluster is a glyph cluster of a shaped run, covering text[start:end].
type cluster struct {
	start, end int
	advance    float64
}

// runKey identifies the most recently shaped run, together with a copy of
// its context text.
type runKey struct {
	start, end, ctxStart, ctxEnd int
	rtl                          bool
	paint                        textline.Paint
}

type metricsKey struct {
	typeface string
	size     float64
}

// New creates a shaper with the Go regular font registered as "Go".
func New() *Shaper {
	s := &Shaper{
		faces:    make(map[string]*font.Face),
		metrics:  make(map[metricsKey]textline.FontMetrics),
		fallback: "Go",
		lang:     language.NewLanguage("en"),
		breaker:  grapheme.NewBreaker(),
	}
	if err := s.AddFont("Go", goregular.TTF); err != nil {
		panic(err) // Go fonts are known to parse
	}
	return s
}

// SetLanguage sets the language passed to HarfBuzz, as a BCP 47 tag.
func (s *Shaper) SetLanguage(tag string) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.lang = language.NewLanguage(tag)
	s.last, s.lastText = runKey{}, nil
}

// AddFont parses an OpenType font and registers it under typeface name.
func (s *Shaper) AddFont(name string, data []byte) error {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("shaping: cannot parse font %q: %w", name, err)
	}
	s.AddFace(name, face)
	return nil
}

// AddFace registers a parsed font face under typeface name, replacing an
// earlier registration.
func (s *Shaper) AddFace(name string, face *font.Face) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.faces[name] = face
	for k := range s.metrics {
		if k.typeface == name {
			delete(s.metrics, k)
		}
	}
	s.last, s.lastText = runKey{}, nil
	tracer().Debugf("shaping: registered typeface %q", name)
}

// Typefaces returns the registered typeface names, sorted.
func (s *Shaper) Typefaces() []string {
	s.mx.Lock()
	defer s.mx.Unlock()
	names := make([]string, 0, len(s.faces))
	for name := range s.faces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// face returns the face for the typeface of p. It must be called with s.mx
// held.
func (s *Shaper) face(p *textline.Paint) *font.Face {
	if f, ok := s.faces[p.Typeface]; ok {
		return f
	}
	return s.faces[s.fallback]
}

// RunAdvance implements textline.Shaper.
func (s *Shaper) RunAdvance(p *textline.Paint, text []rune, start, end, ctxStart, ctxEnd int,
	rtl bool, offset int) float64 {
	if offset <= start || start >= end {
		return 0
	}
	s.mx.Lock()
	defer s.mx.Unlock()
	clusters := s.shape(p, text, start, end, ctxStart, ctxEnd, rtl)
	adv := 0.0
	for _, c := range clusters {
		if c.end <= offset {
			adv += c.advance
		} else if c.start < offset {
			adv += c.advance * float64(offset-c.start) / float64(c.end-c.start)
		}
	}
	if offset >= end && p.HyphenEdit&textline.HyphenEndOfLine != 0 {
		adv += s.hyphenAdvance(p)
	}
	if p.HyphenEdit&textline.HyphenStartOfLine != 0 {
		adv += s.hyphenAdvance(p)
	}
	return adv
}

// RunAdvances implements textline.RunAdvancer. The run is shaped once and
// the cluster advances are accumulated in a single pass.
func (s *Shaper) RunAdvances(p *textline.Paint, text []rune, start, end, ctxStart, ctxEnd int,
	rtl bool, advances []float64) {
	//
	for i := range advances[:end-start+1] {
		advances[i] = 0
	}
	if start >= end {
		return
	}
	s.mx.Lock()
	defer s.mx.Unlock()
	var startHyphen float64
	if p.HyphenEdit&textline.HyphenStartOfLine != 0 {
		startHyphen = s.hyphenAdvance(p)
	}
	sum := 0.0
	for _, c := range s.shape(p, text, start, end, ctxStart, ctxEnd, rtl) {
		for pos := max(c.start, start) + 1; pos <= min(c.end, end); pos++ {
			advances[pos-start] = startHyphen + sum + c.advance*float64(pos-c.start)/float64(c.end-c.start)
		}
		sum += c.advance
	}
	if p.HyphenEdit&textline.HyphenEndOfLine != 0 {
		advances[end-start] += s.hyphenAdvance(p)
	}
}

// shape returns the glyph clusters of text[start:end], in logical order.
// The result of the last call is cached, as the layout engine measures
// the same run at many offsets.
func (s *Shaper) shape(p *textline.Paint, text []rune, start, end, ctxStart, ctxEnd int, rtl bool) []cluster {
	key := runKey{
		start: start, end: end, ctxStart: ctxStart, ctxEnd: ctxEnd,
		rtl: rtl, paint: *p,
	}
	if key == s.last && slices.Equal(s.lastText, text[ctxStart:ctxEnd]) {
		return s.clusters
	}
	dir := di.DirectionLTR
	if rtl {
		dir = di.DirectionRTL
	}
	input := shaping.Input{
		Text:      text[ctxStart:ctxEnd],
		RunStart:  start - ctxStart,
		RunEnd:    end - ctxStart,
		Direction: dir,
		Face:      s.face(p),
		Size:      floatToFixed(p.Size),
		Script:    detectScript(text[start:end]),
		Language:  s.lang,
	}
	out := s.hb.Shape(input)
	advances := make(map[int]float64, len(out.Glyphs))
	for _, g := range out.Glyphs {
		advances[ctxStart+g.ClusterIndex] += fixedToFloat(g.Advance)
	}
	s.clusters = s.clusters[:0]
	for pos, adv := range advances {
		s.clusters = append(s.clusters, cluster{start: pos, advance: adv})
	}
	sort.Slice(s.clusters, func(i, j int) bool {
		return s.clusters[i].start < s.clusters[j].start
	})
	for i := range s.clusters {
		if i+1 < len(s.clusters) {
			s.clusters[i].end = s.clusters[i+1].start
		} else {
			s.clusters[i].end = end
		}
	}
	s.last = key
	s.lastText = append(s.lastText[:0], text[ctxStart:ctxEnd]...)
	return s.clusters
}

// hyphenAdvance returns the advance of a hyphen glyph for p. It must be
// called with s.mx held.
func (s *Shaper) hyphenAdvance(p *textline.Paint) float64 {
	hyphen := []rune{'-'}
	out := s.hb.Shape(shaping.Input{
		Text:      hyphen,
		RunEnd:    1,
		Direction: di.DirectionLTR,
		Face:      s.face(p),
		Size:      floatToFixed(p.Size),
		Script:    language.Latin,
		Language:  s.lang,
	})
	return fixedToFloat(out.Advance)
}

// RunCursor implements textline.Shaper.
func (s *Shaper) RunCursor(p *textline.Paint, text []rune, ctxStart, ctxEnd int,
	rtl bool, offset int, after bool) int {
	s.mx.Lock()
	defer s.mx.Unlock()
	if after {
		return s.breaker.After(text, ctxStart, ctxEnd, offset)
	}
	return s.breaker.Before(text, ctxStart, ctxEnd, offset)
}

// FontMetrics implements textline.Shaper. Metrics are taken from the line
// bounds HarfBuzz reports for the face of p.
func (s *Shaper) FontMetrics(p *textline.Paint) textline.FontMetrics {
	s.mx.Lock()
	defer s.mx.Unlock()
	key := metricsKey{typeface: p.Typeface, size: p.Size}
	if fm, ok := s.metrics[key]; ok {
		return fm
	}
	space := []rune{' '}
	out := s.hb.Shape(shaping.Input{
		Text:      space,
		RunEnd:    1,
		Direction: di.DirectionLTR,
		Face:      s.face(p),
		Size:      floatToFixed(p.Size),
		Script:    language.Latin,
		Language:  s.lang,
	})
	asc := math.Abs(fixedToFloat(out.LineBounds.Ascent))
	desc := math.Abs(fixedToFloat(out.LineBounds.Descent))
	fm := textline.FontMetrics{
		Top:     -asc,
		Ascent:  -asc,
		Descent: desc,
		Bottom:  desc,
		Leading: fixedToFloat(out.LineBounds.Gap),
	}
	s.metrics[key] = fm
	tracer().Debugf("shaping: metrics for %q at %.1fpx are %v", p.Typeface, p.Size, fm)
	return fm
}

// DecorationMetrics implements textline.Shaper.
func (s *Shaper) DecorationMetrics(p *textline.Paint) textline.DecorationMetrics {
	return textline.DefaultDecorationMetrics(p.Size)
}

// detectScript returns the script of the first character of a run which is
// not common or inherited.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		switch script := language.LookupScript(r); script {
		case language.Common, language.Inherited, language.Unknown:
			continue
		default:
			return script
		}
	}
	return language.Latin
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
