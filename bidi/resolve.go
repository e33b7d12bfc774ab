package bidi

import (
	"fmt"

	"github.com/npillmayer/textline"
	"golang.org/x/text/unicode/bidi"
)

// Option configures the resolver.
type Option func(*resolver)

const (
	optionTesting uint = 1 << 1 // test mode: recognize uppercase as class R
)

// Testing will set up the resolver to recognize UPPERCASE letters as having
// R2L class.
func Testing(b bool) Option {
	return func(r *resolver) {
		if b {
			r.mode |= optionTesting
		} else {
			r.mode &^= optionTesting
		}
	}
}

type resolver struct {
	mode uint
	buf  []rune
}

func (r *resolver) hasMode(m uint) bool {
	return r.mode&m > 0
}

const lrm = '\u200e' // LEFT-TO-RIGHT MARK

// ResolveLine resolves the directional runs of text[start:limit] as a line
// of a paragraph with direction dir. Run offsets of the result are relative
// to start and runs are in visual order, starting at the leading edge of the
// paragraph: the left edge for left-to-right paragraphs, the right edge for
// right-to-left ones.
//
// Lines without right-to-left characters in a left-to-right paragraph, and
// lines without left-to-right characters in a right-to-left paragraph,
// get textline.AllLeftToRight or textline.AllRightToLeft respectively.
func ResolveLine(text []rune, start, limit int, dir textline.Direction, opts ...Option) (*textline.Directions, error) {
	if start < 0 || limit < start || limit > len(text) {
		return nil, fmt.Errorf("bidi: line [%d, %d) out of text bounds [0, %d)", start, limit, len(text))
	}
	if !dir.Valid() {
		return nil, fmt.Errorf("bidi: illegal paragraph direction %d", dir)
	}
	r := &resolver{}
	for _, opt := range opts {
		opt(r)
	}
	runs, err := r.resolve(text[start:limit], dir)
	if err != nil {
		return nil, err
	}
	var base uint8
	if dir.IsRTL() {
		base = 1
	}
	reorder(runs, base)
	T().Debugf("bidi: line [%d, %d) has runs %v", start, limit, runs)
	switch {
	case len(runs) == 0 && dir.IsRTL():
		return textline.AllRightToLeft, nil
	case len(runs) == 0:
		return textline.AllLeftToRight, nil
	case len(runs) == 1 && runs[0].Level == 0:
		return textline.AllLeftToRight, nil
	case len(runs) == 1 && runs[0].Level == 1 && dir.IsRTL():
		return textline.AllRightToLeft, nil
	}
	return textline.NewDirections(runs...), nil
}

// resolve returns the runs of a line in logical order.
func (r *resolver) resolve(line []rune, dir textline.Direction) ([]textline.Run, error) {
	if len(line) == 0 {
		return nil, nil
	}
	// x/text/bidi detects the paragraph level from the text unless it is
	// told to use right-to-left. We force left-to-right paragraphs with
	// a leading LRM, which is strong L and does not change other levels.
	r.buf = r.buf[:0]
	prefix := 0
	if !dir.IsRTL() {
		r.buf = append(r.buf, lrm)
		prefix = 1
	}
	for _, c := range line {
		if r.hasMode(optionTesting) && c >= 'A' && c <= 'Z' {
			c = 0x05d0 + (c - 'A') // Hebrew letters
		}
		r.buf = append(r.buf, c)
	}
	var p bidi.Paragraph
	if _, err := p.SetString(string(r.buf), bidi.DefaultDirection(dir.Bidi())); err != nil {
		return nil, fmt.Errorf("bidi: cannot set up paragraph: %w", err)
	}
	o, err := p.Order()
	if err != nil {
		return nil, fmt.Errorf("bidi: cannot resolve levels: %w", err)
	}
	levels := make([]uint8, len(r.buf))
	covered := 0
	for i := 0; i < o.NumRuns(); i++ {
		run := o.Run(i)
		s, e := run.Pos() // end is inclusive
		if s < 0 || e >= len(levels) {
			return nil, fmt.Errorf("bidi: run [%d, %d] out of line bounds", s, e)
		}
		level := levelOf(run.Direction(), dir)
		for j := s; j <= e; j++ {
			levels[j] = level
		}
		covered += e - s + 1
	}
	if covered != len(r.buf) {
		return nil, fmt.Errorf("bidi: runs cover %d of %d characters", covered, len(r.buf))
	}
	if !dir.IsRTL() {
		raiseNumbers(r.buf, levels)
	}
	levels = levels[prefix:]
	var runs []textline.Run
	for i, level := range levels {
		if n := len(runs); n > 0 && runs[n-1].Level == level {
			runs[n-1].Length++
			continue
		}
		runs = append(runs, textline.Run{Start: i, Length: 1, Level: level})
	}
	return runs, nil
}

// raiseNumbers moves numbers of left-to-right paragraphs to level 2, if
// they follow right-to-left text (rule I1 for EN and AN). x/text/bidi
// reports directions of runs only, so levels above 1 are recovered here.
func raiseNumbers(text []rune, levels []uint8) {
	classes := make([]bidi.Class, len(text))
	for i, c := range text {
		props, _ := bidi.LookupRune(c)
		classes[i] = props.Class()
	}
	for i := 1; i+1 < len(classes); i++ { // W4
		prev, next := classes[i-1], classes[i+1]
		if prev != next || (prev != bidi.EN && prev != bidi.AN) {
			continue
		}
		if classes[i] == bidi.CS || (classes[i] == bidi.ES && prev == bidi.EN) {
			classes[i] = prev
		}
	}
	for i := range classes { // W5
		if classes[i] != bidi.EN {
			continue
		}
		for j := i - 1; j >= 0 && classes[j] == bidi.ET; j-- {
			classes[j] = bidi.EN
		}
		for j := i + 1; j < len(classes) && classes[j] == bidi.ET; j++ {
			classes[j] = bidi.EN
		}
	}
	strong := bidi.L
	for i, c := range classes {
		switch c {
		case bidi.L, bidi.R, bidi.AL:
			strong = c
		case bidi.AN:
			if levels[i] == 0 {
				levels[i] = 2
			}
		case bidi.EN:
			if strong != bidi.L && levels[i] == 0 {
				levels[i] = 2
			}
		}
	}
}

// levelOf returns the embedding level of a run with direction d in a
// paragraph with direction dir.
func levelOf(d bidi.Direction, dir textline.Direction) uint8 {
	rtl := d == bidi.RightToLeft
	switch {
	case !dir.IsRTL() && !rtl:
		return 0
	case rtl:
		return 1
	}
	return 2
}

// ParagraphDirection finds the first strong character of text, skipping
// isolated sequences, and returns its direction (rules P2 and P3 of UAX#9).
// If there is no strong character, it returns fallback and false.
func ParagraphDirection(text []rune, fallback textline.Direction, opts ...Option) (textline.Direction, bool) {
	r := &resolver{}
	for _, opt := range opts {
		opt(r)
	}
	isolates := 0
	for _, c := range text {
		if r.hasMode(optionTesting) && c >= 'A' && c <= 'Z' {
			if isolates == 0 {
				return textline.RightToLeft, true
			}
			continue
		}
		props, _ := bidi.LookupRune(c)
		switch props.Class() {
		case bidi.LRI, bidi.RLI, bidi.FSI:
			isolates++
		case bidi.PDI:
			if isolates > 0 {
				isolates--
			}
		case bidi.L:
			if isolates == 0 {
				return textline.LeftToRight, true
			}
		case bidi.R, bidi.AL:
			if isolates == 0 {
				return textline.RightToLeft, true
			}
		}
	}
	return fallback, false
}
