package canvas

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/npillmayer/textline"
)

// OpKind is the type of a recorded drawing operation.
type OpKind int8

// Kinds of operations
const (
	RectOp OpKind = iota
	TextOp
)

func (k OpKind) String() string {
	if k == RectOp {
		return "rect"
	}
	return "text"
}

// Op is a recorded drawing operation. Rectangles use Left, Top, Right,
// Bottom and Color; text runs use Text, Start, End, X, Y, RTL and Paint.
type Op struct {
	Kind                     OpKind
	Left, Top, Right, Bottom float64
	Color                    color.RGBA
	Text                     []rune // copy of the runes of the run
	Start, End               int
	CtxStart, CtxEnd         int
	X, Y                     float64
	RTL                      bool
	Paint                    textline.Paint
}

func (op Op) String() string {
	if op.Kind == RectOp {
		return fmt.Sprintf("rect(%.2f,%.2f)-(%.2f,%.2f) %v", op.Left, op.Top, op.Right, op.Bottom, op.Color)
	}
	dir := "ltr"
	if op.RTL {
		dir = "rtl"
	}
	return fmt.Sprintf("text %q [%d,%d) at (%.2f,%.2f) %s", string(op.Text), op.Start, op.End, op.X, op.Y, dir)
}

// Recorder is a canvas which records drawing operations.
type Recorder struct {
	Ops []Op
}

// DrawRect is part of interface textline.Canvas.
func (r *Recorder) DrawRect(left, top, right, bottom float64, col color.RGBA) {
	r.Ops = append(r.Ops, Op{
		Kind:  RectOp,
		Left:  left,
		Top:   top,
		Right: right, Bottom: bottom,
		Color: col,
	})
}

// DrawTextRun is part of interface textline.Canvas.
func (r *Recorder) DrawTextRun(text []rune, start, end, ctxStart, ctxEnd int, x, y float64, rtl bool,
	p *textline.Paint) {
	//
	run := make([]rune, end-start)
	copy(run, text[start:end])
	r.Ops = append(r.Ops, Op{
		Kind:     TextOp,
		Text:     run,
		Start:    start,
		End:      end,
		CtxStart: ctxStart,
		CtxEnd:   ctxEnd,
		X:        x,
		Y:        y,
		RTL:      rtl,
		Paint:    *p,
		Color:    p.Color,
	})
}

// Reset clears the recording.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// Count returns the number of recorded operations of a kind.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Replay draws the recorded operations onto c, in order.
func (r *Recorder) Replay(c textline.Canvas) {
	for _, op := range r.Ops {
		switch op.Kind {
		case RectOp:
			c.DrawRect(op.Left, op.Top, op.Right, op.Bottom, op.Color)
		case TextOp:
			p := op.Paint
			// op.Text holds the run only, so offsets shift by op.Start
			ctxStart, ctxEnd := max(op.CtxStart-op.Start, 0), min(op.CtxEnd-op.Start, len(op.Text))
			c.DrawTextRun(op.Text, 0, len(op.Text), ctxStart, ctxEnd, op.X, op.Y, op.RTL, &p)
		}
	}
}

func (r *Recorder) String() string {
	var b strings.Builder
	for i, op := range r.Ops {
		fmt.Fprintf(&b, "%3d %s\n", i, op)
	}
	return b.String()
}
