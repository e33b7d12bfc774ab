package textline

import (
	"fmt"

	"golang.org/x/text/unicode/bidi"
)

// Direction is the direction of a paragraph: +1 for left-to-right and
// -1 for right-to-left. Signed widths are multiplied by it.
type Direction int8

// Paragraph directions
const (
	LeftToRight Direction = 1
	RightToLeft Direction = -1
)

// IsRTL is true for right-to-left paragraphs.
func (d Direction) IsRTL() bool {
	return d == RightToLeft
}

// Valid checks whether d is one of LeftToRight or RightToLeft.
func (d Direction) Valid() bool {
	return d == LeftToRight || d == RightToLeft
}

// Bidi converts d to the direction type of golang.org/x/text/unicode/bidi.
func (d Direction) Bidi() bidi.Direction {
	if d == RightToLeft {
		return bidi.RightToLeft
	}
	return bidi.LeftToRight
}

// DirectionOf converts a direction of package golang.org/x/text/unicode/bidi.
// Mixed and neutral directions are mapped to LeftToRight.
func DirectionOf(d bidi.Direction) Direction {
	if d == bidi.RightToLeft {
		return RightToLeft
	}
	return LeftToRight
}

func (d Direction) String() string {
	switch d {
	case LeftToRight:
		return "LTR"
	case RightToLeft:
		return "RTL"
	}
	return fmt.Sprintf("Direction(%d)", int8(d))
}

// Run is a directional run of a line: a maximal span of characters at the
// same embedding level. Start is relative to the start of the line.
type Run struct {
	Start  int
	Length int
	Level  uint8 // bidi embedding level; odd levels are right-to-left
}

// Limit returns the line-relative end of the run (exclusive).
func (r Run) Limit() int {
	return r.Start + r.Length
}

// IsRTL is true if the run has an odd embedding level.
func (r Run) IsRTL() bool {
	return r.Level&1 != 0
}

func (r Run) String() string {
	return fmt.Sprintf("[%d…%d]L%d", r.Start, r.Limit(), r.Level)
}

// Directions is a table of directional runs covering a line. Runs are stored
// in visual order starting at the paragraph's leading edge: from left to
// right for left-to-right paragraphs, from right to left for right-to-left
// paragraphs. Runs at the paragraph level thus appear in logical order.
type Directions struct {
	Runs []Run
}

// NewDirections creates a run table from a list of runs in visual order,
// starting at the leading edge.
func NewDirections(runs ...Run) *Directions {
	return &Directions{Runs: runs}
}

// AllLeftToRight is a run table with a single left-to-right run at level 0.
// The run length covers any line.
var AllLeftToRight = &Directions{Runs: []Run{{Start: 0, Length: RunLengthMask, Level: 0}}}

// AllRightToLeft is a run table with a single right-to-left run at level 1.
var AllRightToLeft = &Directions{Runs: []Run{{Start: 0, Length: RunLengthMask, Level: 1}}}

// Len returns the number of runs in the table.
func (dirs *Directions) Len() int {
	if dirs == nil {
		return 0
	}
	return len(dirs.Runs)
}

// Run returns the i-th run in visual order.
func (dirs *Directions) Run(i int) Run {
	return dirs.Runs[i]
}

// IsUniform reports whether the table consists of a single run of direction
// dir, which starts at the beginning of the line and covers at least length
// characters.
func (dirs *Directions) IsUniform(dir Direction, length int) bool {
	if dirs.Len() != 1 {
		return false
	}
	r := dirs.Runs[0]
	return r.Start == 0 && r.Length >= length && r.IsRTL() == dir.IsRTL()
}

func (dirs *Directions) String() string {
	if dirs == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v", dirs.Runs)
}

// Packed encoding of run tables, as used by platform text layouts:
// pairs of integers (start, length | level<<RunLevelShift).
const (
	RunLengthMask = 0x03ffffff
	RunLevelShift = 26
	RunLevelMask  = 0x3f
	RunRTLFlag    = 1 << RunLevelShift
)

// DecodeDirections unpacks a run table from its packed integer encoding.
// It returns an error for a table of odd length.
func DecodeDirections(packed []int) (*Directions, error) {
	if len(packed)%2 != 0 {
		return nil, fmt.Errorf("packed run table has odd length %d", len(packed))
	}
	dirs := &Directions{Runs: make([]Run, 0, len(packed)/2)}
	for i := 0; i < len(packed); i += 2 {
		dirs.Runs = append(dirs.Runs, Run{
			Start:  packed[i],
			Length: packed[i+1] & RunLengthMask,
			Level:  uint8((packed[i+1] >> RunLevelShift) & RunLevelMask),
		})
	}
	return dirs, nil
}

// Encode packs the run table into pairs of integers.
func (dirs *Directions) Encode() []int {
	packed := make([]int, 0, 2*dirs.Len())
	for _, r := range dirs.Runs {
		packed = append(packed, r.Start, r.Length&RunLengthMask|int(r.Level&RunLevelMask)<<RunLevelShift)
	}
	return packed
}
