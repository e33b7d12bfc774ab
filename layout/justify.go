package layout

import (
	"math"

	"github.com/npillmayer/textline"
)

// Justify stretches the line to width by widening its stretchable spaces.
// Spaces at the end of the line are not stretched and not measured. If the
// rest of the line has no stretchable space, Justify does nothing.
//
// The extra width per space applies to every later call of Measure,
// Metrics, MeasureAllOffsets and Draw, until the next Set.
func (l *Line) Justify(width float64) {
	end := l.length
	for end > 0 && textline.IsLineEndSpace(l.text[l.start+end-1]) {
		end--
	}
	spaces := textline.CountStretchableSpaces(l.chars, 0, end)
	if spaces == 0 {
		return
	}
	w := math.Abs(l.Measure(end, false, nil))
	l.addedWidth = (width - w) / float64(spaces)
	T().Debugf("layout: justify to %.2f adds %.2f to each of %d spaces", width, l.addedWidth, spaces)
}
