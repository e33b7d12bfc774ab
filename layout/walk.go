package layout

// segment is a piece of a directional run which contains no tab. Segments
// are produced in visual order.
type segment struct {
	start, end int  // line-relative
	rtl        bool // direction of the run
	tab        bool // segment is terminated by a tab character at end
	needWidth  bool // a segment follows, so drawing needs the width of this one
}

// walk splits the run table of the line into segments. Runs starting beyond
// the end of the line terminate the walk, run limits are clipped to the
// line length. If the line has tabs, runs are split at every tab character.
func (l *Line) walk() []segment {
	l.segments = l.segments[:0]
	runs := l.dirs.Runs
	for i, run := range runs {
		if run.Start > l.length {
			break
		}
		limit := run.Limit()
		if limit > l.length {
			limit = l.length
		}
		segstart := run.Start
		j := limit
		if l.hasTabs {
			j = run.Start
		}
		for ; j <= limit; j++ {
			if j < limit && l.chars[j] != '\t' {
				continue
			}
			l.segments = append(l.segments, segment{
				start:     segstart,
				end:       j,
				rtl:       run.IsRTL(),
				tab:       j < limit,
				needWidth: i != len(runs)-1 || j != l.length,
			})
			segstart = j + 1
		}
	}
	return l.segments
}

// sign returns +1 or -1 for the paragraph direction.
func (l *Line) sign() float64 {
	return float64(l.dir)
}

// tabAfter snaps a signed position h to the next tab stop.
func (l *Line) tabAfter(h float64) float64 {
	return l.sign() * l.NextTab(h*l.sign())
}
