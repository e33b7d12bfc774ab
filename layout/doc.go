/*
Package layout implements the layout engine for a single line of styled,
bidirectional text.

Typical Usage

Clients obtain a Line from a shared pool, load it with a line of text and
either draw it, measure it or move a caret through it.

  line := layout.Obtain()
  defer layout.Recycle(line)
  line.Set(layout.Params{
      Paint:      &paint,
      Shaper:     shaper,
      Text:       text,
      Start:      0,
      Limit:      len(text),
      Dir:        textline.LeftToRight,
      Directions: dirs,
  })
  width := line.Metrics(&fm)
  x := line.Measure(5, false, nil)
  next := line.OffsetToLeftRightOf(5, false)

Runs

The run table of a line is in visual order. Measurement and drawing walk
the runs from left to right, splitting runs at tab characters. Within a run
text is partitioned first by metric-affecting styles, then by character
styles. Adjacent pieces which resolve to equal paints are shaped and drawn
in one call, to avoid shaping seams at color changes.

Signed Widths

Widths are signed with respect to the paragraph direction: the distance
from the leading margin of a right-to-left paragraph to any offset is
negative. Width contributions of runs whose direction differs from the
paragraph direction are subtracted.

Carets

OffsetToLeftRightOf moves a caret visually. At a boundary between runs of
different embedding levels the caret belongs to the run with the lower
level. Moving off the start or the end of a line returns -1 or the line
length + 1, respectively; clients continue on the neighbouring line.

BSD License

Copyright (c) 2017–21, Norbert Pillmayer

All rights reserved.
Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package layout

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}
