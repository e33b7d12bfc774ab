/*
Package textline is about laying out a single line of styled,
bidirectional text.

Description

A line of text is handed to the layout engine as a slice of runes, a base
paint, optional style spans, a paragraph direction and a table of
directional runs. The run table is the output of a bidi resolver (see
sub-package bidi) and is already in visual order. From these inputs the
engine computes

  - visual segments (runs, further split at tab characters),
  - the signed horizontal advance from the leading margin to any offset,
  - the union of the font metrics of every styled piece of the line,
  - justification spacing,
  - caret movement to the left or to the right, honoring embedding levels,

and it draws the line onto a Canvas in left-to-right screen order.

Base package textline holds the vocabulary shared by all sub-packages:
runs and run tables, paints, styles and spans, font metrics, tab stops and
the two capabilities a client has to provide, a Shaper (measurement and
cursor positions of text runs) and a Canvas (drawing primitives).
The engine itself lives in sub-package layout.

Offsets are rune indices. A run table covers the line in line-relative
offsets, style spans are given in source text offsets.

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
package textline

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// CT traces to the core-tracer.
func CT() tracing.Trace {
	return gtrace.CoreTracer
}
