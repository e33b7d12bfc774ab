/*
Package shaping measures text with OpenType fonts, using the HarfBuzz port
of github.com/go-text/typesetting.

Shaper implements textline.Shaper. Fonts are registered by typeface name;
the Go regular font is pre-registered as "Go" and serves as fallback for
unknown names.

	shaper := shaping.New()
	if err := shaper.AddFont("Noto Sans Hebrew", ttf); err != nil {
		...
	}

Advances are computed per glyph cluster. An offset inside of a cluster
spanning several characters, as with ligatures, is given a share of the
cluster's advance proportional to the characters left of it. Cursor
positions are never placed inside of a grapheme cluster.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>


*/
package shaping

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to a global core tracer
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}
