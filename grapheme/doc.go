/*
Package grapheme finds grapheme cluster boundaries, following Unicode Annex #29.

Grapheme clusters are “user perceived characters”. Carets never stop inside
of a cluster, and fixed-pitch layouts assign cells to clusters rather than
to code-points. Boundaries are computed with the grapheme segmenter of
github.com/go-text/typesetting.

Typical Usage with a Breaker

Clients create a breaker and ask for the boundary after or before a position
in a window of text:

  b := grapheme.NewBreaker()
  next := b.After(text, ctxStart, ctxEnd, offset)
  prev := b.Before(text, ctxStart, ctxEnd, offset)

Breakers keep their buffers between calls and are not safe for concurrent
use. Package-level functions After and Before borrow breakers from a pool.

Grapheme Strings

This package provides an additional convenience type `grapheme.String`.
Grapheme strings are a read-only data structure and not intended for large
texts, but rather for small to medium-sized strings.

	s := grapheme.StringFromString("世界")
	fmt.Printf("number of graphemes: %s", s.Len())                      // => 2
	fmt.Printf("number of bytes for 2nd grapheme: %d", len(s.Nth(1)))   // => 3

____________________________________________________________________________

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grapheme

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to textline.grapheme .
func tracer() tracing.Trace {
	return tracing.Select("textline.grapheme")
}
