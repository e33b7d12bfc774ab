package textline

import (
	"fmt"
	"image/color"
)

// HyphenEdit tells a shaper to insert or replace glyphs at the start or at
// the end of a line, e.g. to draw a hyphen after a broken word.
type HyphenEdit uint8

// Hyphen edit flags. The low nibble is reserved for end-of-line edits,
// the high nibble for start-of-line edits.
const (
	HyphenEndOfLine   HyphenEdit = 0x01 // insert a hyphen at the end of the line
	HyphenReplaceEnd  HyphenEdit = 0x02 // replace the last character with a hyphen
	HyphenStartOfLine HyphenEdit = 0x10 // insert a hyphen at the start of the line

	HyphenMaskEndOfLine   HyphenEdit = 0x0f
	HyphenMaskStartOfLine HyphenEdit = 0xf0
)

// Paint holds the attributes used for shaping and drawing a piece of text.
//
// Paint is a value type. Copying a paint is the way to derive a modified paint
// from a base paint, and two paints have equal attributes iff they are
// equal values.
type Paint struct {
	Typeface      string     // name of a typeface known to the Shaper
	Size          float64    // text size in pixels
	Color         color.RGBA // foreground color
	BgColor       color.RGBA // background color; fully transparent means no background
	BaselineShift float64    // vertical shift of the baseline, positive is downwards
	WordSpacing   float64    // extra advance for every U+0020 space
	HyphenEdit    HyphenEdit // hyphen edit flags

	// decorations
	Underline          bool       // draw the default underline
	StrikeThru         bool       // draw a strike-through line
	UnderlineColor     color.RGBA // color of an additional, custom underline
	UnderlineThickness float64    // thickness of the custom underline
}

// DefaultPaint returns a black 16 pixel paint with no typeface name.
func DefaultPaint() Paint {
	return Paint{
		Size:  16,
		Color: color.RGBA{A: 0xff},
	}
}

// HasBackground is true if p paints a background rectangle.
func (p *Paint) HasBackground() bool {
	return p.BgColor.A != 0
}

// HasCustomUnderline is true if p carries an underline with a custom color.
func (p *Paint) HasCustomUnderline() bool {
	return p.UnderlineColor.A != 0
}

// EqualAttributes reports whether p and o would shape and draw text
// identically.
func (p *Paint) EqualAttributes(o *Paint) bool {
	return *p == *o
}

func (p *Paint) String() string {
	return fmt.Sprintf("paint{%q %.1fpx fg=%v}", p.Typeface, p.Size, p.Color)
}
