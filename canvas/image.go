package canvas

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"sync"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/npillmayer/textline"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Faces maps typeface names of paints to fonts.
type Faces struct {
	mx       sync.Mutex
	fonts    map[string]*Typeface
	fallback string
}

// Typeface is a font parsed for shaping and for loading glyph outlines.
// Glyph IDs of both agree, as they are parsed from the same data.
type Typeface struct {
	Name     string
	shaping  *gtfont.Font
	outlines *sfnt.Font
}

// NewFaces creates a face registry pre-loaded with the Go fonts, named
// "Go", "Go Bold", "Go Italic" and "Go Mono". "Go" is the fallback for
// unknown typeface names.
func NewFaces() *Faces {
	fs := &Faces{
		fonts:    make(map[string]*Typeface),
		fallback: "Go",
	}
	for name, ttf := range map[string][]byte{
		"Go":        goregular.TTF,
		"Go Bold":   gobold.TTF,
		"Go Italic": goitalic.TTF,
		"Go Mono":   gomono.TTF,
	} {
		if err := fs.Add(name, ttf); err != nil {
			panic(err) // Go fonts are known to parse
		}
	}
	return fs
}

// Add parses an OpenType font and registers it under name. Clients
// measuring with a shaping.Shaper should register the same data under the
// same name there.
func (fs *Faces) Add(name string, data []byte) error {
	outlines, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("canvas: cannot parse font %q: %w", name, err)
	}
	face, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("canvas: cannot parse font %q for shaping: %w", name, err)
	}
	fs.mx.Lock()
	defer fs.mx.Unlock()
	fs.fonts[name] = &Typeface{Name: name, shaping: face.Font, outlines: outlines}
	return nil
}

// Typeface returns the typeface of p, or the fallback if the typeface name
// of p is unknown.
func (fs *Faces) Typeface(p *textline.Paint) *Typeface {
	fs.mx.Lock()
	defer fs.mx.Unlock()
	if tf, ok := fs.fonts[p.Typeface]; ok {
		return tf
	}
	return fs.fonts[fs.fallback]
}

// Image is a canvas drawing onto an RGBA image. Text runs are shaped with
// HarfBuzz and their glyph outlines are filled with a vector rasterizer.
// An Image is not safe for concurrent use.
type Image struct {
	img   *image.RGBA
	faces *Faces
	rast  *vector.Rasterizer
	hb    shaping.HarfbuzzShaper
	buf   sfnt.Buffer
	lang  language.Language
}

// NewImage creates an image canvas of the given size, filled with a
// background color. If faces is nil, the Go fonts are used.
func NewImage(width, height int, background color.RGBA, faces *Faces) *Image {
	if faces == nil {
		faces = NewFaces()
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	return &Image{
		img:   img,
		faces: faces,
		rast:  vector.NewRasterizer(width, height),
		lang:  language.NewLanguage("en"),
	}
}

// SetLanguage sets the language used for shaping, as a BCP 47 tag.
func (c *Image) SetLanguage(tag string) {
	c.lang = language.NewLanguage(tag)
}

// RGBA returns the underlying image.
func (c *Image) RGBA() *image.RGBA {
	return c.img
}

// DrawRect is part of interface textline.Canvas.
func (c *Image) DrawRect(left, top, right, bottom float64, col color.RGBA) {
	if right < left {
		left, right = right, left
	}
	if bottom < top {
		top, bottom = bottom, top
	}
	b := c.img.Bounds()
	c.rast.Reset(b.Dx(), b.Dy())
	c.rast.DrawOp = draw.Over
	c.rast.MoveTo(float32(left), float32(top))
	c.rast.LineTo(float32(right), float32(top))
	c.rast.LineTo(float32(right), float32(bottom))
	c.rast.LineTo(float32(left), float32(bottom))
	c.rast.ClosePath()
	c.rast.Draw(c.img, b, image.NewUniform(col), image.Point{})
}

// DrawTextRun is part of interface textline.Canvas. The run is shaped in
// its context and the resulting glyphs are drawn from left to right at the
// positions HarfBuzz reports, so ligatures and kerning match the advances of
// a shaping.Shaper using the same font. Word spacing of p is added after
// every glyph of a U+0020.
func (c *Image) DrawTextRun(text []rune, start, end, ctxStart, ctxEnd int, x, y float64, rtl bool,
	p *textline.Paint) {
	//
	if start >= end {
		return
	}
	tf := c.faces.Typeface(p)
	dir := di.DirectionLTR
	if rtl {
		dir = di.DirectionRTL
	}
	ppem := fixed.Int26_6(math.Round(p.Size * 64))
	out := c.hb.Shape(shaping.Input{
		Text:      text[ctxStart:ctxEnd],
		RunStart:  start - ctxStart,
		RunEnd:    end - ctxStart,
		Direction: dir,
		Face:      gtfont.NewFace(tf.shaping),
		Size:      ppem,
		Script:    scriptOf(text[start:end]),
		Language:  c.lang,
	})
	b := c.img.Bounds()
	c.rast.Reset(b.Dx(), b.Dy())
	c.rast.DrawOp = draw.Over
	pen, inked := x, false
	for _, g := range out.Glyphs {
		r := text[ctxStart+g.ClusterIndex]
		if r != '\ufeff' && r != '\ufffc' && r != '\t' {
			gx := pen + fixedToFloat(g.XOffset)
			gy := y - fixedToFloat(g.YOffset) // HarfBuzz offsets grow upwards
			if c.addOutline(tf, sfnt.GlyphIndex(g.GlyphID), ppem, gx, gy) {
				inked = true
			}
		}
		pen += fixedToFloat(g.Advance)
		if r == ' ' {
			pen += p.WordSpacing
		}
	}
	T().Debugf("canvas: drew %d glyphs for [%d, %d) in %s", len(out.Glyphs), start, end, tf.Name)
	if inked {
		c.rast.ClosePath()
		c.rast.Draw(c.img, b, image.NewUniform(p.Color), image.Point{})
	}
}

// addOutline adds the outline of a glyph with its origin at (x, y) to the
// rasterizer. It reports whether the glyph has any contours.
func (c *Image) addOutline(tf *Typeface, gid sfnt.GlyphIndex, ppem fixed.Int26_6, x, y float64) bool {
	segments, err := tf.outlines.LoadGlyph(&c.buf, gid, ppem, nil)
	if err != nil {
		T().Debugf("canvas: cannot load glyph %d of %s: %v", gid, tf.Name, err)
		return false
	}
	at := func(pt fixed.Point26_6) (float32, float32) {
		return float32(x + fixedToFloat(pt.X)), float32(y + fixedToFloat(pt.Y))
	}
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			c.rast.MoveTo(at(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			c.rast.LineTo(at(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			bx, by := at(seg.Args[0])
			cx, cy := at(seg.Args[1])
			c.rast.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := at(seg.Args[0])
			cx, cy := at(seg.Args[1])
			dx, dy := at(seg.Args[2])
			c.rast.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	return len(segments) != 0
}

// scriptOf returns the script of the first character of a run which is not
// common or inherited.
func scriptOf(runes []rune) language.Script {
	for _, r := range runes {
		switch script := language.LookupScript(r); script {
		case language.Common, language.Inherited, language.Unknown:
			continue
		default:
			return script
		}
	}
	return language.Latin
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// WritePNG encodes the image as PNG.
func (c *Image) WritePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}
