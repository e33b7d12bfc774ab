package main

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/textline"
	"github.com/npillmayer/textline/bidi"
	"github.com/npillmayer/textline/canvas"
	"github.com/npillmayer/textline/layout"
	"github.com/npillmayer/textline/shaping"
	"github.com/npillmayer/textline/uax11"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

// tracer traces to the global core tracer
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

func main() {
	gtrace.CoreTracer = gologadapter.New()
	tracer().SetTraceLevel(tracing.LevelError)

	commando.
		SetExecutableName("textline").
		SetVersion("v0.1.0").
		SetDescription("CLI for measuring, caret movement and rendering of a single line of text.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("measure").
		SetDescription("Print leading and trailing edges for every offset of a line, and its metrics.").
		SetShortDescription("measure a line").
		AddArgument("text", "line of text; Go escapes like \\t are interpreted", "").
		AddFlag("direction,d", "paragraph direction: ltr|rtl|auto", commando.String, "auto").
		AddFlag("font,f", "OpenType font file (default: Go regular)", commando.String, "-").
		AddFlag("size,s", "text size in pixels", commando.Int, 32).
		AddFlag("justify,j", "justify to width in pixels", commando.String, "-").
		AddFlag("cells,c", "measure fixed pitch character cells (UAX#11)", commando.Bool, nil).
		AddFlag("testing,t", "treat upper case letters as right-to-left", commando.Bool, nil).
		SetAction(runMeasureCommand)

	commando.
		Register("caret").
		SetDescription("Print the offsets reached by moving the caret left and right from every offset.").
		SetShortDescription("caret movement").
		AddArgument("text", "line of text; Go escapes like \\t are interpreted", "").
		AddFlag("direction,d", "paragraph direction: ltr|rtl|auto", commando.String, "auto").
		AddFlag("font,f", "OpenType font file (default: Go regular)", commando.String, "-").
		AddFlag("size,s", "text size in pixels", commando.Int, 32).
		AddFlag("cells,c", "measure fixed pitch character cells (UAX#11)", commando.Bool, nil).
		AddFlag("testing,t", "treat upper case letters as right-to-left", commando.Bool, nil).
		SetAction(runCaretCommand)

	commando.
		Register("render").
		SetDescription("Render a line of text to a PNG image.").
		SetShortDescription("render to image").
		AddArgument("text", "line of text; Go escapes like \\t are interpreted", "").
		AddFlag("direction,d", "paragraph direction: ltr|rtl|auto", commando.String, "auto").
		AddFlag("font,f", "OpenType font file (default: Go regular)", commando.String, "-").
		AddFlag("size,s", "text size in pixels", commando.Int, 32).
		AddFlag("justify,j", "justify to width in pixels", commando.String, "-").
		AddFlag("cells,c", "measure fixed pitch character cells (UAX#11)", commando.Bool, nil).
		AddFlag("testing,t", "treat upper case letters as right-to-left", commando.Bool, nil).
		AddFlag("underline,u", "underline the line", commando.Bool, nil).
		AddFlag("margin,m", "image margin in pixels", commando.Int, 8).
		AddFlag("output,o", "output PNG file", commando.String, "textline.png").
		SetAction(runRenderCommand)

	commando.Parse(nil)
}

// --- Commands --------------------------------------------------------------

func runMeasureCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setup := mustSetupLine(args, flags)
	defer layout.Recycle(setup.line)
	l := setup.line
	trailing := make([]bool, l.Len()+1)
	leading := l.MeasureAllOffsets(trailing, nil)
	for i := range trailing {
		trailing[i] = true
	}
	var fm textline.FontMetrics
	trailingEdges := l.MeasureAllOffsets(trailing, &fm)
	data := pterm.TableData{{"offset", "char", "leading", "trailing"}}
	for i := 0; i <= l.Len(); i++ {
		data = append(data, []string{
			strconv.Itoa(i),
			charAt(setup.text, i),
			fmt.Sprintf("%.2f", leading[i]),
			fmt.Sprintf("%.2f", trailingEdges[i]),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Printf("width:   %.2f\n", l.Metrics(nil))
	pterm.Printf("metrics: %v\n", fm)
	if l.AddedWidth() != 0 {
		pterm.Printf("justification adds %.2f per space\n", l.AddedWidth())
	}
}

func runCaretCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setup := mustSetupLine(args, flags)
	defer layout.Recycle(setup.line)
	l := setup.line
	data := pterm.TableData{{"offset", "char", "left", "right"}}
	for i := 0; i <= l.Len(); i++ {
		data = append(data, []string{
			strconv.Itoa(i),
			charAt(setup.text, i),
			strconv.Itoa(l.OffsetToLeftRightOf(i, true)),
			strconv.Itoa(l.OffsetToLeftRightOf(i, false)),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Printf("runs: %v\n", setup.dirs)
}

func runRenderCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setup := mustSetupLine(args, flags)
	defer layout.Recycle(setup.line)
	margin := float64(mustFlagInt(flags["margin"], "margin"))
	outPath, err := flags["output"].GetString()
	if err != nil {
		fatalf("invalid --output flag: %v", err)
	}
	outPath = strings.TrimSpace(outPath)
	if outPath == "" {
		fatalf("output path is empty")
	}
	var fm textline.FontMetrics
	w := math.Abs(setup.line.Metrics(&fm))
	if setup.justify > w {
		w = setup.justify
	}
	width := int(math.Ceil(w + 2*margin))
	height := int(math.Ceil(fm.Bottom - fm.Top + 2*margin))
	img := canvas.NewImage(width, height, color.RGBA{255, 255, 255, 255}, setup.faces)
	top := margin
	baseline := top - fm.Top
	x := margin
	if setup.dir.IsRTL() {
		x = float64(width) - margin
	}
	setup.line.Draw(img, x, top, baseline, top+fm.Bottom-fm.Top)
	if err := writePNG(img, outPath); err != nil {
		fatalf("render failed: %v", err)
	}
	pterm.Info.Printf("wrote %s (%dx%d)\n", outPath, width, height)
}

// --- Line setup ------------------------------------------------------------

type lineSetup struct {
	text    []rune
	dir     textline.Direction
	dirs    *textline.Directions
	paint   textline.Paint
	faces   *canvas.Faces
	line    *layout.Line
	justify float64
}

// mustSetupLine loads a line from the command arguments into a pooled
// layout engine.
func mustSetupLine(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) *lineSetup {
	if flagIsSet(flags, "verbose") {
		tracer().SetTraceLevel(tracing.LevelDebug)
	}
	setup := &lineSetup{
		text:  []rune(unescape(args["text"].Value)),
		paint: textline.DefaultPaint(),
		faces: canvas.NewFaces(),
	}
	setup.paint.Size = float64(mustFlagInt(flags["size"], "size"))
	if setup.paint.Size <= 0 {
		fatalf("--size must be > 0")
	}
	if flagIsSet(flags, "underline") {
		setup.paint.Underline = true
	}
	var opts []bidi.Option
	if flagIsSet(flags, "testing") {
		opts = append(opts, bidi.Testing(true))
	}
	var err error
	if setup.dir, err = parseDirection(flags["direction"], setup.text, opts); err != nil {
		fatalf("%v", err)
	}
	if setup.dirs, err = bidi.ResolveLine(setup.text, 0, len(setup.text), setup.dir, opts...); err != nil {
		fatalf("%v", err)
	}
	var shaper textline.Shaper
	if flagIsSet(flags, "cells") {
		shaper = uax11.NewCellShaper(uax11.ContextFromEnvironment())
		setup.paint.Typeface = "Go Mono"
	} else {
		s := shaping.New()
		if err := loadFont(flags["font"], s, setup); err != nil {
			fatalf("%v", err)
		}
		shaper = s
	}
	setup.line = layout.Obtain()
	setup.line.Set(layout.Params{
		Paint:      &setup.paint,
		Shaper:     shaper,
		Text:       setup.text,
		Limit:      len(setup.text),
		Dir:        setup.dir,
		Directions: setup.dirs,
		HasTabs:    strings.ContainsRune(string(setup.text), '\t'),
	})
	if flag, ok := flags["justify"]; ok {
		if setup.justify, err = parseJustify(flag); err != nil {
			fatalf("%v", err)
		}
		if setup.justify > 0 {
			setup.line.Justify(setup.justify)
		}
	}
	tracer().Debugf("line %q: direction %v, runs %v", string(setup.text), setup.dir, setup.dirs)
	return setup
}

// loadFont registers a font file with the shaper and the image faces.
func loadFont(flag commando.FlagValue, s *shaping.Shaper, setup *lineSetup) error {
	path, err := flag.GetString()
	if err != nil {
		return fmt.Errorf("invalid --font flag: %w", err)
	}
	path = strings.TrimSpace(path)
	if path == "" || path == "-" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read font %s: %w", path, err)
	}
	name := filepath.Base(path)
	if err := s.AddFont(name, data); err != nil {
		return err
	}
	if err := setup.faces.Add(name, data); err != nil {
		return err
	}
	setup.paint.Typeface = name
	return nil
}

// --- Parsing flags and arguments -------------------------------------------

func unescape(s string) string {
	if u, err := strconv.Unquote(`"` + strings.ReplaceAll(s, `"`, `\"`) + `"`); err == nil {
		return u
	}
	return s
}

func parseDirection(flag commando.FlagValue, text []rune, opts []bidi.Option) (textline.Direction, error) {
	s, err := flag.GetString()
	if err != nil {
		return textline.LeftToRight, fmt.Errorf("invalid --direction flag: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ltr", "left-to-right":
		return textline.LeftToRight, nil
	case "rtl", "right-to-left":
		return textline.RightToLeft, nil
	case "", "auto":
		dir, _ := bidi.ParagraphDirection(text, textline.LeftToRight, opts...)
		return dir, nil
	}
	return textline.LeftToRight, fmt.Errorf("unsupported direction %q (expected ltr|rtl|auto)", s)
}

func parseJustify(flag commando.FlagValue) (float64, error) {
	s, err := flag.GetString()
	if err != nil {
		return 0, fmt.Errorf("invalid --justify flag: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0, nil
	}
	w, err := strconv.ParseFloat(s, 64)
	if err != nil || w < 0 {
		return 0, fmt.Errorf("invalid justification width %q", s)
	}
	return w, nil
}

func charAt(text []rune, i int) string {
	if i >= len(text) {
		return ""
	}
	r := text[i]
	if r < ' ' || r > 0x7e {
		return fmt.Sprintf("%U", r)
	}
	return string(r)
}

func writePNG(img *canvas.Image, outPath string) error {
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	defer f.Close()
	return img.WritePNG(f)
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

// flagIsSet is true for a boolean flag given on the command line. Flags not
// registered for a command are false.
func flagIsSet(flags map[string]commando.FlagValue, name string) bool {
	flag, ok := flags[name]
	if !ok {
		return false
	}
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	pterm.Error.Printf(format+"\n", args...)
	os.Exit(1)
}
