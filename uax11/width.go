package uax11

import (
	"unicode"
	"unicode/utf8"

	jj "github.com/cloudfoundry/jibber_jabber"
	"github.com/npillmayer/textline/grapheme"
	"golang.org/x/text/language"
	"golang.org/x/text/width"
)

// Category is one of 6 char categories as defined in UAX#11.
type Category int8

// East_Asian_Width properties
const (
	N  Category = iota // Neutral (Not East Asian)
	A                  // East Asian Ambiguous
	W                  // East Asian Wide
	Na                 // East Asian Narrow
	H                  // East Asian Halfwidth
	F                  // East Asian Fullwidth
)

func (c Category) String() string {
	switch c {
	case A:
		return "A"
	case W:
		return "W"
	case Na:
		return "Na"
	case H:
		return "H"
	case F:
		return "F"
	}
	return "N"
}

// WidthCategory returns the width category of a single rune as proposed by the UAX#11
// standard. Please note that this is most probably not what clients will want to use in
// full-grown international applications, as it is preferable to work on graphemes
// rather than on runes. This function is nevertheless provided as a low
// level API function corresponding to UAX#11 section 6.
//
// Returns one of N, A, Na, W, H, F.
func WidthCategory(r rune) Category {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianAmbiguous:
		return A
	case width.EastAsianWide:
		return W
	case width.EastAsianNarrow:
		return Na
	case width.EastAsianHalfwidth:
		return H
	case width.EastAsianFullwidth:
		return F
	}
	if unicode.Is(_CJK_Default_W, r) {
		return W
	}
	// UAX#11:
	//  - All code points, assigned or unassigned, that are not listed
	//      explicitly are given the value "N".
	return N
}

// Context represents information about the typesetting environment.
//
// From UAX#11:
// The term context as used here includes extra information such as explicit
// markup, knowledge of the source code page, font information, or language and
// script identification
type Context struct {
	ForceEastAsian bool            // force East Asian context
	Script         language.Script // ISO 15924 script identifier
	Locale         string          // ISO 639/3166 locale string
	resolve        resolver
}

// EastAsianContext is a context for East Asian languages.
var EastAsianContext = makeEastAsianContext()

// LatinContext is a context for western languages.
var LatinContext = makeLatinContext()

func makeEastAsianContext() *Context {
	ctx := &Context{
		ForceEastAsian: true,
		Script:         language.MustParseScript("Hant"),
		Locale:         "zh-Hant",
		resolve:        resolveToWide,
	}
	return ctx
}

func makeLatinContext() *Context {
	ctx := &Context{
		ForceEastAsian: false,
		Script:         language.MustParseScript("Latn"),
		Locale:         "en-US",
		resolve:        resolveToNarrow,
	}
	return ctx
}

// resolver decides on the width of ambiguous characters.
type resolver func(Category) Category

func resolveToNarrow(cat Category) Category {
	if cat == A {
		return Na
	}
	return cat
}

func resolveToWide(cat Category) Category {
	if cat == A {
		return W
	}
	return cat
}

// resolver returns the resolver of a context. Contexts created by clients
// get theirs from the locale or the script, on first use.
func (ctx *Context) resolver() resolver {
	if ctx == nil {
		return resolveToNarrow
	}
	if ctx.ForceEastAsian {
		return resolveToWide
	}
	if ctx.resolve == nil {
		lang := language.Make(ctx.Locale)
		script := ctx.Script
		if script == (language.Script{}) {
			script, _ = lang.Script()
			ctx.Script = script
		}
		ctx.resolve = findResolver(script, lang)
	}
	return ctx.resolve
}

func findResolver(script language.Script, lang language.Tag) resolver {
	scrcode := script.String()
	switch scrcode {
	case
		// East Asian
		"Bopo", "Hanb", "Hani", "Hans",
		"Hant", "Hang", "Hira", "Kana",
		"Lana", "Kitl", "Kits", "Nkdb",
		"Nkgb", "Plrd",
		// South East Asian
		"Batk", "Beng", "Bugi", "Mymr",
		"Cham", "Java", "Khmr", "Laoo",
		"Lisu", "Mtei", "Thai", "Yiii",
		"Bali", "Khar", "Rjng", "Roro",
		"Tglg", "Wole", "Buhd", "Tagb":
		return resolveToWide
	}
	_, _, confidence := eaMatch.Match(lang)
	if confidence == language.No {
		return resolveToNarrow
	}
	return resolveToWide
}

var eaMatch = language.NewMatcher([]language.Tag{
	language.Chinese, // The first language is used as fallback.
	language.Japanese,
	language.Korean,
	language.Vietnamese,
	language.Thai,
	language.Mongolian,
	language.Burmese,
	language.Khmer,
})

// ContextFromEnvironment creates a context for the locale of the user, as
// found in the environment. If no locale can be detected, "en-US" is used.
func ContextFromEnvironment() *Context {
	userLocale, err := jj.DetectIETF()
	if err != nil {
		T().Errorf(err.Error())
		userLocale = "en-US"
		T().Infof("UAX#11 sets default user locale %v", userLocale)
	} else {
		T().Infof("UAX#11 detected user locale %v", userLocale)
	}
	lang := language.Make(userLocale)
	script, _ := lang.Script()
	ctx := &Context{
		Script:  script,
		Locale:  userLocale,
		resolve: findResolver(script, lang),
	}
	return ctx
}

// Width returns the width of a grapheme, given as a byte slice, in terms of
// `en`s, where 1en stands for 1/2em, i.e. half a full width character.
// If grphm is invalid or just a zero width rune, a width of 0 is returned.
//
// If an empty context is given, LatinContext is assumed.
//
// Returns either 0, 1 (narrow character) or 2 (wide character).
func Width(grphm []byte, context *Context) int {
	if len(grphm) == 0 || !utf8.Valid(grphm) {
		return 0
	}
	var buf [8]rune
	runes := buf[:0]
	for len(grphm) > 0 {
		r, size := utf8.DecodeRune(grphm)
		runes = append(runes, r)
		grphm = grphm[size:]
	}
	return clusterWidth(runes, context)
}

// StringWidth returns the width of a grapheme string in `en`s.
func StringWidth(s grapheme.String, context *Context) int {
	w := 0
	for i := 0; i < s.Len(); i++ {
		w += Width([]byte(s.Nth(i)), context)
	}
	return w
}

// clusterWidth returns the number of cells of a grapheme cluster: 0 for
// clusters starting with a mark or format character, 2 for wide and
// fullwidth characters, emoji presentation sequences and flags.
func clusterWidth(cluster []rune, context *Context) int {
	if len(cluster) == 0 {
		return 0
	}
	first := cluster[0]
	if isZeroWidth(first) {
		return 0
	}
	if unicode.Is(unicode.Regional_Indicator, first) {
		return 2
	}
	for _, r := range cluster[1:] {
		if r == 0xfe0f { // VS16 selects emoji presentation
			return 2
		}
	}
	if context == nil {
		context = LatinContext
	}
	switch context.resolver()(WidthCategory(first)) {
	case W, F:
		return 2
	}
	return 1
}

func isZeroWidth(r rune) bool {
	return r == 0 || unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf, unicode.Cc) ||
		(r >= 0x1160 && r <= 0x11ff) // Hangul medial vowels and final consonants
}

// ---------------------------------------------------------------------------

// UAX#11:
//   - The unassigned code points in the following blocks default to "W":
//     CJK Unified Ideographs Extension A: U+3400..U+4DBF
//     CJK Unified Ideographs:             U+4E00..U+9FFF
//     CJK Compatibility Ideographs:       U+F900..U+FAFF
//   - All undesignated code points in Planes 2 and 3, whether inside or
//     outside of allocated blocks, default to "W":
//     Plane 2:                            U+20000..U+2FFFD
//     Plane 3:                            U+30000..U+3FFFD
var _CJK_Default_W = &unicode.RangeTable{
	R16: []unicode.Range16{
		{0x3400, 0x4dbf, 1},
		{0x4e00, 0x9fff, 1},
		{0xf900, 0xfaff, 1},
	},
	R32: []unicode.Range32{
		{0x20000, 0x2fffd, 1},
		{0x30000, 0x3fffd, 1},
	},
}
