package grapheme

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// String is a type to represent a graheme string, i.e. a sequence of
// “user perceived characters” as defined by Unicode.
// A grapheme string is a read-only data structure.
//
// Finding graphemes from a string (or array of bytes) is an operation with
// runtime complexiy O(N). Clients should not convert large texts into grapheme
// strings in one go, but rather operate on manageable fragments.
type String interface {
	Nth(int) string // return nth grapheme
	Len() int       // length of string in units of user perceived characters
}

// MaxByteLen is the maximum byte count a grapheme string may consist of.
const MaxByteLen int = 32766

// StringFromString creates a grapheme string from a Go string.
// As grapheme strings are not meant to be created for large amounts of text, but
// rather for manageable segments, s is not allowed to exceed MaxByteLen bytes.
//
// StringFromString will panic if a larger input string is given.
//
// Invalid UTF-8 in s is replaced by U+FFFD.
func StringFromString(s string) String {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "\uFFFD")
	}
	if len(s) < math.MaxUint8 {
		return makeShortString(s)
	} else if len(s) <= MaxByteLen {
		return makeMidString(s)
	}
	panic(fmt.Sprintf("grapheme.String may not be built from more than %d bytes, have %d",
		MaxByteLen, len(s)))
}

// StringFromBytes creates a grapheme string from an array of bytes. As grapheme
// strings are a read-only data structure, StringFromBytes will create a private copy
// of the input.
func StringFromBytes(b []byte) String {
	return StringFromString(string(b))
}

// byteBreaks returns the byte positions of the grapheme boundaries of s,
// starting with 0 and ending with len(s).
func byteBreaks(s string) []int {
	runes := []rune(s)
	b := borrow()
	defer release(b)
	bounds := b.Boundaries(runes, 0, len(runes))
	breaks := make([]int, 0, len(bounds))
	pos, i := 0, 0
	for _, bound := range bounds {
		for ; i < bound; i++ {
			pos += utf8.RuneLen(runes[i])
		}
		breaks = append(breaks, pos)
	}
	tracer().Debugf("grapheme breaks of %q at %v", s, breaks)
	return breaks
}

// --- Short version ---------------------------------------------------------

type shortString struct {
	content string
	breaks  []uint8
}

func makeShortString(s string) String {
	gstr := &shortString{content: s}
	if s == "" {
		return gstr
	}
	for _, br := range byteBreaks(s) {
		gstr.breaks = append(gstr.breaks, uint8(br))
	}
	return gstr
}

func (gstr *shortString) Nth(n int) string {
	if n < 0 || n > max(len(gstr.breaks)-2, 0) {
		panic(fmt.Sprintf("grapheme string index out of bounds, [%d] in [0:%d]",
			n, max(len(gstr.breaks)-2, 0)))
	} else if len(gstr.breaks) < 2 {
		return ""
	}
	l, r := gstr.breaks[n], gstr.breaks[n+1]
	return gstr.content[l:r]
}

func (gstr *shortString) Len() int {
	if len(gstr.breaks) < 2 {
		return 0
	}
	return len(gstr.breaks) - 1
}

// --- Mid version -----------------------------------------------------------

type midString struct {
	content string
	breaks  []uint16
}

func makeMidString(s string) String {
	gstr := &midString{content: s}
	for _, br := range byteBreaks(s) {
		gstr.breaks = append(gstr.breaks, uint16(br))
	}
	return gstr
}

func (gstr *midString) Nth(n int) string {
	if n < 0 || n > max(len(gstr.breaks)-2, 0) {
		panic(fmt.Sprintf("grapheme string index out of bounds, [%d] in [0:%d]",
			n, max(len(gstr.breaks)-2, 0)))
	} else if len(gstr.breaks) < 2 {
		return ""
	}
	l, r := gstr.breaks[n], gstr.breaks[n+1]
	return gstr.content[l:r]
}

func (gstr *midString) Len() int {
	if len(gstr.breaks) < 2 {
		return 0
	}
	return len(gstr.breaks) - 1
}
