package grapheme

import (
	"context"
	"fmt"

	"github.com/go-text/typesetting/segmenter"
	pool "github.com/jolestar/go-commons-pool"
)

// Breaker finds grapheme cluster boundaries within a window of text.
type Breaker struct {
	seg    segmenter.Segmenter
	bounds []int
}

// NewBreaker creates a grapheme breaker.
func NewBreaker() *Breaker {
	return &Breaker{bounds: make([]int, 0, 32)}
}

// Boundaries returns the cluster boundaries of text[start:end], including
// start and end. Boundaries are indices into text. The result is valid up to
// the next call of a method of b.
func (b *Breaker) Boundaries(text []rune, start, end int) []int {
	if start < 0 || end < start || end > len(text) {
		panic(fmt.Sprintf("grapheme: window [%d, %d) out of text bounds [0, %d)", start, end, len(text)))
	}
	b.bounds = b.bounds[:0]
	if start == end {
		return append(b.bounds, start)
	}
	b.seg.Init(text[start:end])
	it := b.seg.GraphemeIterator()
	for it.Next() {
		b.bounds = append(b.bounds, start+it.Grapheme().Offset)
	}
	b.bounds = append(b.bounds, end)
	return b.bounds
}

// After returns the first cluster boundary after offset, within the window
// text[start:end]. Offsets at or beyond end yield end.
func (b *Breaker) After(text []rune, start, end, offset int) int {
	if offset >= end {
		return end
	}
	for _, pos := range b.Boundaries(text, start, end) {
		if pos > offset {
			return pos
		}
	}
	return end
}

// Before returns the last cluster boundary before offset, within the window
// text[start:end]. Offsets at or before start yield start.
func (b *Breaker) Before(text []rune, start, end, offset int) int {
	if offset <= start {
		return start
	}
	bounds := b.Boundaries(text, start, end)
	for i := len(bounds) - 1; i >= 0; i-- {
		if bounds[i] < offset {
			return bounds[i]
		}
	}
	return start
}

// Package-level functions borrow breakers from a small pool.
var breakers *pool.ObjectPool

func init() {
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			return NewBreaker(), nil
		})
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = -1 // infinity
	config.MaxIdle = 4
	config.BlockWhenExhausted = false
	breakers = pool.NewObjectPool(context.Background(), factory, config)
}

func borrow() *Breaker {
	o, err := breakers.BorrowObject(context.Background())
	if err != nil {
		tracer().Errorf("grapheme: cannot borrow breaker: %v", err)
		return NewBreaker()
	}
	return o.(*Breaker)
}

func release(b *Breaker) {
	_ = breakers.ReturnObject(context.Background(), b)
}

// After returns the first cluster boundary after offset within
// text[start:end].
func After(text []rune, start, end, offset int) int {
	b := borrow()
	defer release(b)
	return b.After(text, start, end, offset)
}

// Before returns the last cluster boundary before offset within
// text[start:end].
func Before(text []rune, start, end, offset int) int {
	b := borrow()
	defer release(b)
	return b.Before(text, start, end, offset)
}
