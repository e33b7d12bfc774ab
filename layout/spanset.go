package layout

import "github.com/npillmayer/textline"

// spanSet caches the non-empty spans of one category which intersect a
// window of the source text.
type spanSet struct {
	spans []textline.Span
}

// init collects the spans of category cat intersecting [start, limit).
// If filter is non-nil, only spans with styles accepted by filter are kept.
func (set *spanSet) init(spanned textline.Spanned, start, limit int, cat textline.Category,
	filter func(textline.Style) bool) {
	//
	set.spans = set.spans[:0]
	for _, s := range spanned.Spans(start, limit, cat) {
		if s.Empty() || s.Style == nil {
			continue
		}
		if filter != nil && !filter(s.Style) {
			continue
		}
		set.spans = append(set.spans, s)
	}
}

func (set *spanSet) len() int {
	return len(set.spans)
}

// nextTransition returns the first position in (start, limit) where one of
// the spans starts or ends, or limit.
func (set *spanSet) nextTransition(start, limit int) int {
	for _, s := range set.spans {
		if s.Start > start && s.Start < limit {
			limit = s.Start
		}
		if s.End > start && s.End < limit {
			limit = s.End
		}
	}
	return limit
}

// hasSpansIntersecting is true if any span covers a character of [start, end).
func (set *spanSet) hasSpansIntersecting(start, end int) bool {
	for _, s := range set.spans {
		if s.Intersects(start, end) {
			return true
		}
	}
	return false
}

// recycle drops references to styles but keeps the storage.
func (set *spanSet) recycle() {
	for i := range set.spans {
		set.spans[i] = textline.Span{}
	}
	set.spans = set.spans[:0]
}
