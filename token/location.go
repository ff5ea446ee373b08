package token

import "fmt"

// Location is the source span of a token or an IR node. Start is
// inclusive of the first character of the span; End is the position
// immediately following the last character, the same convention a Go slice
// index uses.
//
// IsSynthetic marks a Location fabricated by the IR builder rather than
// copied from a token in the source text (e.g. the phantom zero of a unary
// minus, or a prelude import with no text of its own).
//
// IsDisjointFromParent exempts a node from the usual "child range is
// contained in parent range" invariant. The IR builder sets it on the
// expression of every field's existence condition, which is written as a
// trailing `if expr` on that field's own line; the grammar has no block
// form of `if` that covers several fields.
type Location struct {
	Start                Position
	End                  Position
	IsSynthetic          bool
	IsDisjointFromParent bool
}

// Zero reports whether this is the unset Location value.
func (l Location) Zero() bool {
	return l == Location{}
}

// Contains returns whether o's range falls within l's range, inclusive of
// the endpoints.
func (l Location) Contains(o Location) bool {
	return l.Start.LessOrEqual(o.Start) && o.End.LessOrEqual(l.End)
}

// Span returns the smallest Location that contains both l and o. Either may
// be the zero Location, in which case the other is returned unchanged.
func Span(l, o Location) Location {
	if l.Zero() {
		return o
	}
	if o.Zero() {
		return l
	}
	span := Location{Start: l.Start, End: l.End}
	if o.Start.Before(span.Start) {
		span.Start = o.Start
	}
	if span.End.Before(o.End) {
		span.End = o.End
	}
	return span
}

// Point returns a zero-width Location collapsed to a single position, used
// for synthetic nodes such as the phantom zero in a unary minus expansion.
func Point(p Position) Location {
	return Location{Start: p, End: p, IsSynthetic: true}
}

func (l Location) String() string {
	if l.Start == l.End {
		return fmt.Sprintf("%s", l.Start)
	}
	return fmt.Sprintf("%s-%s", l.Start, l.End)
}
