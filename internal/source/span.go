package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) into a single source buffer.
// Spans never own text: resolve them against the Source they came from.
type Span struct {
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

// DummySpan is the zero-length span at offset 0, used by synthesized nodes.
var DummySpan = Span{}

// NewSpan builds a span; start must not exceed end.
func NewSpan(start, end uint32) Span {
	if start > end {
		panic(fmt.Sprintf("source: inverted span %d..%d", start, end))
	}
	return Span{Start: start, End: end}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
// The operation is commutative and associative.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// CoverAll unions every span in spans. Unioning zero spans has no natural
// identity, so an empty input yields fallback.
func CoverAll(fallback Span, spans ...Span) Span {
	if len(spans) == 0 {
		return fallback
	}
	out := spans[0]
	for _, sp := range spans[1:] {
		out = out.Cover(sp)
	}
	return out
}

// Extend grows the span by n bytes past its end.
func (s Span) Extend(n uint32) Span {
	return Span{Start: s.Start, End: s.End + n}
}

// Shrink trims n bytes from both ends, e.g. to drop a pair of delimiters.
// A span shorter than 2n collapses to an empty span at its middle.
func (s Span) Shrink(n uint32) Span {
	if s.Len() < 2*n {
		mid := s.Start + s.Len()/2
		return Span{Start: mid, End: mid}
	}
	return Span{Start: s.Start + n, End: s.End - n}
}

// Contains reports whether off lies inside the span.
func (s Span) Contains(off uint32) bool {
	return s.Start <= off && off < s.End
}

func (s Span) ShiftLeft(n uint32) Span {
	// сдвиг за начало файла не допускаем
	if n > s.Start {
		return s
	}
	return Span{Start: s.Start - n, End: s.End - n}
}

func (s Span) ShiftRight(n uint32) Span {
	return Span{Start: s.Start + n, End: s.End + n}
}
