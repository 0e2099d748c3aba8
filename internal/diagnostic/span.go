package diagnostic

import (
	"fmt"
	"strings"
)

// Span is a half-open byte range [Start, End) inside a named source.
//
// Source names the text the offsets refer to, e.g. "derive directive" or
// "layout[1]". A zero Span means "no position information".
type Span struct {
	Source string
	Start  int
	End    int
}

// NewSpan creates a span over source[start:end].
func NewSpan(source string, start, end int) Span {
	return Span{Source: source, Start: start, End: end}
}

// IsZero reports whether the span carries no position.
func (s Span) IsZero() bool {
	return s == Span{}
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// String renders the span as "source:start-end".
func (s Span) String() string {
	if s.IsZero() {
		return ""
	}

	if s.Source == "" {
		return fmt.Sprintf("%d-%d", s.Start, s.End)
	}

	if s.Start == 0 && s.End == 0 {
		return s.Source
	}

	return fmt.Sprintf("%s:%d-%d", s.Source, s.Start, s.End)
}

// Underline renders text followed by a caret line marking the span, e.g.
//
//	T; Clone, Dbg
//	          ^^^
//
// Spans outside text are clamped.
func (s Span) Underline(text string) string {
	start := min(max(s.Start, 0), len(text))
	end := min(max(s.End, start), len(text))

	width := max(end-start, 1)

	return text + "\n" + strings.Repeat(" ", start) + strings.Repeat("^", width)
}
