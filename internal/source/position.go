package source

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"
)

// Source is an immutable view of one buffer and the name it is reported under.
type Source struct {
	Content  string
	FileName string
}

// NewSource wraps content as a Source.
func NewSource(content, fileName string) Source {
	return Source{Content: content, FileName: fileName}
}

// Position is a resolved, human-readable location.
type Position struct {
	Line      uint32 // 1-based
	Column    uint32 // 1-based, in runes
	LineStart uint32 // byte offset of the first byte of the line
	LineEnd   uint32 // byte offset of the line's '\n' (or len(content))
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

func (src Source) length() uint32 {
	n, err := safecast.Conv[uint32](len(src.Content))
	if err != nil {
		panic(fmt.Errorf("source length overflow: %w", err))
	}
	return n
}

func (src Source) clamp(off uint32) uint32 {
	return min(off, src.length())
}

// Slice returns the text covered by span.
func (src Source) Slice(span Span) string {
	return src.Content[src.clamp(span.Start):src.clamp(span.End)]
}

// CharsLen returns the number of runes covered by span.
func (src Source) CharsLen(span Span) int {
	return utf8.RuneCountInString(src.Slice(span))
}

// Position resolves span.Start to a line and column.
//
// A span that starts on a '\n' byte points at the next line, column 1:
// reports about a line terminator are rendered at the start of the line it
// opens. An offset equal to len(content) is one past the last character.
func (src Source) Position(span Span) Position {
	start := src.clamp(span.Start)
	before := src.Content[:start]
	newlines := strings.Count(before, "\n")
	lineNo, err := safecast.Conv[uint32](newlines)
	if err != nil {
		panic(fmt.Errorf("line count overflow: %w", err))
	}

	if start < src.length() && src.Content[start] == '\n' {
		next := start + 1
		return Position{
			Line:      lineNo + 2,
			Column:    1,
			LineStart: next,
			LineEnd:   src.lineEndFrom(next),
		}
	}

	var lineStart uint32
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		lineStart = uint32(i) + 1
	}
	col, err := safecast.Conv[uint32](utf8.RuneCountInString(src.Content[lineStart:start]))
	if err != nil {
		panic(fmt.Errorf("column overflow: %w", err))
	}
	return Position{
		Line:      lineNo + 1,
		Column:    col + 1,
		LineStart: lineStart,
		LineEnd:   src.lineEndFrom(start),
	}
}

// lineEndFrom returns the offset of the first '\n' at or after off,
// or len(content).
func (src Source) lineEndFrom(off uint32) uint32 {
	if off >= src.length() {
		return src.length()
	}
	i := strings.IndexByte(src.Content[off:], '\n')
	if i < 0 {
		return src.length()
	}
	return off + uint32(i)
}

// Line returns the text of the line containing span.Start, without its
// terminator, together with the resolved position.
func (src Source) Line(span Span) (string, Position) {
	pos := src.Position(span)
	return src.Content[pos.LineStart:pos.LineEnd], pos
}
