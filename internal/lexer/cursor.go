package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"github.com/Aern-do/unnamedc/internal/source"
)

// Cursor читает исходник по одной руне, никогда не разрывая многобайтовый символ.
// prev: начало накапливаемого токена, cur: текущая позиция.
// Invalid UTF-8 bytes are read one at a time as utf8.RuneError.
type Cursor struct {
	src   source.Source
	prev  uint32
	cur   uint32
	last  uint32 // ширина последней прочитанной руны
	limit uint32
}

// NewCursor creates a new cursor at the start of src.
func NewCursor(src source.Source) Cursor {
	limit, err := safecast.Conv[uint32](len(src.Content))
	if err != nil {
		panic(fmt.Errorf("len source content overflow: %w", err))
	}
	return Cursor{src: src, limit: limit}
}

// EOF проверяет, достигнут ли конец файла
func (c *Cursor) EOF() bool {
	return c.cur >= c.limit
}

// Offset returns the current byte offset.
func (c *Cursor) Offset() uint32 {
	return c.cur
}

func (c *Cursor) decode(off uint32) (rune, uint32) {
	b := c.src.Content[off]
	if b < utf8.RuneSelf { // ASCII fast-path
		return rune(b), 1
	}
	r, sz := utf8.DecodeRuneInString(c.src.Content[off:])
	return r, uint32(sz) // #nosec G115 -- sz is at most utf8.UTFMax
}

// Advance читает текущую руну и сдвигает курсор.
func (c *Cursor) Advance() (rune, error) {
	if c.EOF() {
		return 0, c.eofError()
	}
	r, sz := c.decode(c.cur)
	c.cur += sz
	c.last = sz
	return r, nil
}

// Peek возвращает текущую руну, не сдвигая курсор.
func (c *Cursor) Peek() (rune, error) {
	if c.EOF() {
		return 0, c.eofError()
	}
	r, _ := c.decode(c.cur)
	return r, nil
}

// Lookahead returns the rune n positions past the current one without
// consuming anything; Lookahead(0) is the same rune Peek returns.
func (c *Cursor) Lookahead(n int) (rune, bool) {
	off := c.cur
	for i := 0; ; i++ {
		if off >= c.limit {
			return 0, false
		}
		r, sz := c.decode(off)
		if i == n {
			return r, true
		}
		off += sz
	}
}

// Skip advances over n runes.
func (c *Cursor) Skip(n int) error {
	for range n {
		if _, err := c.Advance(); err != nil {
			return err
		}
	}
	return nil
}

// Span covers everything read since the last Consume.
func (c *Cursor) Span() source.Span {
	return source.Span{Start: c.prev, End: c.cur}
}

// CurrentSpan is the span of the rune returned by the last Advance.
func (c *Cursor) CurrentSpan() source.Span {
	return source.Span{Start: c.cur - c.last, End: c.cur}
}

// Slice returns the text read since the last Consume.
func (c *Cursor) Slice() string {
	return c.src.Content[c.prev:c.cur]
}

// SliceAt returns the source text under sp.
func (c *Cursor) SliceAt(sp source.Span) string {
	return c.src.Slice(sp)
}

// Consume returns the accumulated text and span and starts a new token at
// the current position.
func (c *Cursor) Consume() (string, source.Span) {
	text, sp := c.Slice(), c.Span()
	c.prev = c.cur
	return text, sp
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.cur)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{Start: uint32(m), End: c.cur}
}

// Rewind moves the cursor back to the start of input.
func (c *Cursor) Rewind() {
	c.prev, c.cur, c.last = 0, 0, 0
}

func (c *Cursor) eofError() *Error {
	return errAt(UnexpectedEOF, source.Span{Start: c.cur, End: c.cur})
}
