package lexer

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/Aern-do/unnamedc/internal/source"
)

// helper function to create a cursor
func createCursor(content string) Cursor {
	return NewCursor(source.NewSource(content, "test.un"))
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := createCursor("a\nb")

	for _, want := range []rune{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if r, err := cursor.Peek(); err != nil || r != want {
			t.Fatalf("Peek() = %q, %v; want %q", r, err, want)
		}
		if r, err := cursor.Advance(); err != nil || r != want {
			t.Fatalf("Advance() = %q, %v; want %q", r, err, want)
		}
	}

	if !cursor.EOF() {
		t.Error("Expected EOF at end")
	}
	_, err := cursor.Advance()
	var lexErr *Error
	if !errors.As(err, &lexErr) || lexErr.Kind != UnexpectedEOF {
		t.Fatalf("Advance() at EOF = %v, want UnexpectedEOF", err)
	}
	if _, err := cursor.Peek(); err == nil {
		t.Fatalf("Peek() at EOF must fail")
	}
}

func TestCursorSpanAndConsume(t *testing.T) {
	cursor := createCursor("abc")

	_, _ = cursor.Advance()
	if got := cursor.Span(); got != source.NewSpan(0, 1) {
		t.Fatalf("Span() = %v", got)
	}
	_, _ = cursor.Advance()
	if got := cursor.Span(); got != source.NewSpan(0, 2) {
		t.Fatalf("Span() = %v", got)
	}

	text, sp := cursor.Consume()
	if text != "ab" || sp != source.NewSpan(0, 2) {
		t.Fatalf("Consume() = %q, %v", text, sp)
	}

	_, _ = cursor.Advance()
	if got := cursor.Span(); got != source.NewSpan(2, 3) {
		t.Fatalf("Span() after consume = %v", got)
	}
}

func TestCursorConsecutiveConsumes(t *testing.T) {
	cursor := createCursor("one two three")

	steps := []struct {
		n    int
		want string
	}{
		{3, "one"},
		{1, " "},
		{3, "two"},
		{1, " "},
		{5, "three"},
	}
	for _, step := range steps {
		if err := cursor.Skip(step.n); err != nil {
			t.Fatalf("Skip(%d): %v", step.n, err)
		}
		if text, _ := cursor.Consume(); text != step.want {
			t.Fatalf("Consume() = %q, want %q", text, step.want)
		}
	}
	if err := cursor.Skip(1); err == nil {
		t.Fatalf("Skip past end must fail")
	}
}

func TestCursorUTF8(t *testing.T) {
	cursor := createCursor("héllö wörld")

	if r, _ := cursor.Advance(); r != 'h' {
		t.Fatalf("got %q", r)
	}
	if r, _ := cursor.Advance(); r != 'é' {
		t.Fatalf("got %q", r)
	}
	if cursor.Offset() != 3 {
		t.Fatalf("Offset() = %d, want 3", cursor.Offset())
	}
	if sp := cursor.CurrentSpan(); sp != source.NewSpan(1, 3) {
		t.Fatalf("CurrentSpan() = %v, want 1..3", sp)
	}

	_ = cursor.Skip(3)
	if text, _ := cursor.Consume(); text != "héllö" {
		t.Fatalf("Consume() = %q", text)
	}
}

func TestCursorInvalidUTF8ReadsOneByte(t *testing.T) {
	cursor := createCursor("a\xffb")
	_, _ = cursor.Advance()
	r, err := cursor.Advance()
	if err != nil || r != utf8.RuneError {
		t.Fatalf("Advance() = %q, %v; want RuneError", r, err)
	}
	if cursor.Offset() != 2 {
		t.Fatalf("Offset() = %d, want 2", cursor.Offset())
	}
	if r, _ := cursor.Advance(); r != 'b' {
		t.Fatalf("got %q after invalid byte", r)
	}
}

func TestCursorLookahead(t *testing.T) {
	cursor := createCursor("<=ä")

	cases := []struct {
		n    int
		want rune
		ok   bool
	}{
		{0, '<', true},
		{1, '=', true},
		{2, 'ä', true},
		{3, 0, false},
	}
	for _, tc := range cases {
		r, ok := cursor.Lookahead(tc.n)
		if r != tc.want || ok != tc.ok {
			t.Errorf("Lookahead(%d) = %q, %v; want %q, %v", tc.n, r, ok, tc.want, tc.ok)
		}
	}
	if cursor.Offset() != 0 {
		t.Fatalf("Lookahead must not consume")
	}
}

func TestCursorEmptySource(t *testing.T) {
	cursor := createCursor("")

	if !cursor.EOF() {
		t.Fatalf("empty source must be at EOF")
	}
	if _, err := cursor.Advance(); err == nil {
		t.Fatalf("Advance() on empty source must fail")
	}
	text, sp := cursor.Consume()
	if text != "" || sp != source.NewSpan(0, 0) {
		t.Fatalf("Consume() = %q, %v", text, sp)
	}
}

func TestCursorMarkAndRewind(t *testing.T) {
	cursor := createCursor("0x1f")
	_ = cursor.Skip(2)
	m := cursor.Mark()
	_ = cursor.Skip(2)
	if got := cursor.SliceAt(cursor.SpanFrom(m)); got != "1f" {
		t.Fatalf("SpanFrom(mark) slice = %q", got)
	}
	if got := cursor.Slice(); got != "0x1f" {
		t.Fatalf("Slice() = %q", got)
	}

	cursor.Rewind()
	if cursor.Offset() != 0 || cursor.Slice() != "" {
		t.Fatalf("Rewind() did not reset the cursor")
	}
}
