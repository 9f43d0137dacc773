package lexer

import (
	"errors"
	"iter"

	"github.com/Aern-do/unnamedc/internal/source"
	"github.com/Aern-do/unnamedc/internal/token"
)

type Lexer struct {
	src    source.Source
	cursor Cursor
	opts   Options
}

func New(src source.Source, opts Options) *Lexer {
	return &Lexer{
		src:    src,
		cursor: NewCursor(src),
		opts:   opts,
	}
}

// Source returns the buffer being tokenized.
func (lx *Lexer) Source() source.Source { return lx.src }

// Next возвращает следующий токен.
// После конца ввода всегда возвращает EOF с пустым спаном.
// On failure it returns an Invalid token covering the consumed text together
// with a *Error; the lexer does not recover by itself, but callers may keep
// calling Next to resume right after the consumed text.
func (lx *Lexer) Next() (token.Token, error) {
	lx.skipWhitespace()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}, nil
	}

	tok, err := lx.scan()
	if err != nil {
		text, sp := lx.cursor.Consume()
		var lexErr *Error
		if errors.As(err, &lexErr) {
			lx.report(lexErr)
		}
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}, err
	}
	return tok, nil
}

// scan выбирает сканер по первому символу: цифра, кавычка, начало
// идентификатора, иначе оператор.
func (lx *Lexer) scan() (token.Token, error) {
	ch, err := lx.cursor.Peek()
	if err != nil {
		return token.Token{}, err
	}
	switch {
	case isDec(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	case isIdentStart(ch):
		return lx.scanIdentOrKeyword()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// All yields tokens from the start of input until end of input; the EOF
// token itself is not yielded. The sequence stops after the first error.
// Every call restarts from the beginning.
func (lx *Lexer) All() iter.Seq2[token.Token, error] {
	return func(yield func(token.Token, error) bool) {
		lx.Reset()
		for {
			tok, err := lx.Next()
			if err != nil {
				yield(tok, err)
				return
			}
			if tok.Kind == token.EOF {
				return
			}
			if !yield(tok, nil) {
				return
			}
		}
	}
}

// Reset rewinds the lexer to the start of input.
func (lx *Lexer) Reset() {
	lx.cursor.Rewind()
}

func (lx *Lexer) skipWhitespace() {
	for !lx.cursor.EOF() {
		r, _ := lx.cursor.Peek()
		if !isSpace(r) {
			break
		}
		_, _ = lx.cursor.Advance()
	}
	lx.cursor.Consume()
}

func (lx *Lexer) emptySpan() source.Span {
	off := lx.cursor.Offset()
	return source.Span{Start: off, End: off}
}

// emit завершает токен: текст и спан берутся из курсора.
func (lx *Lexer) emit(kind token.Kind) token.Token {
	text, sp := lx.cursor.Consume()
	return token.Token{Kind: kind, Span: sp, Text: text}
}
