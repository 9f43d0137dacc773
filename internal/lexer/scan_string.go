package lexer

import (
	"strings"

	"github.com/Aern-do/unnamedc/internal/token"
)

// Строка в двойных кавычках. Escape: \n \t \\ \".
// Любой другой escape даёт InvalidEscapeSequence на спане экранированного символа.
// Конец файла до закрывающей кавычки (в том числе сразу после '\'):
// UnclosedStringLiteral на спане открывающей кавычки.
func (lx *Lexer) scanString() (token.Token, error) {
	if _, err := lx.cursor.Advance(); err != nil { // opening '"'
		return token.Token{}, err
	}
	open := lx.cursor.CurrentSpan()

	var sb strings.Builder
	for {
		r, err := lx.cursor.Advance()
		if err != nil {
			return token.Token{}, errAt(UnclosedStringLiteral, open)
		}
		switch r {
		case '"':
			text, sp := lx.cursor.Consume()
			return token.NewString(sp, text, sb.String()), nil
		case '\\':
			esc, err := lx.cursor.Advance()
			if err != nil {
				return token.Token{}, errAt(UnclosedStringLiteral, open)
			}
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '\\':
				sb.WriteByte('\\')
			case '"':
				sb.WriteByte('"')
			default:
				return token.Token{}, errAt(InvalidEscapeSequence, lx.cursor.CurrentSpan())
			}
		default:
			// исходные байты как есть, включая некорректный UTF-8
			sb.WriteString(lx.cursor.SliceAt(lx.cursor.CurrentSpan()))
		}
	}
}
