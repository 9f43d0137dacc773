package lexer

import (
	"github.com/Aern-do/unnamedc/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Ключевые слова регистрозависимые, совпадение только точное. Token.Text равен исходному срезу.
func (lx *Lexer) scanIdentOrKeyword() (token.Token, error) {
	if _, err := lx.cursor.Advance(); err != nil {
		return token.Token{}, err
	}
	for !lx.cursor.EOF() {
		r, _ := lx.cursor.Peek()
		if !isIdentContinue(r) {
			break
		}
		_, _ = lx.cursor.Advance()
	}

	if k, ok := token.LookupKeyword(lx.cursor.Slice()); ok {
		return lx.emit(k), nil
	}
	return lx.emit(token.Ident), nil
}
