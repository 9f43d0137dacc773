package lexer

import (
	"github.com/Aern-do/unnamedc/internal/token"
)

// Жадность: двухсимвольные операторы проверяются через Lookahead(1) раньше
// односимвольных. Одиночный '!' недопустим.
func (lx *Lexer) scanOperatorOrPunct() (token.Token, error) {
	ch, err := lx.cursor.Peek()
	if err != nil {
		return token.Token{}, err
	}
	next, _ := lx.cursor.Lookahead(1)

	kind, width := token.Invalid, 1
	switch ch {
	case '+':
		kind = token.Add
	case '-':
		if next == '>' {
			kind, width = token.Arrow, 2
		} else {
			kind = token.Sub
		}
	case '*':
		kind = token.Mul
	case '/':
		kind = token.Div
	case '=':
		if next == '=' {
			kind, width = token.Eq, 2
		} else {
			kind = token.Asgmt
		}
	case '!':
		if next == '=' {
			kind, width = token.Neq, 2
		}
	case '<':
		switch next {
		case '=':
			kind, width = token.LtEq, 2
		case '<':
			kind, width = token.BitShl, 2
		default:
			kind = token.Lt
		}
	case '>':
		switch next {
		case '=':
			kind, width = token.GtEq, 2
		case '>':
			kind, width = token.BitShr, 2
		default:
			kind = token.Gt
		}
	case '&':
		if next == '&' {
			kind, width = token.And, 2
		} else {
			kind = token.BitAnd
		}
	case '|':
		if next == '|' {
			kind, width = token.Or, 2
		} else {
			kind = token.BitOr
		}
	case '^':
		kind = token.BitXor
	case ',':
		kind = token.Comma
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case ';':
		kind = token.Semicolon
	case ':':
		if next == ':' {
			kind, width = token.DoubleColon, 2
		} else {
			kind = token.Colon
		}
	case '.':
		kind = token.Dot
	}

	if kind == token.Invalid {
		// неизвестный символ съедаем целиком, чтобы можно было продолжить
		_, _ = lx.cursor.Advance()
		return token.Token{}, errAt(InvalidToken, lx.cursor.Span())
	}
	if err := lx.cursor.Skip(width); err != nil {
		return token.Token{}, err
	}
	return lx.emit(kind), nil
}
