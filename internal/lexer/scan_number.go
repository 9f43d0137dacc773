package lexer

import (
	"math"

	"github.com/Aern-do/unnamedc/internal/token"
)

// Поддержка: 0, 123, 1_000, 0b101, 0o17, 0xFF (префикс в любом регистре).
// Префикс входит в спан токена. Голый "0" означает ноль, даже в конце файла.
// "0x" без цифр даёт 0. Переполнение насыщается до math.MaxUint64.
func (lx *Lexer) scanNumber() (token.Token, error) {
	radix := uint64(10)
	digitsFrom := lx.cursor.Mark()

	if r, _ := lx.cursor.Peek(); r == '0' {
		_, _ = lx.cursor.Advance()
		next, ok := lx.cursor.Lookahead(0)
		if !ok {
			return lx.emitNumber(0), nil
		}
		switch next {
		case 'x', 'X':
			radix = 16
		case 'o', 'O':
			radix = 8
		case 'b', 'B':
			radix = 2
		default:
			// просто "0"; следующая цифра начнёт новый токен
			return lx.emitNumber(0), nil
		}
		_, _ = lx.cursor.Advance()
		digitsFrom = lx.cursor.Mark()
	}

	for !lx.cursor.EOF() {
		r, _ := lx.cursor.Peek()
		if r != '_' && digitValue(r, radix) < 0 {
			break
		}
		_, _ = lx.cursor.Advance()
	}

	digits := lx.cursor.SliceAt(lx.cursor.SpanFrom(digitsFrom))
	return lx.emitNumber(parseNumber(digits, radix)), nil
}

func (lx *Lexer) emitNumber(v uint64) token.Token {
	text, sp := lx.cursor.Consume()
	return token.NewNumber(sp, text, v)
}

// parseNumber сворачивает цифры в значение, пропуская '_'.
func parseNumber(digits string, radix uint64) uint64 {
	var v uint64
	for _, r := range digits {
		if r == '_' {
			continue
		}
		d := uint64(digitValue(r, radix)) // #nosec G115 -- digits were validated by the scanner
		if v > (math.MaxUint64-d)/radix {
			return math.MaxUint64
		}
		v = v*radix + d
	}
	return v
}
