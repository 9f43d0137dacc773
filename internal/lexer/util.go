package lexer

import (
	"unicode"
)

// ===== Классификаторы =====

func isDec(r rune) bool { return r >= '0' && r <= '9' }

// digitValue возвращает значение цифры в системе счисления radix или -1.
func digitValue(r rune, radix uint64) int {
	var d int
	switch {
	case r >= '0' && r <= '9':
		d = int(r - '0')
	case r >= 'a' && r <= 'z':
		d = int(r-'a') + 10
	case r >= 'A' && r <= 'Z':
		d = int(r-'A') + 10
	default:
		return -1
	}
	if uint64(d) >= radix { // #nosec G115 -- d is in 0..35
		return -1
	}
	return d
}

// isSpace follows the Unicode White_Space property.
func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}

// isIdentStart reports XID_Start or '_'.
func isIdentStart(r rune) bool {
	// ASCII fast path.
	if r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') {
		return true
	}
	if r < utf8RuneSelf {
		return false
	}
	return unicode.In(r,
		unicode.Letter,
		unicode.Nl,
		unicode.Other_ID_Start,
	) && !unicode.In(r,
		unicode.Pattern_Syntax,
		unicode.Pattern_White_Space,
	)
}

const (
	zwnj = '\u200C'
	zwj  = '\u200D'
)

// isIdentContinue reports XID_Continue.
func isIdentContinue(r rune) bool {
	if r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') {
		return true
	}
	if r < utf8RuneSelf {
		return false
	}
	// из категории Cf разрешены только ZWNJ и ZWJ; bidi-override,
	// ZWSP, soft hyphen и BOM в идентификатор не входят
	if r == zwnj || r == zwj {
		return true
	}
	return unicode.In(r,
		unicode.Letter,
		unicode.Mn,
		unicode.Mc,
		unicode.Nl,
		unicode.Nd,
		unicode.Pc,
		unicode.Other_ID_Start,
		unicode.Other_ID_Continue,
	) && !unicode.In(r,
		unicode.Pattern_Syntax,
		unicode.Pattern_White_Space,
	)
}
