package token

var keywords = map[string]Kind{
	"func":   KwFunc,
	"trait":  KwTrait,
	"impl":   KwImpl,
	"struct": KwStruct,
	"while":  KwWhile,
	"let":    KwLet,
	"for":    KwFor,
	"if":     KwIf,
	"else":   KwElse,
	"return": KwReturn,
	"true":   KwTrue,
	"false":  KwFalse,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Совпадение только точное: "iffy" и "If" остаются идентификаторами.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Keyword returns the source spelling of a keyword kind.
func Keyword(k Kind) (string, bool) {
	for text, kind := range keywords {
		if kind == k {
			return text, true
		}
	}
	return "", false
}
