package diag

import "fmt"

// Code identifies a diagnostic kind. The thousands digit picks the
// family prefix used by ID: 1xxx lexer, 4xxx I/O.
type Code uint16

const (
	UnknownCode Code = 0

	// лексер
	LexInfo           Code = 1000
	LexInvalidToken   Code = 1001
	LexUnexpectedEOF  Code = 1002
	LexUnclosedString Code = 1003
	LexInvalidEscape  Code = 1004

	// ввод-вывод
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002
)

var codeTitles = map[Code]string{
	UnknownCode:       "Unknown error",
	LexInfo:           "Lexical information",
	LexInvalidToken:   "Invalid token",
	LexUnexpectedEOF:  "Unexpected end of input",
	LexUnclosedString: "Unclosed string literal",
	LexInvalidEscape:  "Invalid escape sequence",
	IOLoadFileError:   "I/O load file error",
	IOCacheError:      "Token cache error",
}

var familyPrefix = map[Code]string{1: "LEX", 4: "IO"}

// ID renders the stable code shown to users, e.g. LEX1001.
func (c Code) ID() string {
	if prefix, ok := familyPrefix[c/1000]; ok {
		return fmt.Sprintf("%s%04d", prefix, uint16(c))
	}
	return "E0000"
}

// Title is the short description; unknown codes share UnknownCode's.
func (c Code) Title() string {
	if t, ok := codeTitles[c]; ok {
		return t
	}
	return codeTitles[UnknownCode]
}

func (c Code) String() string {
	return "[" + c.ID() + "]: " + c.Title()
}
