// Package token defines lexical token kinds and the token value produced by
// the lexer.
// Invariants:
//   - Token.Text is a slice of the original source (no copies). For string
//     literals it includes both quotes; the decoded text lives in Value.
//   - Token.Span matches Text exactly (Start..End).
//   - Whitespace is never a token and never part of a token's span.
//   - Keywords are matched exactly and case-sensitively.
package token
