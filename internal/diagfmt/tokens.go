package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Aern-do/unnamedc/internal/source"
	"github.com/Aern-do/unnamedc/internal/token"
)

type SpanJSON struct {
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
}

type TokenOutput struct {
	Kind   string   `json:"kind"`
	Text   string   `json:"text,omitempty"`
	Span   SpanJSON `json:"span"`
	Line   uint32   `json:"line"`
	Column uint32   `json:"col"`
	Number *uint64  `json:"number,omitempty"`
	String *string  `json:"string,omitempty"`
}

// FileTokensOutput is the JSON shape of one tokenized file.
type FileTokensOutput struct {
	File   string        `json:"file"`
	Tokens []TokenOutput `json:"tokens"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, src source.Source) error {
	for i, tok := range tokens {
		pos := src.Position(tok.Span)
		line := fmt.Sprintf("%3d: %-12s", i+1, tok.Kind.String())
		if tok.Text != "" {
			line += fmt.Sprintf(" %q", tok.Text)
		}
		line += fmt.Sprintf(" at %s (%s)", pos, tok.Span)
		switch tok.Value.Kind {
		case token.NumberValue:
			line += fmt.Sprintf(" = %d", tok.Number())
		case token.StringValue:
			line += fmt.Sprintf(" = %q", tok.Str())
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// BuildTokensOutput converts tokens to their JSON shape.
func BuildTokensOutput(path string, tokens []token.Token, src source.Source) FileTokensOutput {
	output := FileTokensOutput{File: path, Tokens: make([]TokenOutput, 0, len(tokens))}
	for _, tok := range tokens {
		pos := src.Position(tok.Span)
		out := TokenOutput{
			Kind:   tok.Kind.String(),
			Text:   tok.Text,
			Span:   SpanJSON{Start: tok.Span.Start, End: tok.Span.End},
			Line:   pos.Line,
			Column: pos.Column,
		}
		switch tok.Value.Kind {
		case token.NumberValue:
			n := tok.Number()
			out.Number = &n
		case token.StringValue:
			s := tok.Str()
			out.String = &s
		}
		output.Tokens = append(output.Tokens, out)
		if tok.Kind == token.EOF {
			break
		}
	}
	return output
}

// FormatTokensJSON выводит токены нескольких файлов в JSON формате
func FormatTokensJSON(w io.Writer, files []FileTokensOutput) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(files)
}
