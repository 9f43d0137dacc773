package diag

import (
	"github.com/Aern-do/unnamedc/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one finding about one file. Spans are relative to File.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	File     source.FileID
	Primary  source.Span
	Label    string // подпись под подчёркнутым фрагментом; пусто → Message
	Notes    []Note
}

// PrimaryLabel returns the text rendered under the primary span.
func (d Diagnostic) PrimaryLabel() string {
	if d.Label != "" {
		return d.Label
	}
	return d.Message
}

// identity is what makes two diagnostics duplicates of each other.
type identity struct {
	code    Code
	sev     Severity
	file    source.FileID
	primary source.Span
	msg     string
}

func (d *Diagnostic) identity() identity {
	return identity{code: d.Code, sev: d.Severity, file: d.File, primary: d.Primary, msg: d.Message}
}
