package diag

import "github.com/Aern-do/unnamedc/internal/source"

// New builds a diagnostic without notes or label; use WithNote and
// WithLabel to extend the returned copy.
func New(sev Severity, code Code, file source.FileID, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, File: file, Primary: primary, Message: msg}
}

func NewError(code Code, file source.FileID, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, file, primary, msg)
}

func NewWarning(code Code, file source.FileID, primary source.Span, msg string) Diagnostic {
	return New(SevWarning, code, file, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	// копия, чтобы не делить backing array с исходной диагностикой
	d.Notes = append(d.Notes[:len(d.Notes):len(d.Notes)], Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithLabel(label string) Diagnostic {
	d.Label = label
	return d
}
