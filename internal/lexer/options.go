package lexer

import (
	"github.com/Aern-do/unnamedc/internal/diag"
	"github.com/Aern-do/unnamedc/internal/source"
)

type Options struct {
	// File is attached to every reported diagnostic.
	File source.FileID
	// Reporter может быть nil, тогда ошибки только возвращаются из Next.
	Reporter diag.Reporter
}

func (lx *Lexer) report(err *Error) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(err.Diagnostic(lx.opts.File))
	}
}
