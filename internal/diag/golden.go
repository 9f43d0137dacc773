package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Aern-do/unnamedc/internal/source"
)

// shortLine is one rendered line of the short form; notes become their
// own lines with severity "note".
type shortLine struct {
	sev, code, path string
	line, col       uint32
	msg             string
}

func (l shortLine) compare(o shortLine) int {
	return cmp.Or(
		strings.Compare(l.path, o.path),
		cmp.Compare(l.line, o.line),
		cmp.Compare(l.col, o.col),
		strings.Compare(l.sev, o.sev),
		strings.Compare(l.code, o.code),
		strings.Compare(l.msg, o.msg),
	)
}

// FormatShortDiagnostics renders "error LEX1001 path:line:col message",
// one line per diagnostic, sorted by location. Paths are relative to the
// FileSet base dir. Diagnostics without a known file (load failures) have
// no location and are left out. Used for the CLI short output and golden
// tests.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}

	var lines []shortLine
	add := func(sev string, d *Diagnostic, sp source.Span, msg string) {
		f, ok := fs.Lookup(d.File)
		if !ok {
			return
		}
		pos := f.Source().Position(sp)
		lines = append(lines, shortLine{
			sev:  sev,
			code: d.Code.ID(),
			path: shortPath(f.FormatPath("relative", fs.BaseDir())),
			line: pos.Line,
			col:  pos.Column,
			msg:  oneLine(msg),
		})
	}
	for i := range diags {
		d := &diags[i]
		add(d.Severity.Label(), d, d.Primary, d.Message)
		if includeNotes {
			for _, n := range d.Notes {
				add("note", d, n.Span, n.Msg)
			}
		}
	}
	slices.SortStableFunc(lines, shortLine.compare)

	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.line, l.col, l.msg)
	}
	return b.String()
}

func shortPath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}

// oneLine folds line breaks so every entry stays on a single line.
func oneLine(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.NewReplacer("\r", " ", "\n", " ").Replace(msg)
	return strings.TrimSpace(msg)
}
