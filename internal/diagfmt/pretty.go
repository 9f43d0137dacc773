package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/rivo/uniseg"

	"github.com/Aern-do/unnamedc/internal/diag"
	"github.com/Aern-do/unnamedc/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info *color.Color
	accent, note    *color.Color
	bold            *color.Color
}

// newPalette overrides the global color.NoColor so output stays stable
// regardless of the terminal the tests run in.
func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		accent: color.New(color.FgBlue, color.Bold),
		note:   color.New(color.FgCyan),
		bold:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.accent, p.note, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	var sb strings.Builder
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			sb.WriteByte('\n')
		}
		renderDiagnostic(&sb, &d, fs, opts, pal)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func renderDiagnostic(sb *strings.Builder, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	sev := pal.severity(d.Severity)
	header := fmt.Sprintf("%s %s: %s", sev.Sprint(d.Severity.String()), pal.bold.Sprint(d.Code.ID()), pal.bold.Sprint(d.Message))

	f, ok := fs.Lookup(d.File)
	if !ok {
		// без исходника печатаем только заголовок
		sb.WriteString(header)
		sb.WriteByte('\n')
		return
	}
	src := f.Source()
	text, pos := src.Line(d.Primary)
	fmt.Fprintf(sb, "%s:%s: %s\n", displayPath(fs, f, opts.PathMode), pos, header)

	gutter := max(2, len(strconv.FormatUint(uint64(pos.Line), 10)))
	bar := pal.accent.Sprint("|")
	fmt.Fprintf(sb, "%*s %s\n", gutter, "", bar)

	if opts.Context > 0 && pos.Line > 1 {
		lines := strings.Split(src.Content, "\n")
		first := max(1, int(pos.Line)-int(opts.Context))
		for n := first; n < int(pos.Line) && n <= len(lines); n++ {
			writeSourceLine(sb, gutter, n, lines[n-1], pal)
		}
	}
	writeSourceLine(sb, gutter, int(pos.Line), text, pal)

	// подчёркивание обрезается концом строки
	start := min(max(d.Primary.Start, pos.LineStart), pos.LineEnd)
	end := min(max(d.Primary.End, start), pos.LineEnd)
	pad := displayWidth(src.Content[pos.LineStart:start])
	width := max(1, displayWidth(src.Content[start:end]))
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(sb, "%*s %s %s%s %s\n", gutter, "", bar, strings.Repeat(" ", pad), sev.Sprint(marker), sev.Sprint(d.PrimaryLabel()))

	if !opts.ShowNotes {
		return
	}
	for _, note := range d.Notes {
		fmt.Fprintf(sb, "%*s %s %s: %s (%s)\n", gutter, "", pal.accent.Sprint("="), pal.note.Sprint("note"), note.Msg, src.Position(note.Span))
	}
}

func writeSourceLine(sb *strings.Builder, gutter, n int, text string, pal palette) {
	num := fmt.Sprintf("%*d", gutter, n)
	fmt.Fprintf(sb, "%s %s %s\n", pal.accent.Sprint(num), pal.accent.Sprint("|"), expandTabs(text))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// displayWidth is the terminal column count of s, honoring wide runes.
func displayWidth(s string) int {
	return uniseg.StringWidth(expandTabs(s))
}
