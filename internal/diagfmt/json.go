package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/Aern-do/unnamedc/internal/diag"
	"github.com/Aern-do/unnamedc/internal/source"
)

// DiagnosticsOutput is the document written by JSON.
type DiagnosticsOutput struct {
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Count       int              `json:"count"`
}

type JSONDiagnostic struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Label    string       `json:"label,omitempty"`
	Location JSONLocation `json:"location"`
	Notes    []JSONNote   `json:"notes,omitempty"`
}

type JSONNote struct {
	Message  string       `json:"message"`
	Location JSONLocation `json:"location"`
}

// JSONLocation always carries the byte range; line/column pairs are
// filled only with JSONOpts.IncludePositions. File is empty for
// diagnostics without a loaded file.
type JSONLocation struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// jsonLocator resolves spans of one diagnostic's file.
type jsonLocator struct {
	file      *source.File
	path      string
	positions bool
}

func newJSONLocator(fs *source.FileSet, id source.FileID, opts JSONOpts) jsonLocator {
	f, ok := fs.Lookup(id)
	if !ok {
		return jsonLocator{}
	}
	return jsonLocator{file: f, path: displayPath(fs, f, opts.PathMode), positions: opts.IncludePositions}
}

func (l jsonLocator) locate(sp source.Span) JSONLocation {
	loc := JSONLocation{File: l.path, StartByte: sp.Start, EndByte: sp.End}
	if l.file == nil || !l.positions {
		return loc
	}
	src := l.file.Source()
	start := src.Position(sp)
	end := src.Position(source.NewSpan(sp.End, sp.End))
	loc.StartLine, loc.StartCol = start.Line, start.Column
	loc.EndLine, loc.EndCol = end.Line, end.Column
	return loc
}

// BuildDiagnosticsOutput converts the bag without encoding it; Max caps
// the number of entries.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}

	out := DiagnosticsOutput{Diagnostics: make([]JSONDiagnostic, 0, len(items))}
	for _, d := range items {
		loc := newJSONLocator(fs, d.File, opts)
		jd := JSONDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Label:    d.Label,
			Location: loc.locate(d.Primary),
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				jd.Notes = append(jd.Notes, JSONNote{Message: n.Msg, Location: loc.locate(n.Span)})
			}
		}
		out.Diagnostics = append(out.Diagnostics, jd)
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes the diagnostics as one indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
