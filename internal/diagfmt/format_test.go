package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Aern-do/unnamedc/internal/diag"
	"github.com/Aern-do/unnamedc/internal/source"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatPretty},
		{"pretty", FormatPretty},
		{"json", FormatJSON},
		{"short", FormatShort},
		{"sarif", FormatSarif},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestWriteDispatch(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/w")
	id := fs.Add("/w/main.un", []byte("x @"), 0)
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.LexInvalidToken, id, source.NewSpan(2, 3), "invalid token"))

	tests := []struct {
		format   Format
		contains string
	}{
		{FormatShort, "error LEX1001 main.un:1:3 invalid token\n"},
		{FormatJSON, `"code": "LEX1001"`},
		{FormatSarif, `"ruleId": "LEX1001"`},
		{FormatPretty, "ERROR LEX1001: invalid token"},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			opts := Options{Pretty: PrettyOpts{PathMode: PathModeBasename}}
			if err := Write(&buf, tt.format, bag, fs, opts); err != nil {
				t.Fatalf("Write() error: %v", err)
			}
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("expected %q in:\n%s", tt.contains, buf.String())
			}
		})
	}
}

func TestShortEmptyBag(t *testing.T) {
	var buf bytes.Buffer
	if err := Short(&buf, diag.NewBag(1), source.NewFileSet(), false); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
