package diagfmt

import (
	"fmt"
	"io"

	"github.com/Aern-do/unnamedc/internal/diag"
	"github.com/Aern-do/unnamedc/internal/source"
)

// Format selects a diagnostics renderer.
type Format uint8

const (
	FormatPretty Format = iota
	FormatJSON
	FormatShort
	FormatSarif
)

func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "pretty":
		return FormatPretty, nil
	case "json":
		return FormatJSON, nil
	case "short":
		return FormatShort, nil
	case "sarif":
		return FormatSarif, nil
	default:
		return FormatPretty, fmt.Errorf("unknown format %q (want pretty, json, short or sarif)", s)
	}
}

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatShort:
		return "short"
	case FormatSarif:
		return "sarif"
	default:
		return "pretty"
	}
}

// Short пишет по одной строке на диагностику, см. diag.FormatShortDiagnostics.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) error {
	out := diag.FormatShortDiagnostics(bag.Items(), fs, includeNotes)
	if out == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

// Options bundles per-format settings for Write.
type Options struct {
	Pretty PrettyOpts
	JSON   JSONOpts
	Sarif  SarifRunMeta
}

// Write renders bag in the requested format.
func Write(w io.Writer, format Format, bag *diag.Bag, fs *source.FileSet, opts Options) error {
	switch format {
	case FormatJSON:
		return JSON(w, bag, fs, opts.JSON)
	case FormatShort:
		return Short(w, bag, fs, opts.Pretty.ShowNotes)
	case FormatSarif:
		return Sarif(w, bag, fs, opts.Sarif)
	default:
		return Pretty(w, bag, fs, opts.Pretty)
	}
}
