package driver

import (
	"github.com/Aern-do/unnamedc/internal/observ"
	"github.com/Aern-do/unnamedc/internal/source"
)

// SourceExt is the extension of unnamed source files picked up from directories.
const SourceExt = ".un"

// Options controls a tokenize run. The zero value is usable.
type Options struct {
	// MaxDiagnostics caps diagnostics per file; 0 means the default of 100.
	MaxDiagnostics int
	// Jobs limits parallel workers; 0 means GOMAXPROCS.
	Jobs int
	// StopOnInvalid stops a file at its first invalid token instead of
	// resuming right after it.
	StopOnInvalid bool
	// Cache stores token streams by content hash; nil disables caching.
	Cache *TokenCache
	// Strings receives every identifier; nil means a fresh interner per run.
	Strings *source.Interner
	// Timer collects pass timings; may be nil.
	Timer *observ.Timer
	// Progress receives per-file events; may be nil.
	Progress ProgressFunc
	// BaseDir is used to render relative paths; empty means the working dir.
	BaseDir string
}

const defaultMaxDiagnostics = 100

func (o *Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return defaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

func (o *Options) begin(name string) int {
	if o.Timer == nil {
		return -1
	}
	return o.Timer.Begin(name)
}

func (o *Options) end(idx int, note string) {
	if o.Timer != nil {
		o.Timer.End(idx, note)
	}
}
