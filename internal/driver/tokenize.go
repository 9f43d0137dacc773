package driver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/Aern-do/unnamedc/internal/diag"
	"github.com/Aern-do/unnamedc/internal/lexer"
	"github.com/Aern-do/unnamedc/internal/source"
	"github.com/Aern-do/unnamedc/internal/token"
	"github.com/Aern-do/unnamedc/internal/trace"
)

// FileResult is the outcome of tokenizing one input.
type FileResult struct {
	Path   string
	FileID source.FileID // source.NoFileID when the file failed to load
	// Tokens ends with EOF unless Stopped is set. Invalid tokens stay in
	// the stream where lexing resumed after them.
	Tokens []token.Token
	// Idents holds the interned text of every identifier, in token order.
	Idents  []source.StringID
	Bag     *diag.Bag
	Stopped bool // lexing hit an error it does not resume after
	Cached  bool
	Err     error // load failure or cancellation
}

// HasErrors reports whether the file failed to load or produced errors.
func (r *FileResult) HasErrors() bool {
	return r.Err != nil || (r.Bag != nil && r.Bag.HasErrors())
}

// Result is the outcome of a tokenize run.
type Result struct {
	FileSet *source.FileSet
	Strings *source.Interner
	Files   []FileResult
}

// HasErrors reports whether any file has errors.
func (r *Result) HasErrors() bool {
	for i := range r.Files {
		if r.Files[i].HasErrors() {
			return true
		}
	}
	return false
}

// Diagnostics collects per-file bags in input order into one bag of at
// most max entries; max <= 0 keeps everything.
func (r *Result) Diagnostics(max int) *diag.Bag {
	if max <= 0 {
		max = math.MaxUint16
	}
	out := diag.NewBag(max)
	for i := range r.Files {
		if r.Files[i].Bag == nil {
			continue
		}
		for _, d := range r.Files[i].Bag.Items() {
			if !out.Add(d) {
				return out
			}
		}
	}
	return out
}

// Tokenize loads and tokenizes a single file. Unlike TokenizeFiles, a
// load failure is returned as an error.
func Tokenize(ctx context.Context, path string, opts Options) (*Result, error) {
	res, err := TokenizeFiles(ctx, []string{path}, opts)
	if err != nil {
		return nil, err
	}
	if loadErr := res.Files[0].Err; loadErr != nil {
		return nil, loadErr
	}
	return res, nil
}

// TokenizeSource tokenizes in-memory content registered under name, such as stdin.
func TokenizeSource(ctx context.Context, name string, content []byte, opts Options) (*Result, error) {
	fs := newFileSet(opts)
	id := fs.AddVirtual(name, content)
	strs := opts.Strings
	if strs == nil {
		strs = source.NewInterner()
	}
	fr := tokenizeFile(ctx, name, fs.Get(id), strs, &opts)
	return &Result{FileSet: fs, Strings: strs, Files: []FileResult{fr}}, ctx.Err()
}

func newFileSet(opts Options) *source.FileSet {
	if opts.BaseDir != "" {
		return source.NewFileSetWithBase(opts.BaseDir)
	}
	return source.NewFileSet()
}

type lexedFile struct {
	tokens  []token.Token
	errors  []lexer.Error
	stopped bool
}

// checkEvery is how many tokens pass between cancellation checks.
const checkEvery = 1024

// lexFile runs the lexer over src. After an InvalidToken it keeps going
// from the end of the consumed text unless stopOnInvalid is set; any other
// error ends the file, since what follows an unclosed string or a cut-off
// escape is not meaningful input.
func lexFile(ctx context.Context, src source.Source, lexOpts lexer.Options, stopOnInvalid bool) (*lexedFile, error) {
	lx := lexer.New(src, lexOpts)
	out := &lexedFile{tokens: make([]token.Token, 0, len(src.Content)/4+1)}

	tr := trace.FromContext(ctx)
	perToken := tr.Enabled() && tr.Level().ShouldEmit(trace.ScopeToken)

	for n := 0; ; n++ {
		if n%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		tok, err := lx.Next()
		out.tokens = append(out.tokens, tok)
		if perToken {
			trace.Point(ctx, trace.ScopeToken, tok.Kind.String(), tok.Span.String())
		}
		if err != nil {
			var lexErr *lexer.Error
			if !errors.As(err, &lexErr) {
				out.stopped = true
				return out, err
			}
			out.errors = append(out.errors, *lexErr)
			if lexErr.Kind == lexer.InvalidToken && !stopOnInvalid {
				continue
			}
			out.stopped = true
			return out, nil
		}
		if tok.Kind == token.EOF {
			return out, nil
		}
	}
}

// tokenizeFile lexes one loaded file, going through the cache when configured.
// path is the name the caller used for the file.
func tokenizeFile(ctx context.Context, path string, f *source.File, strs *source.Interner, opts *Options) FileResult {
	ctx, span := trace.Start(ctx, trace.ScopeFile, path)
	started := time.Now()

	bag := diag.NewBag(opts.maxDiagnostics())
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	res := FileResult{Path: path, FileID: f.ID, Bag: bag}

	key := cacheKey(f.Hash, opts.StopOnInvalid)
	var lexed *lexedFile
	if opts.Cache != nil {
		var payload TokenPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err == nil && hit {
			lexed, err = decodeLexed(&payload, f.Source())
		}
		if err != nil {
			reporter.Report(diag.NewWarning(diag.IOCacheError, f.ID, source.Span{},
				fmt.Sprintf("token cache entry unreadable, relexing: %v", err)))
			lexed = nil
		}
		if lexed != nil {
			// кэш хранит только ошибки, диагностики строим заново
			for i := range lexed.errors {
				reporter.Report(lexed.errors[i].Diagnostic(f.ID))
			}
			res.Cached = true
			opts.Progress.emit(Event{File: path, Stage: StageCache, Status: StatusCached, Elapsed: time.Since(started)})
		}
	}

	if lexed == nil {
		opts.Progress.emit(Event{File: path, Stage: StageLex, Status: StatusWorking})
		var err error
		lexed, err = lexFile(ctx, f.Source(), lexer.Options{File: f.ID, Reporter: reporter}, opts.StopOnInvalid)
		if err != nil {
			res.Err = err
			res.Stopped = true
			span.End(err.Error())
			opts.Progress.emit(Event{File: path, Stage: StageLex, Status: StatusError, Err: err, Elapsed: time.Since(started)})
			return res
		}
		if opts.Cache != nil {
			if err := opts.Cache.Put(key, encodeLexed(lexed)); err != nil {
				reporter.Report(diag.NewWarning(diag.IOCacheError, f.ID, source.Span{},
					fmt.Sprintf("cannot write token cache: %v", err)))
			}
		}
	}

	res.Tokens = lexed.tokens
	res.Stopped = lexed.stopped
	for _, tok := range lexed.tokens {
		if tok.Kind == token.Ident {
			res.Idents = append(res.Idents, strs.Intern(tok.Text))
		}
	}

	elapsed := time.Since(started)
	if opts.Timer != nil {
		opts.Timer.Add("lex (per file)", elapsed)
	}
	span.WithExtra("tokens", strconv.Itoa(len(res.Tokens))).
		WithExtra("errors", strconv.Itoa(len(lexed.errors))).
		WithExtra("cached", strconv.FormatBool(res.Cached)).
		End("")

	status := StatusDone
	if bag.HasErrors() {
		status = StatusError
	}
	if !res.Cached || status == StatusError {
		opts.Progress.emit(Event{File: path, Stage: StageLex, Status: status, Elapsed: elapsed})
	}
	return res
}
