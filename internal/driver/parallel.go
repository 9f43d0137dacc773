package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Aern-do/unnamedc/internal/diag"
	"github.com/Aern-do/unnamedc/internal/source"
	"github.com/Aern-do/unnamedc/internal/trace"
)

// ListSourceFiles returns every *.un file under dir, sorted.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// скрытые каталоги (.git, .cache) не обходим
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	slices.Sort(files)
	return files, nil
}

// ExpandInputs replaces directories in paths with the source files they
// contain. Files are kept whatever their extension; duplicates are dropped
// keeping the first occurrence. A path that does not exist is kept so the
// load step can report it.
func ExpandInputs(paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	seen := make(map[string]struct{}, len(paths))
	add := func(p string) {
		key := filepath.Clean(p)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			add(p)
			continue
		}
		files, err := ListSourceFiles(p)
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", p, err)
		}
		for _, f := range files {
			add(f)
		}
	}
	return out, nil
}

// TokenizeFiles loads every path and tokenizes the files in parallel.
// Results follow the order of paths. Load failures are reported per file
// as IOLoadFileError diagnostics; the returned error is only set when ctx
// is cancelled.
func TokenizeFiles(ctx context.Context, paths []string, opts Options) (*Result, error) {
	ctx, run := trace.Start(ctx, trace.ScopeDriver, "tokenize")
	defer run.End("")

	fileSet := newFileSet(opts)
	strs := opts.Strings
	if strs == nil {
		strs = source.NewInterner()
	}
	res := &Result{FileSet: fileSet, Strings: strs, Files: make([]FileResult, len(paths))}
	if len(paths) == 0 {
		return res, nil
	}

	for _, path := range paths {
		opts.Progress.emit(Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// FileSet не потокобезопасен, поэтому файлы грузятся последовательно
	loadCtx, loadSpan := trace.Start(ctx, trace.ScopePass, "load")
	loadIdx := opts.begin("load")
	failed := 0
	for i, path := range paths {
		fileID, err := fileSet.Load(path)
		if err != nil {
			failed++
			bag := diag.NewBag(1)
			bag.Add(diag.NewError(diag.IOLoadFileError, source.NoFileID, source.Span{},
				fmt.Sprintf("cannot load %s: %v", path, err)))
			res.Files[i] = FileResult{Path: path, FileID: source.NoFileID, Bag: bag, Err: err}
			trace.Point(loadCtx, trace.ScopeFile, path, err.Error())
			opts.Progress.emit(Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
			continue
		}
		res.Files[i] = FileResult{Path: path, FileID: fileID}
	}
	opts.end(loadIdx, fmt.Sprintf("%d files", len(paths)))
	loadSpan.WithExtra("files", strconv.Itoa(len(paths))).
		WithExtra("failed", strconv.Itoa(failed)).
		End("")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	lexCtx, lexSpan := trace.Start(ctx, trace.ScopePass, "lex")
	lexIdx := opts.begin("lex")

	// индексы уникальны для каждой горутины, мьютекс не нужен
	g, gctx := errgroup.WithContext(lexCtx)
	g.SetLimit(min(jobs, len(paths)))
	for i := range res.Files {
		if res.Files[i].Err != nil {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f := fileSet.Get(res.Files[i].FileID)
			res.Files[i] = tokenizeFile(gctx, paths[i], f, strs, &opts)
			return nil
		})
	}
	err := g.Wait()

	opts.end(lexIdx, fmt.Sprintf("jobs=%d", jobs))
	lexSpan.WithExtra("jobs", strconv.Itoa(jobs)).End("")

	if err != nil {
		return res, err
	}
	return res, ctx.Err()
}
