package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aern-do/unnamedc/internal/diag"
	"github.com/Aern-do/unnamedc/internal/observ"
	"github.com/Aern-do/unnamedc/internal/source"
	"github.com/Aern-do/unnamedc/internal/testkit"
	"github.com/Aern-do/unnamedc/internal/token"
	"github.com/Aern-do/unnamedc/internal/trace"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	return dir
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func codes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestListSourceFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"b.un":            "",
		"a.un":            "",
		"sub/c.un":        "",
		"notes.txt":       "",
		".hidden/skip.un": "",
	})
	files, err := ListSourceFiles(dir)
	require.NoError(t, err)
	want := []string{
		filepath.Join(dir, "a.un"),
		filepath.Join(dir, "b.un"),
		filepath.Join(dir, "sub", "c.un"),
	}
	assert.Equal(t, want, files)
}

func TestExpandInputs(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.un": "", "sub/b.un": "", "x.txt": ""})
	a := filepath.Join(dir, "a.un")
	missing := filepath.Join(dir, "missing.un")

	got, err := ExpandInputs([]string{a, dir, filepath.Join(dir, "x.txt"), missing})
	require.NoError(t, err)
	assert.Equal(t, []string{a, filepath.Join(dir, "sub", "b.un"), filepath.Join(dir, "x.txt"), missing}, got)
}

func TestTokenizeFilesSharedInterner(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.un": "func main() { let count = 1; }",
		"b.un": "func helper(count) { count }",
	})
	paths, err := ExpandInputs([]string{dir})
	require.NoError(t, err)

	res, err := TokenizeFiles(context.Background(), paths, Options{Jobs: 2})
	require.NoError(t, err)
	require.Len(t, res.Files, 2)
	assert.False(t, res.HasErrors())

	a, b := res.Files[0], res.Files[1]
	assert.Equal(t, paths[0], a.Path)
	assert.Equal(t, token.EOF, a.Tokens[len(a.Tokens)-1].Kind)
	require.Len(t, a.Idents, 2)
	require.Len(t, b.Idents, 3)

	// "count" из разных файлов получает один и тот же ID
	assert.Equal(t, a.Idents[1], b.Idents[1])
	assert.Equal(t, b.Idents[1], b.Idents[2])
	assert.Equal(t, "count", res.Strings.MustLookup(a.Idents[1]))
	assert.NotEqual(t, a.Idents[0], b.Idents[0])
}

func TestResyncAfterInvalidToken(t *testing.T) {
	res, err := TokenizeSource(context.Background(), "r.un", []byte("a @ b"), Options{})
	require.NoError(t, err)
	fr := res.Files[0]
	assert.Equal(t, []token.Kind{token.Ident, token.Invalid, token.Ident, token.EOF}, kinds(fr.Tokens))
	assert.False(t, fr.Stopped)
	assert.Equal(t, []diag.Code{diag.LexInvalidToken}, codes(fr.Bag))
	assert.Equal(t, "@", fr.Tokens[1].Text)

	res, err = TokenizeSource(context.Background(), "r.un", []byte("a @ b"), Options{StopOnInvalid: true})
	require.NoError(t, err)
	fr = res.Files[0]
	assert.Equal(t, []token.Kind{token.Ident, token.Invalid}, kinds(fr.Tokens))
	assert.True(t, fr.Stopped)
}

func TestUnclosedStringStopsFile(t *testing.T) {
	res, err := TokenizeSource(context.Background(), "s.un", []byte(`x "abc @`), Options{})
	require.NoError(t, err)
	fr := res.Files[0]
	assert.True(t, fr.Stopped)
	assert.Equal(t, token.Invalid, fr.Tokens[len(fr.Tokens)-1].Kind)
	assert.Equal(t, []diag.Code{diag.LexUnclosedString}, codes(fr.Bag))
	assert.True(t, res.HasErrors())
}

func TestLoadFailureIsPerFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{"ok.un": "let x"})
	missing := filepath.Join(dir, "missing.un")
	ok := filepath.Join(dir, "ok.un")

	res, err := TokenizeFiles(context.Background(), []string{missing, ok}, Options{})
	require.NoError(t, err)

	bad := res.Files[0]
	require.Error(t, bad.Err)
	assert.Equal(t, source.NoFileID, bad.FileID)
	assert.Equal(t, []diag.Code{diag.IOLoadFileError}, codes(bad.Bag))
	assert.Contains(t, bad.Bag.Items()[0].Message, "missing.un")

	good := res.Files[1]
	assert.NoError(t, good.Err)
	assert.Equal(t, []token.Kind{token.KwLet, token.Ident, token.EOF}, kinds(good.Tokens))

	_, err = Tokenize(context.Background(), missing, Options{})
	assert.Error(t, err)
}

func TestDiagnosticsCap(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.un": "@ @ @", "b.un": "# #"})
	paths, err := ListSourceFiles(dir)
	require.NoError(t, err)
	res, err := TokenizeFiles(context.Background(), paths, Options{})
	require.NoError(t, err)

	assert.Equal(t, 5, res.Diagnostics(0).Len())
	capped := res.Diagnostics(4)
	assert.Equal(t, 4, capped.Len())
	// порядок входных файлов сохраняется
	assert.Equal(t, res.Files[0].FileID, capped.Items()[0].File)
	assert.Equal(t, res.Files[1].FileID, capped.Items()[3].File)
}

func TestTokenCacheRoundTrip(t *testing.T) {
	dir := writeFiles(t, map[string]string{"c.un": "let s = \"a\\nb\"; 0xff @ x"})
	path := filepath.Join(dir, "c.un")
	cache, err := OpenTokenCache(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)

	first, err := Tokenize(context.Background(), path, Options{Cache: cache})
	require.NoError(t, err)
	require.False(t, first.Files[0].Cached)

	second, err := Tokenize(context.Background(), path, Options{Cache: cache})
	require.NoError(t, err)
	fr := second.Files[0]
	require.True(t, fr.Cached)

	if diff := cmp.Diff(first.Files[0].Tokens, fr.Tokens); diff != "" {
		t.Errorf("cached tokens differ (-fresh +cached):\n%s", diff)
	}
	assert.Equal(t, codes(first.Files[0].Bag), codes(fr.Bag))
	assert.Equal(t, []diag.Code{diag.LexInvalidToken}, codes(fr.Bag))
	assert.Equal(t, first.Strings.MustLookup(first.Files[0].Idents[0]), second.Strings.MustLookup(fr.Idents[0]))

	// другая политика восстановления не должна попадать в тот же ключ
	third, err := Tokenize(context.Background(), path, Options{Cache: cache, StopOnInvalid: true})
	require.NoError(t, err)
	assert.False(t, third.Files[0].Cached)
	assert.True(t, third.Files[0].Stopped)
}

func TestTokenCacheCorruptEntry(t *testing.T) {
	content := "let x = 1"
	dir := writeFiles(t, map[string]string{"k.un": content})
	path := filepath.Join(dir, "k.un")
	cache, err := OpenTokenCache(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)

	res, err := Tokenize(context.Background(), path, Options{Cache: cache})
	require.NoError(t, err)
	hash := res.FileSet.Get(res.Files[0].FileID).Hash
	entry := cache.pathFor(cacheKey(hash, false))
	require.FileExists(t, entry)
	require.NoError(t, os.WriteFile(entry, []byte{0xc1, 0x00}, 0o600))

	res, err = Tokenize(context.Background(), path, Options{Cache: cache})
	require.NoError(t, err)
	fr := res.Files[0]
	assert.False(t, fr.Cached)
	assert.Equal(t, []diag.Code{diag.IOCacheError}, codes(fr.Bag))
	assert.Equal(t, diag.SevWarning, fr.Bag.Items()[0].Severity)
	assert.False(t, fr.HasErrors())
	assert.Len(t, fr.Tokens, 5)

	// запись перезаписана корректной
	res, err = Tokenize(context.Background(), path, Options{Cache: cache})
	require.NoError(t, err)
	assert.True(t, res.Files[0].Cached)

	require.NoError(t, cache.DropAll())
	assert.NoFileExists(t, entry)
	assert.DirExists(t, cache.Dir())
}

func TestDecodeRejectsForeignSpans(t *testing.T) {
	payload := &TokenPayload{Tokens: []cachedToken{{Kind: token.Ident, Start: 0, End: 10}}}
	_, err := decodeLexed(payload, source.NewSource("ab", "x.un"))
	assert.Error(t, err)
}

func TestNilCacheIsDisabled(t *testing.T) {
	var c *TokenCache
	hit, err := c.Get([32]byte{}, &TokenPayload{})
	assert.False(t, hit)
	assert.NoError(t, err)
	assert.NoError(t, c.Put([32]byte{}, &TokenPayload{}))
	assert.NoError(t, c.DropAll())
}

func TestProgressAndTimings(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.un": "a", "b.un": "@"})
	paths, err := ListSourceFiles(dir)
	require.NoError(t, err)

	var mu sync.Mutex
	last := map[string]Event{}
	queued := 0
	timer := observ.NewTimer()
	opts := Options{
		Timer: timer,
		Progress: func(ev Event) {
			mu.Lock()
			defer mu.Unlock()
			if ev.Status == StatusQueued {
				queued++
			}
			last[ev.File] = ev
		},
	}
	_, err = TokenizeFiles(context.Background(), paths, opts)
	require.NoError(t, err)

	assert.Equal(t, 2, queued)
	assert.Equal(t, StatusDone, last[paths[0]].Status)
	assert.Equal(t, StatusError, last[paths[1]].Status)
	assert.Equal(t, StageLex, last[paths[1]].Stage)

	var names []string
	for _, p := range timer.Report().Phases {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"load", "lex", "lex (per file)"}, names)
}

func TestCancelledContext(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.un": "a"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := TokenizeFiles(ctx, []string{filepath.Join(dir, "a.un")}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTraceFileSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDetail, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tr)

	_, err := TokenizeSource(ctx, "t.un", []byte("x @"), Options{})
	require.NoError(t, err)
	require.NoError(t, tr.Close())

	out := buf.String()
	assert.Contains(t, out, "→ file t.un")
	assert.Contains(t, out, "{cached=false, errors=1, tokens=3}")
}

func TestStageAndStatusStrings(t *testing.T) {
	assert.Equal(t, "cache", StageCache.String())
	assert.Equal(t, "cached", StatusCached.String())
	assert.Equal(t, "unknown", Status(99).String())
}

func TestTestdataCorpus(t *testing.T) {
	paths, err := ListSourceFiles(filepath.Join("..", "..", "testdata"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	res, err := TokenizeFiles(context.Background(), paths, Options{Jobs: 2})
	require.NoError(t, err)
	require.Len(t, res.Files, len(paths))

	for _, fr := range res.Files {
		require.NoError(t, fr.Err, fr.Path)
		src := res.FileSet.Get(fr.FileID).Source()
		require.NoError(t, testkit.CheckTokenStream(src, fr.Tokens), fr.Path)
		// только invalid.un содержит ошибки
		assert.Equal(t, filepath.Base(fr.Path) == "invalid.un", fr.HasErrors(), fr.Path)
	}
}
