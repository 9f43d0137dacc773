package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/Aern-do/unnamedc/internal/lexer"
	"github.com/Aern-do/unnamedc/internal/source"
	"github.com/Aern-do/unnamedc/internal/token"
)

// Current schema version - increment when TokenPayload format changes
const tokenCacheSchemaVersion uint16 = 1

// TokenCache stores token streams on disk keyed by file content.
// Safe for concurrent use.
type TokenCache struct {
	mu  sync.RWMutex
	dir string
}

type cachedToken struct {
	_msgpack struct{} `msgpack:",as_array"`

	Kind      token.Kind
	Start     uint32
	End       uint32
	ValueKind token.ValueKind
	Int       uint64
	Str       string
}

type cachedError struct {
	_msgpack struct{} `msgpack:",as_array"`

	Kind  lexer.ErrorKind
	Start uint32
	End   uint32
}

// TokenPayload is the on-disk form of one lexed file. Token text is not
// stored; it is sliced back out of the source on load.
type TokenPayload struct {
	Schema  uint16
	Tokens  []cachedToken
	Errors  []cachedError
	Stopped bool
}

// OpenTokenCache opens the cache at dir, or at $XDG_CACHE_HOME/unnamedc/tokens
// (~/.cache when unset) if dir is empty.
func OpenTokenCache(dir string) (*TokenCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "unnamedc", "tokens")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("token cache: %w", err)
	}
	return &TokenCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *TokenCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// cacheKey mixes the schema and lexing policy into the content hash:
// the same file lexed with StopOnInvalid has a different token stream.
func cacheKey(contentHash [32]byte, stopOnInvalid bool) [32]byte {
	h := sha256.New()
	var hdr [3]byte
	binary.LittleEndian.PutUint16(hdr[:2], tokenCacheSchemaVersion)
	if stopOnInvalid {
		hdr[2] = 1
	}
	_, _ = h.Write(hdr[:])
	_, _ = h.Write(contentHash[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func (c *TokenCache) pathFor(key [32]byte) string {
	hexKey := hex.EncodeToString(key[:])
	// два уровня, чтобы каталог не разрастался
	return filepath.Join(c.dir, hexKey[:2], hexKey[2:]+".mp")
}

// Put serializes and writes a payload to the cache.
func (c *TokenCache) Put(key [32]byte, payload *TokenPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	payload.Schema = tokenCacheSchemaVersion
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	if err := os.Rename(f.Name(), p); err != nil {
		return err
	}
	committed = true
	return nil
}

// Get reads a payload. A missing entry or an entry from another schema
// version is a miss, not an error.
func (c *TokenCache) Get(key [32]byte, out *TokenPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != tokenCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll removes every cached entry.
func (c *TokenCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименовываем, чтобы параллельный запуск не увидел полупустой каталог
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func encodeLexed(lx *lexedFile) *TokenPayload {
	payload := &TokenPayload{
		Tokens:  make([]cachedToken, len(lx.tokens)),
		Errors:  make([]cachedError, len(lx.errors)),
		Stopped: lx.stopped,
	}
	for i, tok := range lx.tokens {
		payload.Tokens[i] = cachedToken{
			Kind:      tok.Kind,
			Start:     tok.Span.Start,
			End:       tok.Span.End,
			ValueKind: tok.Value.Kind,
			Int:       tok.Value.Int,
			Str:       tok.Value.Str,
		}
	}
	for i, e := range lx.errors {
		payload.Errors[i] = cachedError{Kind: e.Kind, Start: e.Span.Start, End: e.Span.End}
	}
	return payload
}

// decodeLexed rebuilds tokens against src. A span outside src means the
// entry does not belong to this content.
func decodeLexed(payload *TokenPayload, src source.Source) (*lexedFile, error) {
	n := uint32(len(src.Content)) // #nosec G115 -- FileSet rejects larger files
	out := &lexedFile{
		tokens:  make([]token.Token, len(payload.Tokens)),
		errors:  make([]lexer.Error, len(payload.Errors)),
		stopped: payload.Stopped,
	}
	for i, ct := range payload.Tokens {
		if ct.Start > ct.End || ct.End > n {
			return nil, fmt.Errorf("token %d span %d..%d out of range", i, ct.Start, ct.End)
		}
		sp := source.Span{Start: ct.Start, End: ct.End}
		out.tokens[i] = token.Token{
			Kind:  ct.Kind,
			Span:  sp,
			Text:  src.Slice(sp),
			Value: token.Value{Kind: ct.ValueKind, Int: ct.Int, Str: ct.Str},
		}
	}
	for i, ce := range payload.Errors {
		out.errors[i] = lexer.Error{Kind: ce.Kind, Span: source.Span{Start: ce.Start, End: ce.End}}
	}
	return out, nil
}
