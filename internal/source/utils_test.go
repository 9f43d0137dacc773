package source

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeContent(t *testing.T) {
	got, changed := normalizeCRLF([]byte("a\r\nb\rc\r\n"))
	assert.True(t, changed)
	assert.Equal(t, "a\nb\rc\n", string(got))

	got, changed = normalizeCRLF([]byte("plain\n"))
	assert.False(t, changed)
	assert.Equal(t, "plain\n", string(got))

	got, changed = removeBOM([]byte("\xEF\xBB\xBFlet"))
	assert.True(t, changed)
	assert.Equal(t, "let", string(got))

	_, changed = removeBOM([]byte("\xEF\xBBlet"))
	assert.False(t, changed, "a truncated BOM is content")
}

func TestRelativePath(t *testing.T) {
	base := filepath.Join(t.TempDir(), "base")

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"inside", filepath.Join(base, "nested", "file.un"), "nested/file.un"},
		{"base itself", base, "."},
		{"outside falls back to absolute", filepath.Join(filepath.Dir(base), "other", "file.un"),
			normalizePath(filepath.Join(filepath.Dir(base), "other", "file.un"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RelativePath(tt.target, base)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAbsolutePathAndBaseName(t *testing.T) {
	dir := t.TempDir()
	got, err := AbsolutePath(filepath.Join(dir, "a", "..", "b.un"))
	require.NoError(t, err)
	assert.Equal(t, normalizePath(filepath.Join(dir, "b.un")), got)
	assert.Equal(t, "b.un", BaseName(got))
}
