package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command in dir with args and returns stdout and stderr.
func execute(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	stopProfiling()
	runTraceCleanup(err != nil)
	resetFlags()
	return stdout.String(), stderr.String(), err
}

// resetFlags restores defaults: cobra keeps flag values between Execute calls.
func resetFlags() {
	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		reset(c.PersistentFlags())
		reset(c.Flags())
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(rootCmd)
}

func TestMain(m *testing.M) {
	registerFlags()
	os.Exit(m.Run())
}

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	return dir
}

func TestTokenizeListing(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"unnamed.toml": "[cache]\nenabled = false\n",
		"main.un":      "let x = 1",
	})
	stdout, stderr, err := execute(t, dir, "tokenize", "main.un")
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, `"let" at 1:1 (0..3)`)
	assert.Contains(t, stdout, "= 1")
}

func TestTokenizeReportsDiagnostics(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"unnamed.toml": "[cache]\nenabled = false\n[output]\nformat = \"short\"\n",
		"src/a.un":     "let @ = 1",
		"src/b.un":     "ok",
	})
	stdout, stderr, err := execute(t, dir, "tokenize", "--quiet", "src")
	require.ErrorIs(t, err, errHasDiagnostics)
	assert.Empty(t, stdout)
	assert.Equal(t, "error LEX1001 src/a.un:1:5 invalid token\n", stderr)
}

func TestTokenizeJSONListingAcrossFiles(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"unnamed.toml": "[cache]\nenabled = false\n",
		"a.un":         "a",
		"b.un":         "b",
	})
	stdout, _, err := execute(t, dir, "tokenize", "--format", "json", ".")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(stdout, `"file"`))
}

func TestTokenizeMissingFile(t *testing.T) {
	dir := writeProject(t, map[string]string{"unnamed.toml": "[cache]\nenabled = false\n"})
	_, stderr, err := execute(t, dir, "tokenize", "--diag-format", "short", "nope.un")
	require.ErrorIs(t, err, errHasDiagnostics)
	// у ошибки загрузки нет позиции, в short она не попадает
	assert.Empty(t, stderr)

	_, stderr, err = execute(t, dir, "tokenize", "--color", "off", "--diag-format", "pretty", "nope.un")
	require.ErrorIs(t, err, errHasDiagnostics)
	assert.Contains(t, stderr, "ERROR IO4001: cannot load nope.un")
}

func TestBadConfigFails(t *testing.T) {
	dir := writeProject(t, map[string]string{"unnamed.toml": "[output]\ncolor = \"maybe\"\n", "a.un": ""})
	_, _, err := execute(t, dir, "tokenize", "a.un")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[output].color")
}

func TestVersionJSON(t *testing.T) {
	stdout, _, err := execute(t, t.TempDir(), "version", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"tool": "unnamedc"`)
}

func TestCacheClean(t *testing.T) {
	cacheDir := filepath.Join(t.TempDir(), "tok")
	dir := writeProject(t, map[string]string{
		"unnamed.toml": "[cache]\ndir = \"" + filepath.ToSlash(cacheDir) + "\"\n",
		"a.un":         "a b c",
	})
	_, _, err := execute(t, dir, "tokenize", "--quiet", "a.un")
	require.NoError(t, err)
	entries, err := os.ReadDir(cacheDir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)

	stdout, _, err := execute(t, dir, "cache", "clean")
	require.NoError(t, err)
	assert.Contains(t, stdout, "removed")
	entries, err = os.ReadDir(cacheDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProfilingFlags(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"unnamed.toml": "[cache]\nenabled = false\n",
		"a.un":         "let a = 1",
	})
	mem := filepath.Join(dir, "mem.out")
	cpu := filepath.Join(dir, "cpu.out")
	_, _, err := execute(t, dir, "tokenize", "--quiet", "--memprofile", mem, "--cpuprofile", cpu, "a.un")
	require.NoError(t, err)
	for _, p := range []string{mem, cpu} {
		info, err := os.Stat(p)
		require.NoError(t, err, p)
		assert.Positive(t, info.Size(), p)
	}
}
