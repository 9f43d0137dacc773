package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aern-do/unnamedc/internal/diag"
	"github.com/Aern-do/unnamedc/internal/diagfmt"
	"github.com/Aern-do/unnamedc/internal/driver"
	"github.com/Aern-do/unnamedc/internal/observ"
	"github.com/Aern-do/unnamedc/internal/version"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.un|dir|- ...",
	Short: "Tokenize unnamed source files",
	Long: `Tokenize breaks unnamed source files into tokens and reports lexical errors.
Directories are searched recursively for *.un files; "-" reads standard input.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTokenize,
}

func init() {
	f := tokenizeCmd.Flags()
	f.String("format", "pretty", "token listing format (pretty|json)")
	f.String("diag-format", "", "diagnostics format (pretty|json|short|sarif); default from unnamed.toml")
	f.String("path-mode", "auto", "how diagnostics show paths (auto|absolute|relative|basename)")
	f.Int8("context", 1, "source lines shown above each diagnostic")
	f.Bool("notes", true, "show diagnostic notes")
	f.String("ui", "off", "interactive progress view (auto|on|off)")
	f.Bool("timings", false, "print pass timings to stderr")
	f.Bool("no-cache", false, "do not read or write the token cache")
	f.Int("jobs", 0, "parallel workers (0 = from unnamed.toml, then GOMAXPROCS)")
	f.Bool("stop-on-invalid", false, "stop a file at its first invalid token")
}

type tokenizeFlags struct {
	listing    string
	diagFormat diagfmt.Format
	pathMode   diagfmt.PathMode
	context    int8
	notes      bool
	ui         uiMode
	timings    bool
}

func readTokenizeFlags(cmd *cobra.Command) (tokenizeFlags, driver.Options, error) {
	f := cmd.Flags()
	var tf tokenizeFlags
	var opts driver.Options
	var err error

	if tf.listing, err = f.GetString("format"); err != nil {
		return tf, opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch tf.listing {
	case "pretty", "json":
	default:
		return tf, opts, fmt.Errorf("unknown format %q (expected pretty|json)", tf.listing)
	}

	diagFormat, err := f.GetString("diag-format")
	if err != nil {
		return tf, opts, fmt.Errorf("failed to get diag-format flag: %w", err)
	}
	if diagFormat == "" {
		diagFormat = current.cfg.Output.Format
	}
	if tf.diagFormat, err = diagfmt.ParseFormat(diagFormat); err != nil {
		return tf, opts, err
	}

	pathMode, err := f.GetString("path-mode")
	if err != nil {
		return tf, opts, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	if tf.pathMode, err = diagfmt.ParsePathMode(pathMode); err != nil {
		return tf, opts, err
	}
	if tf.context, err = f.GetInt8("context"); err != nil {
		return tf, opts, fmt.Errorf("failed to get context flag: %w", err)
	}
	if tf.notes, err = f.GetBool("notes"); err != nil {
		return tf, opts, fmt.Errorf("failed to get notes flag: %w", err)
	}
	uiValue, err := f.GetString("ui")
	if err != nil {
		return tf, opts, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if tf.ui, err = readUIMode(uiValue); err != nil {
		return tf, opts, err
	}
	if tf.timings, err = f.GetBool("timings"); err != nil {
		return tf, opts, fmt.Errorf("failed to get timings flag: %w", err)
	}

	cfg := current.cfg
	opts.MaxDiagnostics = cfg.Lexer.MaxDiagnostics
	opts.StopOnInvalid = !cfg.Lexer.Resync
	opts.Jobs = cfg.Build.Jobs
	if f.Changed("jobs") {
		if opts.Jobs, err = f.GetInt("jobs"); err != nil {
			return tf, opts, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if f.Changed("stop-on-invalid") {
		if opts.StopOnInvalid, err = f.GetBool("stop-on-invalid"); err != nil {
			return tf, opts, fmt.Errorf("failed to get stop-on-invalid flag: %w", err)
		}
	}
	noCache, err := f.GetBool("no-cache")
	if err != nil {
		return tf, opts, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if cfg.Cache.Enabled && !noCache {
		cache, err := driver.OpenTokenCache(cfg.Cache.Dir)
		if err != nil {
			// без кэша работаем дальше
			fmt.Fprintf(os.Stderr, "warning: token cache disabled: %v\n", err)
		} else {
			opts.Cache = cache
		}
	}
	if tf.timings {
		opts.Timer = observ.NewTimer()
	}
	return tf, opts, nil
}

func runTokenize(cmd *cobra.Command, args []string) error {
	tf, opts, err := readTokenizeFlags(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	var result *driver.Result
	if len(args) == 1 && args[0] == "-" {
		content, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return fmt.Errorf("read stdin: %w", readErr)
		}
		result, err = driver.TokenizeSource(ctx, "<stdin>", content, opts)
	} else {
		result, err = tokenizePaths(ctx, args, tf, opts)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !current.quiet {
		if err := writeListing(out, tf.listing, result); err != nil {
			return err
		}
	}

	bag := result.Diagnostics(current.cfg.Lexer.MaxDiagnostics)
	bag.Sort()
	if err := writeDiagnostics(cmd, tf, bag, result); err != nil {
		return err
	}

	if opts.Timer != nil && !current.quiet {
		fmt.Fprint(cmd.ErrOrStderr(), opts.Timer.Summary())
	}
	if result.HasErrors() {
		return errHasDiagnostics
	}
	return nil
}

func tokenizePaths(ctx context.Context, args []string, tf tokenizeFlags, opts driver.Options) (*driver.Result, error) {
	paths, err := driver.ExpandInputs(args)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no %s files found in %s", driver.SourceExt, strings.Join(args, ", "))
	}
	if useProgressView(tf.ui, len(paths)) {
		return runTokenizeWithUI(ctx, "tokenize", paths, opts)
	}
	return driver.TokenizeFiles(ctx, paths, opts)
}

func writeListing(w io.Writer, format string, result *driver.Result) error {
	if format == "json" {
		files := make([]diagfmt.FileTokensOutput, 0, len(result.Files))
		for _, fr := range result.Files {
			if fr.Err != nil {
				continue
			}
			src := result.FileSet.Source(fr.FileID)
			files = append(files, diagfmt.BuildTokensOutput(fr.Path, fr.Tokens, src))
		}
		return diagfmt.FormatTokensJSON(w, files)
	}

	multi := len(result.Files) > 1
	for i, fr := range result.Files {
		if fr.Err != nil {
			continue
		}
		if multi {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "== %s ==\n", fr.Path)
		}
		if err := diagfmt.FormatTokensPretty(w, fr.Tokens, result.FileSet.Source(fr.FileID)); err != nil {
			return err
		}
	}
	return nil
}

func writeDiagnostics(cmd *cobra.Command, tf tokenizeFlags, bag *diag.Bag, result *driver.Result) error {
	// SARIF пишется всегда: пустой отчёт тоже валиден
	if bag.Len() == 0 && tf.diagFormat != diagfmt.FormatSarif {
		return nil
	}
	opts := diagfmt.Options{
		Pretty: diagfmt.PrettyOpts{
			Color:     current.color,
			Context:   tf.context,
			PathMode:  tf.pathMode,
			ShowNotes: tf.notes,
		},
		JSON: diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         tf.pathMode,
			IncludeNotes:     tf.notes,
		},
		Sarif: diagfmt.SarifRunMeta{
			ToolName:       "unnamedc",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		},
	}
	return diagfmt.Write(cmd.ErrOrStderr(), tf.diagFormat, bag, result.FileSet, opts)
}
