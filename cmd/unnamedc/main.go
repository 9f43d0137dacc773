package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Aern-do/unnamedc/internal/version"
)

// errHasDiagnostics makes the process exit with status 1 without printing
// anything more: the diagnostics were already rendered.
var errHasDiagnostics = errors.New("errors reported")

var rootCmd = &cobra.Command{
	Use:           "unnamedc",
	Short:         "unnamed language compiler front end",
	Long:          `unnamedc tokenizes unnamed source files and reports lexical diagnostics`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		color.NoColor = !s.color
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		return startProfiling(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		stopProfiling()
		runTraceCleanup(false)
	},
}

func main() {
	registerFlags()
	if err := rootCmd.Execute(); err != nil {
		// PostRun не вызывается при ошибке RunE
		stopProfiling()
		runTraceCleanup(true)
		if !errors.Is(err, errHasDiagnostics) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func registerFlags() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "print diagnostics only")
	pf.Int("max-diagnostics", 0, "maximum number of diagnostics to show (0 = from unnamed.toml)")
	pf.String("config", "", "path to unnamed.toml (default: search from the working directory up)")
	pf.String("trace", "", "write trace events to file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson|chrome)")
	pf.Int("trace-ring-size", 4096, "events kept in ring mode")
	pf.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 = off)")
	pf.String("cpuprofile", "", "write CPU profile to file")
	pf.String("memprofile", "", "write heap profile to file on exit")
	pf.String("runtime-trace", "", "write Go runtime trace to file")
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) // #nosec G115
}
