// Package trace records what the unnamedc driver is doing while it loads and
// tokenizes files, to help diagnose slow inputs and hangs.
//
// Enable it from the command line:
//
//	unnamedc tokenize --trace=- --trace-level=detail src/
//	unnamedc tokenize --trace=out.json --trace-mode=both src/
//
// Tracer implementations:
//
//   - Nop: disabled tracing
//   - StreamTracer: writes each event as it happens
//   - RingTracer: keeps the last N events for dumps after a failure
//   - MultiTracer: fans out to several tracers
//
// Levels filter by scope: LevelPhase keeps driver and pass spans,
// LevelDetail adds per-file spans, LevelDebug adds per-token points.
//
// Tracers travel in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopeFile, path)
//	defer span.End("")
package trace
