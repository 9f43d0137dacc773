// Package diag defines the diagnostic model shared by the lexer, the driver
// and the CLI.
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form
//     such as "LEX1003".
//   - File and Primary – the file and the span inside it the finding is about.
//   - Label – optional text rendered under the primary span.
//   - Notes – optional secondary spans/messages in the same file.
//
// Producers emit through a Reporter so storage stays decoupled: BagReporter
// aggregates into a Bag (limit, Sort, Dedup), DedupReporter filters repeats.
// Rendering lives in internal/diagfmt; this package performs no IO.
package diag
