// Package logging assembles the structured slog loggers used by samplekit.
//
// It owns the console and JSON handlers, level parsing, output plumbing and
// an optional JSON debug tee. Context helpers tag log lines with the run id
// and the pair being processed so concurrent join workers stay readable.
package logging
