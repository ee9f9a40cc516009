// Package logging assembles structured slog loggers used across doorops
// commands.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing (stderr plus a size-rotated log file), and exposes context-aware
// helpers so procedure code tags every line with the run identifier and the
// procedure name. A no-op logger is provided for tests and wiring code that
// cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so report output on
// stdout stays separate from diagnostics.
package logging
