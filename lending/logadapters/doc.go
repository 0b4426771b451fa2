// Package logadapters bridges structured logging libraries to the
// dependency-free lending.Logger interface.
//
// The lending packages only ever see lending.Logger, so applications can
// plug in zerolog, slog, or anything else without the core packages taking
// a logging dependency.
package logadapters
