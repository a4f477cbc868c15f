// Package log is the interpreter's structured logger, a thin layer over
// [log/slog] configured with functional options, plus the diagnostics sink
// that shows lexical, syntax, resolution and runtime errors to the user.
//
// Logger records are for developers: frame pushes, resolved hop counts and
// native calls are traced at [LevelTrace]. Diagnostics are for users and are
// never filtered by level.
//
//	logger := log.Make(os.Stderr, log.WithLevel(log.LevelTrace), log.WithFormat(log.FormatText))
//	logger.Trace("push frame", slog.Int("depth", 3))
package log
