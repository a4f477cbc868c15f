// Package cli is the command line front end of the interpreter.
//
// With a FILE argument the script runs as a single chunk; "-" reads the
// script from stdin. Without one, a terminal on stdin gets the interactive
// REPL and anything else is read to EOF and run as a single chunk.
//
// Flags may also be set in <user config dir>/vispel/config.yaml, or in the
// file named by --config, using the flag names as keys:
//
//	log-level: debug
//	color: false
//	max_depth: 500
//
// # REPL
//
// Input is collected until it forms complete statements, showing the
// continuation prompt meanwhile. Ctrl-C drops the pending input and Ctrl-D
// leaves. Tab completes keywords and global names. Lines starting with a
// colon are commands: :globals, :reset, :help and :quit.
package cli
