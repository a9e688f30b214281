// Package generator compiles a validated manifest into shell startup
// files for fish, zsh, bash and PowerShell.
//
// The compiler is pure: Generate takes a manifest and returns the
// complete set of rendered files as an in-memory map, keyed by shell
// and relative path. Writing, locking and diffing are the output and
// drift packages' business.
//
// Each shell dialect implements the renderer interface, one method
// per generated construct. Guard conditions, predicates and the bail
// wrappers come from literal per-kind, per-shell tables; their text
// is contractual, so regenerating the same manifest always produces
// byte-identical files.
//
// The same guard compiles in two forms. Condition form is the raw
// boolean expression used inside conditional blocks; bail form wraps
// that expression in the shell's early-return idiom and starts module
// files. A top-level not: flips the bail connector itself (fish
// "; and return 0", zsh/bash "&& return 0") so the generated line
// stays free of double negation.
package generator
