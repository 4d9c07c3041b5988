// Package diag defines the diagnostic record shared by the parser and
// the semantic analyser, and the utilities for turning byte offsets back
// into human-readable positions.
//
// A Diagnostic is pure data: a message, a half-open byte range into the
// analysed buffer, and an optional secondary note. Both producer stages
// emit this exact shape, so tooling needs a single rendering path. Line
// and column numbers are never stored; they are recomputed from the raw
// buffer on demand (PositionOf), which the producers guarantee is always
// possible because every Loc indexes the exact buffer that was analysed.
//
// Renderer is the consumer-facing half: it prints a diagnostic as a code
// frame with a caret run under the offending span, optionally styled for
// terminals.
package diag
