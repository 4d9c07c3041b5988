// Package sema validates parsed WGSL trees against the language's
// semantic rules.
//
// The analyser runs two passes over the tree's top-level declarations.
// The collection pass records every declared name into a global symbol
// environment and reports redeclarations, anchoring the diagnostic at
// the second occurrence with a note pointing at the first. The
// validation pass then checks each declaration: named types must
// resolve to a struct or type alias, a runtime-sized array may only be
// the last struct member, and a member type must not resolve (through
// aliases) to an opaque handle type such as a sampler.
//
// Where the parser stops at the first syntax error, the analyser is
// exhaustive: all rules are checked everywhere and every violation is
// returned in one list. Analyse has no side effects on the tree and is
// safe to call repeatedly or across independent trees concurrently.
package sema
