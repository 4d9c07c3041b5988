// Package wgsl provides WGSL (WebGPU Shading Language) parsing.
//
// # Components
//
//   - Lexer: tokenizes WGSL source into tokens carrying byte spans
//   - Parser: parses the token stream into a flat syntax tree
//   - Tree: the flat node/extra-data storage and its query API
//
// # The flat tree
//
// The tree is stored as three arrays: the token sequence, a dense node
// array and a shared extra-data array. A node holds a kind tag, the
// index of its anchoring token and two 32-bit fields whose meaning
// depends on the kind: a child node index, an extra-data index, or the
// bounds of a contiguous run of child indices in extra-data. The layout
// for every kind is documented once, on the NodeKind constants; both
// the parser and the query API follow that table.
//
// Node 0 is always the root, the ordered list of top-level
// declarations. It exists even for empty input, which also lets 0 stand
// for "absent" in optional child references.
//
// # Usage
//
// To parse a WGSL shader:
//
//	tree, diags := wgsl.Parse(source)
//	if diags.HasErrors() {
//	    // exactly one syntax diagnostic; no tree
//	}
//	for _, decl := range tree.RootDecls() {
//	    switch tree.NodeKind(decl) {
//	    case wgsl.NodeStructDecl:
//	        // ...
//	    }
//	}
//
// Parsing stops at the first syntax error: a failed parse yields
// diagnostics instead of a tree, never both. Semantic rules (name
// resolution, struct layout legality) are the sema package's job.
//
// # WGSL Specification
//
// This implementation follows the WGSL specification:
// https://www.w3.org/TR/WGSL/
package wgsl
