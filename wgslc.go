// Package wgslc is the front end of a WGSL (WebGPU Shading Language)
// toolchain: it turns shader source text into a validated, queryable
// syntax tree and a precise set of diagnostics.
//
// The pipeline is lexer, parser, then semantic analyser, built around
// a flat, index-based syntax tree and a uniform diagnostic record. It
// is intended for downstream consumers (code generators, linters,
// editor tooling) that need a structurally sound representation plus
// exact byte spans for every error.
//
// Example usage:
//
//	source := `
//	struct Vertex {
//	    position: vec4<f32>,
//	    uv: vec2<f32>,
//	}
//	`
//	tree, diags := wgslc.Check(source)
//	if diags.HasErrors() {
//	    for _, d := range diags {
//	        fmt.Println(d.Msg)
//	    }
//	}
//
// For finer control use the individual stages: wgsl.Parse for the
// tree, sema.Analyse for validation, and the diag package to render
// diagnostics as terminal code frames.
package wgslc

import (
	"github.com/gogpu/wgslc/diag"
	"github.com/gogpu/wgslc/sema"
	"github.com/gogpu/wgslc/wgsl"
)

// Parse parses WGSL source into a flat syntax tree. Exactly one of the
// results is set: a completed tree, or a non-empty diagnostic list
// describing the first syntax error.
func Parse(source string) (*wgsl.Tree, diag.List) {
	return wgsl.Parse(source)
}

// Analyse validates a parsed tree against the language's semantic
// rules. A nil result means the tree is fully valid; otherwise every
// violation is reported in one list.
func Analyse(tree *wgsl.Tree) diag.List {
	return sema.Analyse(tree)
}

// Check runs the whole front end over source. On success the tree is
// returned with a nil list. On a syntax error the tree is nil; on
// semantic errors the structurally complete tree is returned alongside
// the diagnostics, so tooling can still inspect it.
func Check(source string) (*wgsl.Tree, diag.List) {
	tree, diags := wgsl.Parse(source)
	if diags.HasErrors() {
		return nil, diags
	}
	if semDiags := sema.Analyse(tree); semDiags.HasErrors() {
		return tree, semDiags
	}
	return tree, nil
}
