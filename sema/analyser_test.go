package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/wgslc/diag"
	"github.com/gogpu/wgslc/wgsl"
)

// analyse parses source (which must be syntactically valid) and runs
// the analyser over it.
func analyse(t *testing.T, source string) diag.List {
	t.Helper()
	tree, diags := wgsl.Parse(source)
	require.Empty(t, diags, "fixture must parse cleanly")
	return Analyse(tree)
}

func TestAnalyseValidShader(t *testing.T) {
	source := `
struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) color: vec3<f32>,
}

type Color = vec3<f32>;

var<uniform> scale: f32;

@vertex
fn vs_main(@location(0) pos: vec3<f32>) -> VertexOutput {
    var out: VertexOutput;
    out.position = vec4<f32>(pos * scale, 1.0);
    return out;
}
`
	diags := analyse(t, source)
	assert.Empty(t, diags)
}

func TestAnalyseRedeclaration(t *testing.T) {
	diags := analyse(t, "var d1 = 0; var d1 = 0;")

	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, "redeclaration of 'd1'", d.Msg)
	assert.Equal(t, diag.Loc{Start: 16, End: 18}, d.Loc, "anchored at the second occurrence")

	require.NotNil(t, d.Note)
	assert.Equal(t, "other declaration here", d.Note.Msg)
	require.NotNil(t, d.Note.Loc)
	assert.Equal(t, diag.Loc{Start: 4, End: 6}, *d.Note.Loc, "note points at the first occurrence")
}

func TestAnalyseRedeclarationReportedOnce(t *testing.T) {
	// A third declaration of the same name is not diagnosed again.
	diags := analyse(t, "var d = 0; var d = 0; var d = 0;")
	assert.Len(t, diags, 1)
}

func TestAnalyseRedeclarationAcrossKinds(t *testing.T) {
	diags := analyse(t, "struct S { m: f32 }\nfn S() {}")

	require.Len(t, diags, 1)
	assert.Equal(t, "redeclaration of 'S'", diags[0].Msg)
}

func TestAnalyseUndeclaredMemberType(t *testing.T) {
	diags := analyse(t, "struct S0 { m: S1 }")

	require.Len(t, diags, 1)
	assert.Equal(t, "use of undeclared identifier 'S1'", diags[0].Msg)
	assert.Equal(t, diag.Loc{Start: 15, End: 17}, diags[0].Loc)
}

func TestAnalyseMemberTypeNotStructOrAlias(t *testing.T) {
	diags := analyse(t, "var S1 = 0; struct S0 { m: S1 }")

	require.Len(t, diags, 1)
	assert.Equal(t, "'S1' is neither an struct or type alias", diags[0].Msg)
	assert.Equal(t, diag.Loc{Start: 27, End: 29}, diags[0].Loc, "anchored at the use, not the declaration")
}

func TestAnalyseRuntimeSizedArrayNotLast(t *testing.T) {
	diags := analyse(t, "struct S { m0: array<f32>, m1: f32 }")

	require.Len(t, diags, 1)
	assert.Equal(t,
		"struct member with runtime-sized array type, must be the last member of the structure",
		diags[0].Msg)
	assert.Equal(t, diag.Loc{Start: 15, End: 20}, diags[0].Loc, "anchored at the array keyword")
}

func TestAnalyseRuntimeSizedArrayLastIsValid(t *testing.T) {
	assert.Empty(t, analyse(t, "struct S { m0: f32, m1: array<f32> }"))
}

func TestAnalyseSizedArrayAnywhereIsValid(t *testing.T) {
	assert.Empty(t, analyse(t, "struct S { m0: array<f32, 4>, m1: f32 }"))
}

func TestAnalyseOpaqueMemberThroughAlias(t *testing.T) {
	diags := analyse(t, "type T = sampler; struct S0 { m: T }")

	require.Len(t, diags, 1)
	assert.Equal(t, "invalid struct member type 'T'", diags[0].Msg, "names the type as written")
	assert.Equal(t, diag.Loc{Start: 33, End: 34}, diags[0].Loc)
}

func TestAnalyseOpaqueMemberDirect(t *testing.T) {
	// Opaque handle types are spelled with keywords, not identifiers,
	// so resolution succeeds and only legality fires.
	diags := analyse(t, "struct S { s: sampler }")

	require.Len(t, diags, 1)
	assert.Equal(t, "invalid struct member type 'sampler'", diags[0].Msg)
}

func TestAnalyseOpaqueMemberThroughAliasChain(t *testing.T) {
	source := "type A = sampler; type B = A; struct S { m: B }"
	diags := analyse(t, source)

	require.Len(t, diags, 1)
	assert.Equal(t, "invalid struct member type 'B'", diags[0].Msg)
}

func TestAnalyseAliasCycleTerminates(t *testing.T) {
	// Mutually recursive aliases resolve to nothing opaque; the walk
	// must terminate rather than recurse forever.
	diags := analyse(t, "type A = B; type B = A; struct S { m: A }")
	assert.Empty(t, diags)
}

func TestAnalyseUnresolvedMemberSkipsLegality(t *testing.T) {
	// One diagnostic, not two: a member type that fails to resolve is
	// not additionally checked for opaque-handle legality.
	diags := analyse(t, "struct S { m: Missing }")

	require.Len(t, diags, 1)
	assert.Equal(t, "use of undeclared identifier 'Missing'", diags[0].Msg)
}

func TestAnalyseForwardReference(t *testing.T) {
	// Globals are collected before validation, so declaration order
	// does not matter.
	assert.Empty(t, analyse(t, "struct A { m: B }\nstruct B { m: f32 }"))
}

func TestAnalyseGenericTypeParameters(t *testing.T) {
	diags := analyse(t, "struct S { m: array<Missing, 4> }")

	require.Len(t, diags, 1)
	assert.Equal(t, "use of undeclared identifier 'Missing'", diags[0].Msg)
}

func TestAnalyseAliasTarget(t *testing.T) {
	diags := analyse(t, "type T = Missing;")

	require.Len(t, diags, 1)
	assert.Equal(t, "use of undeclared identifier 'Missing'", diags[0].Msg)
}

func TestAnalyseVarAnnotatedType(t *testing.T) {
	diags := analyse(t, "var v: Missing;")

	require.Len(t, diags, 1)
	assert.Equal(t, "use of undeclared identifier 'Missing'", diags[0].Msg)
}

func TestAnalyseFnParamAndReturnTypes(t *testing.T) {
	diags := analyse(t, "fn f(p: P) -> R { }")

	require.Len(t, diags, 2)
	assert.Equal(t, "use of undeclared identifier 'P'", diags[0].Msg)
	assert.Equal(t, "use of undeclared identifier 'R'", diags[1].Msg)
}

func TestAnalyseCollectsAllDiagnostics(t *testing.T) {
	// Unlike the parser, the analyser does not stop at the first error.
	source := `
var d = 0;
var d = 0;
struct S0 { m: S1 }
type T = sampler;
struct S2 { m: T }
`
	diags := analyse(t, source)

	require.Len(t, diags, 3)
	assert.Equal(t, "redeclaration of 'd'", diags[0].Msg)
	assert.Equal(t, "use of undeclared identifier 'S1'", diags[1].Msg)
	assert.Equal(t, "invalid struct member type 'T'", diags[2].Msg)
}

func TestAnalyseIsIdempotent(t *testing.T) {
	tree, parseDiags := wgsl.Parse("struct S0 { m: S1 }")
	require.Empty(t, parseDiags)

	first := Analyse(tree)
	second := Analyse(tree)
	assert.Equal(t, first, second)
}
