package wgslc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/wgslc/wgsl"
)

// TestCheckTriangleShader runs the front end over a complete triangle
// rendering pipeline.
func TestCheckTriangleShader(t *testing.T) {
	source := `
struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) color: vec4<f32>,
}

@vertex
fn vs_main(@builtin(vertex_index) idx: u32) -> VertexOutput {
    var out: VertexOutput;

    var pos = array<vec2<f32>, 3>(
        vec2<f32>(0.0, 0.5),
        vec2<f32>(-0.5, -0.5),
        vec2<f32>(0.5, -0.5)
    );

    out.position = vec4<f32>(pos[idx], 0.0, 1.0);
    out.color = vec4<f32>(1.0, 0.0, 0.0, 1.0);
    return out;
}

@fragment
fn fs_main(@location(0) color: vec4<f32>) -> @location(0) vec4<f32> {
    return color;
}
`
	tree, diags := Check(source)
	require.Empty(t, diags)
	require.NotNil(t, tree)

	decls := tree.RootDecls()
	require.Len(t, decls, 3)
	assert.Equal(t, "VertexOutput", tree.DeclName(decls[0]))
	assert.Equal(t, "vs_main", tree.DeclName(decls[1]))
	assert.Equal(t, "fs_main", tree.DeclName(decls[2]))
}

// TestCheckComputeWithStorage runs the front end over a compute shader
// with a storage buffer binding.
func TestCheckComputeWithStorage(t *testing.T) {
	source := `
struct Particles {
    count: u32,
    data: array<vec4<f32>>,
}

@group(0) @binding(0) var<storage, read_write> particles: Particles;

@compute @workgroup_size(64, 1, 1)
fn main(@builtin(global_invocation_id) id: vec3<u32>) {
    var temp: u32 = id.x * 2;
}
`
	tree, diags := Check(source)
	assert.Empty(t, diags)
	assert.NotNil(t, tree)
}

// TestCheckSyntaxError verifies that a syntax error yields diagnostics
// and no tree.
func TestCheckSyntaxError(t *testing.T) {
	source := `
@vertex
fn main( {
    return vec4<f32>(0.0);
}
`
	tree, diags := Check(source)
	assert.Nil(t, tree)
	require.Len(t, diags, 1)
	assert.Equal(t, "expected parameter name, found '{'", diags[0].Msg)
}

// TestCheckSemanticError verifies that semantic errors still return the
// structurally complete tree for tooling.
func TestCheckSemanticError(t *testing.T) {
	source := "struct S0 { m: S1 }"

	tree, diags := Check(source)
	require.NotNil(t, tree, "semantic errors keep the tree available")
	require.Len(t, diags, 1)
	assert.Equal(t, "use of undeclared identifier 'S1'", diags[0].Msg)
	assert.Equal(t, wgsl.NodeStructDecl, tree.NodeKind(tree.RootDecls()[0]))
}

// TestStagedPipeline drives the stages individually.
func TestStagedPipeline(t *testing.T) {
	source := `
type Color = vec4<f32>;

@fragment
fn fs_main() -> @location(0) Color {
    return Color(1.0, 0.0, 0.0, 1.0);
}
`
	tree, diags := Parse(source)
	require.Empty(t, diags)
	require.NotNil(t, tree)
	require.Len(t, tree.RootDecls(), 2)

	assert.Empty(t, Analyse(tree))
}

// TestCheckDiagnosticsAsError verifies the list's error interface for
// callers that cross error-shaped boundaries.
func TestCheckDiagnosticsAsError(t *testing.T) {
	_, diags := Check("var d = 0; var d = 0; struct S { m: T }")

	require.True(t, diags.HasErrors())
	assert.Equal(t, "redeclaration of 'd' (and 1 more errors)", diags.Error())
}
