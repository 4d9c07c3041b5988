package wgsl

import "testing"

// ---------------------------------------------------------------------------
// Benchmark shader sources at different complexity levels
// ---------------------------------------------------------------------------

// benchSmallVertex is a minimal vertex shader.
const benchSmallVertex = `
@vertex
fn vs_main(@builtin(vertex_index) idx: u32) -> @builtin(position) vec4<f32> {
    var pos = array<vec2<f32>, 3>(
        vec2<f32>(-0.5, -0.5),
        vec2<f32>(0.5, -0.5),
        vec2<f32>(0.0, 0.5)
    );
    return vec4<f32>(pos[idx], 0.0, 1.0);
}
`

// benchMediumCompute is a medium-complexity compute shader with math
// operations and control flow.
const benchMediumCompute = `
@compute @workgroup_size(64, 1, 1)
fn cs_main(@builtin(global_invocation_id) gid: vec3<u32>) {
    var x: f32 = f32(gid.x);
    var y: f32 = f32(gid.y);

    let dist = sqrt(x * x + y * y);
    let angle = x / (dist + 0.001);

    var result: f32 = 0.0;
    if dist < 100.0 {
        result = sin(angle) * cos(angle);
    } else {
        result = clamp(dist / 200.0, 0.0, 1.0);
    }

    let final_val = mix(result, 1.0 - result, 0.5);
    var temp: f32 = abs(final_val);
    temp = max(temp, 0.01);
    temp = min(temp, 0.99);
}
`

// benchLargeFragment is a PBR-like pipeline with structs, uniforms,
// and a long fragment body.
const benchLargeFragment = `
struct Camera {
    view_proj: mat4x4<f32>,
}

@group(0) @binding(0) var<uniform> camera: Camera;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) world_pos: vec3<f32>,
    @location(1) normal: vec3<f32>,
    @location(2) uv: vec2<f32>,
}

@vertex
fn vs_main(
    @location(0) pos: vec3<f32>,
    @location(1) normal: vec3<f32>,
    @location(2) uv: vec2<f32>,
) -> VertexOutput {
    var out: VertexOutput;
    out.position = vec4<f32>(pos.x, pos.y, pos.z, 1.0);
    out.world_pos = pos;
    out.normal = normal;
    out.uv = uv;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    let N = normalize(in.normal);

    let light_pos = vec3<f32>(10.0, 10.0, 10.0);
    let light_color = vec3<f32>(1.0, 1.0, 1.0);
    let L = normalize(light_pos - in.world_pos);

    let NdotL = max(dot(N, L), 0.0);
    let diffuse = light_color * NdotL;

    let view_dir = normalize(vec3<f32>(0.0, 0.0, 5.0) - in.world_pos);
    let half_dir = normalize(L + view_dir);
    let NdotH = max(dot(N, half_dir), 0.0);
    let shininess: f32 = 32.0;
    let spec_power = NdotH * shininess;
    let specular = light_color * spec_power;

    let ambient = vec3<f32>(0.05, 0.05, 0.05);
    let base_color = vec3<f32>(0.8, 0.2, 0.2);

    let final_color = ambient + base_color * diffuse + specular * 0.5;
    let tone_mapped = final_color / (final_color + vec3<f32>(1.0, 1.0, 1.0));

    return vec4<f32>(tone_mapped.x, tone_mapped.y, tone_mapped.z, 1.0);
}
`

type benchCase struct {
	name   string
	source string
}

var benchShaders = []benchCase{
	{"small_vertex", benchSmallVertex},
	{"medium_compute", benchMediumCompute},
	{"large_pbr", benchLargeFragment},
}

// BenchmarkTokenize benchmarks lexing alone, grouped by shader
// complexity. Reports allocations and throughput in bytes/sec.
func BenchmarkTokenize(b *testing.B) {
	for _, bc := range benchShaders {
		b.Run(bc.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(bc.source)))
			b.ResetTimer()

			var tokens []Token
			for i := 0; i < b.N; i++ {
				tokens = NewLexer(bc.source).Tokenize()
			}
			_ = tokens
		})
	}
}

// BenchmarkParse benchmarks lexing plus tree construction.
func BenchmarkParse(b *testing.B) {
	for _, bc := range benchShaders {
		b.Run(bc.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(bc.source)))
			b.ResetTimer()

			var tree *Tree
			for i := 0; i < b.N; i++ {
				t, diags := Parse(bc.source)
				if len(diags) > 0 {
					b.Fatalf("parse failed: %v", diags)
				}
				tree = t
			}
			_ = tree
		})
	}
}
