// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package lint

import (
	"strings"

	"github.com/gogpu/ubershader/host"
)

// The tables below cover the names a vertex program can collide with: type
// names, qualifiers, statements, words reserved for future use and the
// built-in functions of a vertex stage. Texture, image, atomic and compute
// built-ins are left out; uber-shaders never declare anything near them.

// glslReserved holds GLSL 4.60 and GLSL ES 3.20 reserved words. Names with
// the gl_ prefix are reserved separately.
var glslReserved = wordSet(`
	void bool int uint float double
	vec2 vec3 vec4 ivec2 ivec3 ivec4 uvec2 uvec3 uvec4 bvec2 bvec3 bvec4 dvec2 dvec3 dvec4
	mat2 mat3 mat4 mat2x2 mat2x3 mat2x4 mat3x2 mat3x3 mat3x4 mat4x2 mat4x3 mat4x4
	dmat2 dmat3 dmat4
	sampler sampler2D sampler2DArray isampler2D usampler2D atomic_uint

	attribute const uniform varying buffer shared coherent volatile restrict readonly writeonly
	layout centroid flat smooth noperspective patch sample subroutine
	in out inout invariant precise lowp mediump highp precision
	break continue do for while switch case default if else discard return struct true false

	common partition active asm class union enum typedef template this resource goto
	inline noinline public static extern external interface long short half fixed unsigned
	superp input output hvec2 hvec3 hvec4 fvec2 fvec3 fvec4 filter sizeof cast namespace using

	main radians degrees sin cos tan asin acos atan sinh cosh tanh asinh acosh atanh
	pow exp log exp2 log2 sqrt inversesqrt abs sign floor trunc round roundEven ceil fract
	mod modf min max clamp mix step smoothstep isnan isinf fma frexp ldexp
	floatBitsToInt floatBitsToUint intBitsToFloat uintBitsToFloat
	length distance dot cross normalize faceforward reflect refract
	matrixCompMult outerProduct transpose determinant inverse
	lessThan lessThanEqual greaterThan greaterThanEqual equal notEqual any all not
	bitfieldExtract bitfieldInsert bitfieldReverse bitCount findLSB findMSB
	texture textureLod texelFetch textureSize
`)

// hlslReserved holds FXC and DXC keywords, reserved words and the
// intrinsics of a vertex stage.
var hlslReserved = wordSet(`
	AppendStructuredBuffer asm asm_fragment BlendState bool break Buffer ByteAddressBuffer
	case cbuffer centroid class column_major compile compile_fragment CompileShader const
	continue ComputeShader ConsumeStructuredBuffer default DepthStencilState DepthStencilView
	discard do double DomainShader dword else export extern false float for fxgroup
	GeometryShader groupshared half Hullshader if in inline inout InputPatch int interface
	line lineadj linear LineStream matrix min10float min12int min16float min16int min16uint
	namespace nointerpolation noperspective NULL out OutputPatch packoffset pass
	pixelfragment PixelShader point PointStream precise RasterizerState RenderTargetView
	return register row_major RWBuffer RWByteAddressBuffer RWStructuredBuffer RWTexture1D
	RWTexture2D RWTexture3D sample sampler SamplerState SamplerComparisonState shared snorm
	stateblock stateblock_state static string struct switch StructuredBuffer tbuffer
	technique technique10 technique11 texture Texture1D Texture2D Texture3D TextureCube
	triangle triangleadj TriangleStream uint uniform unorm unsigned vector vertexfragment
	VertexShader void volatile while

	auto catch char const_cast delete dynamic_cast enum explicit friend goto long mutable
	new operator private protected public reinterpret_cast short signed sizeof static_cast
	template this throw try typename union using virtual

	abs acos all any asfloat asin asint asuint atan atan2 ceil clamp clip cos cosh countbits
	cross ddx ddy degrees determinant distance dot exp exp2 f16tof32 f32tof16 faceforward
	firstbithigh firstbitlow floor fma fmod frac frexp isfinite isinf isnan ldexp length
	lerp lit log log10 log2 mad max min modf mul noise normalize pow radians rcp reflect
	refract reversebits round rsqrt saturate sign sin sincos sinh smoothstep sqrt step tan
	tanh transpose trunc
`)

// hlslCaseInsensitive holds the effect keywords HLSL matches in any case.
var hlslCaseInsensitive = wordSet(`asm decl pass technique texture1d texture2d texture3d texturecube`)

// hlslTypeShorthands holds the scalar, vector and matrix type names such as
// uint2 and float4x4.
var hlslTypeShorthands = func() map[string]struct{} {
	set := make(map[string]struct{})
	for _, base := range strings.Fields("bool int uint dword half float double min10float min16float min12int min16int min16uint") {
		set[base] = struct{}{}
		for r := 1; r <= 4; r++ {
			set[base+string(rune('0'+r))] = struct{}{}
			if base == "dword" {
				continue
			}
			for c := 1; c <= 4; c++ {
				set[base+string(rune('0'+r))+"x"+string(rune('0'+c))] = struct{}{}
			}
		}
	}
	return set
}()

func wordSet(words string) map[string]struct{} {
	fields := strings.Fields(words)
	set := make(map[string]struct{}, len(fields))
	for _, w := range fields {
		set[w] = struct{}{}
	}
	return set
}

// Reserved reports whether name may not be declared in dialect d.
func Reserved(d host.Dialect, name string) bool {
	switch d {
	case host.DialectGLSL:
		if _, ok := glslReserved[name]; ok {
			return true
		}
		return strings.HasPrefix(name, "gl_")
	case host.DialectHLSL:
		if _, ok := hlslReserved[name]; ok {
			return true
		}
		if _, ok := hlslTypeShorthands[name]; ok {
			return true
		}
		_, ok := hlslCaseInsensitive[strings.ToLower(name)]
		return ok
	default:
		return false
	}
}
