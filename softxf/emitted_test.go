// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package softxf

import (
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/ubershader/host"
	"github.com/gogpu/ubershader/vertex"
	"github.com/gogpu/ubershader/xf"
)

// emittedLine returns the trimmed program line starting with prefix.
func emittedLine(t *testing.T, src, prefix string) string {
	t.Helper()
	for _, l := range strings.Split(src, "\n") {
		if l = strings.TrimSpace(l); strings.HasPrefix(l, prefix) {
			return l
		}
	}
	t.Fatalf("program has no line starting with %q", prefix)
	return ""
}

// Each case pairs a program statement with the same formula written in Go
// and checks Eval against it, so the CPU path and the emitted text change
// together.
func TestEvalMatchesEmittedStatements(t *testing.T) {
	uid := vertex.Uid{NumTexGens: 1}
	for _, hc := range []host.Config{host.Defaults(host.APIOpenGL), host.Defaults(host.APIVulkan), host.Defaults(host.APID3D11)} {
		src, err := vertex.Generate(uid, hc)
		require.NoError(t, err)

		t.Run(hc.API.String()+"/zero q", func(t *testing.T) {
			assert.Equal(t,
				"output_tex.xy = clamp(output_tex.xy / 2.0f, float2(-1.0f,-1.0f), float2(1.0f,1.0f));",
				emittedLine(t, src, "output_tex.xy = clamp("))
			formula := func(v float32) float32 { return math32.Max(-1, math32.Min(1, v/2)) }

			c := newConstants()
			c.Components = uint32(xf.HasUV0)
			uvRegular(c, 0, xf.ProjectionSTQ)
			p := &Pipeline{Constants: c, Uid: uid}
			for _, st := range [][2]float32{{4, -6}, {1, -1}, {-0.5, 3}} {
				out := eval(t, p, Vertex{Tex: [8]Vec3{{st[0], st[1], 0}}})
				assert.Equal(t, Vec3{formula(st[0]), formula(st[1]), 0}, out.Tex[0], "st %v", st)
			}
		})

		t.Run(hc.API.String()+"/clip distances", func(t *testing.T) {
			assert.Equal(t, "float clipDepth = o.pos.z * 0.9999999;", emittedLine(t, src, "float clipDepth ="))
			assert.True(t, strings.HasPrefix(emittedLine(t, src, "o.clipDist.x ="), "o.clipDist.x = clipDepth + o.pos.w;"))
			assert.True(t, strings.HasPrefix(emittedLine(t, src, "o.clipDist.y ="), "o.clipDist.y = -clipDepth;"))

			p := &Pipeline{Constants: newConstants(), Uid: vertex.Uid{}, ClipControl: hc.ClipControl}
			out := eval(t, p, Vertex{Pos: Vec3{0, 0, -0.5}})
			z, w := float32(-0.5), float32(1)
			clipDepth := z * 0.9999999
			assert.Equal(t, [2]float32{clipDepth + w, -clipDepth}, out.ClipDist)
		})

		t.Run(hc.API.String()+"/depth remap", func(t *testing.T) {
			assert.Equal(t, "o.pos.z = o.pos.w * cdepth.x - o.pos.z * cdepth.y;",
				emittedLine(t, src, "o.pos.z = o.pos.w *"))
			widen := strings.Contains(src, "o.pos.z = o.pos.z * 2.0 - o.pos.w;")
			assert.Equal(t, !hc.ClipControl, widen)

			c := newConstants()
			p := &Pipeline{Constants: c, Uid: vertex.Uid{}, ClipControl: hc.ClipControl}
			out := eval(t, p, Vertex{Pos: Vec3{0, 0, -0.5}})
			z, w := float32(-0.5), float32(1)
			z = w*c.DepthParams[0] - z*c.DepthParams[1]
			if widen {
				z = z*2.0 - w
			}
			assert.Equal(t, z, out.Pos[2])
		})

		t.Run(hc.API.String()+"/normals", func(t *testing.T) {
			assert.True(t, strings.HasPrefix(emittedLine(t, src, "_norm0 = "), "_norm0 = normalize("))
			for _, n := range []string{"_norm1 = ", "_norm2 = "} {
				assert.NotContains(t, emittedLine(t, src, n), "normalize(")
			}

			c := newConstants()
			c.Components = uint32(xf.HasNrm0 | xf.HasNrm1 | xf.HasNrm2)
			p := &Pipeline{Constants: c, Uid: vertex.Uid{}}
			out := eval(t, p, Vertex{Normals: [3]Vec3{{0, 0, 2}, {0, 3, 0}, {4, 0, 0}}})
			assert.Equal(t, [3]Vec3{{0, 0, 1}, {0, 3, 0}, {4, 0, 0}}, out.Normals)
		})
	}
}
