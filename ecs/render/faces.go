package render

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/robothead/common"
	"github.com/milk9111/robothead/ecs/component"
	"github.com/milk9111/robothead/scene"
)

// maxBatchFaces keeps a batch's vertex count inside uint16 indices.
const maxBatchFaces = 65535 / 3

// Light is a single directional light plus an ambient floor.
type Light struct {
	// Direction points from the surface toward the light.
	Direction mgl64.Vec3
	Ambient   float64
	Diffuse   float64
}

var DefaultLight = Light{
	Direction: mgl64.Vec3{5, 5, 5}.Normalize(),
	Ambient:   0.35,
	Diffuse:   0.9,
}

// Shade is the lambert factor for a unit normal.
func (l Light) Shade(normal mgl64.Vec3) float64 {
	return l.Ambient + l.Diffuse*math.Max(0, normal.Dot(l.Direction))
}

// Face is one projected, front-facing triangle ready to draw.
type Face struct {
	Screen [3]mgl64.Vec2
	// Local is the surface position in mesh space, used by eye shading.
	Local [3]mgl64.Vec2
	// Depth is the mean clip-space w; larger is farther.
	Depth    float64
	Shade    float64
	Color    mgl64.Vec3
	Material *component.Material
}

// Frame holds what every mesh projection in one draw shares.
type Frame struct {
	Width, Height float64
	ViewProj      mgl64.Mat4
	Light         Light
}

func NewFrame(cam *scene.Camera, width, height float64) Frame {
	return Frame{
		Width:    width,
		Height:   height,
		ViewProj: cam.ViewProjection(),
		Light:    DefaultLight,
	}
}

// ProjectMesh appends the visible faces of geo, placed by world, to out.
// Triangles with a vertex behind the camera or facing away are dropped.
func (f Frame) ProjectMesh(world mgl64.Mat4, geo *scene.Geometry, mat *component.Material, out []Face) []Face {
	if geo == nil || mat == nil {
		return out
	}
	n := len(geo.Indices) - len(geo.Indices)%3
	for i := 0; i < n; i += 3 {
		var (
			face  Face
			wpos  [3]mgl64.Vec3
			ndc   [3]mgl64.Vec2
			depth float64
			ok    = true
		)
		for k := 0; k < 3; k++ {
			idx := int(geo.Indices[i+k])
			if idx >= len(geo.Vertices) {
				ok = false
				break
			}
			local := geo.Vertices[idx]
			wpos[k] = mgl64.TransformCoordinate(local, world)
			clip := f.ViewProj.Mul4x1(wpos[k].Vec4(1))
			if clip.W() <= 1e-6 {
				ok = false
				break
			}
			ndc[k] = mgl64.Vec2{clip.X() / clip.W(), clip.Y() / clip.W()}
			face.Screen[k] = mgl64.Vec2{
				(ndc[k].X() + 1) * 0.5 * f.Width,
				(1 - ndc[k].Y()) * 0.5 * f.Height,
			}
			face.Local[k] = mgl64.Vec2{local.X(), local.Y()}
			depth += clip.W()
		}
		if !ok || signedArea(ndc) <= 0 {
			continue
		}

		normal, nok := scene.SafeNormalize(wpos[1].Sub(wpos[0]).Cross(wpos[2].Sub(wpos[0])))
		if !nok {
			continue
		}
		face.Depth = depth / 3
		face.Shade = f.Light.Shade(normal)
		face.Color = litColor(mat, face.Shade)
		face.Material = mat
		out = append(out, face)
	}
	return out
}

// SortFaces orders faces back to front.
func SortFaces(faces []Face) {
	sort.SliceStable(faces, func(i, j int) bool {
		return faces[i].Depth > faces[j].Depth
	})
}

// Batch is a run of faces drawn with one call. Material is nil for flat
// colored batches and set for eye batches.
type Batch struct {
	Material *component.Material
	Vertices []ebiten.Vertex
	Indices  []uint16
}

// BuildBatches groups consecutive faces that share a draw call while keeping
// the back to front order intact.
func BuildBatches(faces []Face) []Batch {
	var batches []Batch
	var cur *Batch
	for i := range faces {
		face := &faces[i]
		var key *component.Material
		if face.Material.Shading == component.ShadingEye {
			key = face.Material
		}
		if cur == nil || cur.Material != key || len(cur.Indices)/3 >= maxBatchFaces {
			batches = append(batches, Batch{Material: key})
			cur = &batches[len(batches)-1]
		}
		base := uint16(len(cur.Vertices))
		for k := 0; k < 3; k++ {
			cur.Vertices = append(cur.Vertices, faceVertex(face, k, key != nil))
		}
		cur.Indices = append(cur.Indices, base, base+1, base+2)
	}
	return batches
}

// DrawBatches renders batches to screen. Eye batches fall back to flat color
// sampled at each face's centroid when no eye shader is available.
func DrawBatches(screen *ebiten.Image, batches []Batch, eyeShader *ebiten.Shader) {
	if screen == nil {
		return
	}
	src := WhitePixel()
	for i := range batches {
		b := &batches[i]
		if len(b.Indices) == 0 {
			continue
		}
		if b.Material == nil {
			screen.DrawTriangles(b.Vertices, b.Indices, src, &ebiten.DrawTrianglesOptions{})
			continue
		}
		if eyeShader == nil {
			screen.DrawTriangles(eyeFallbackVertices(b), b.Indices, src, &ebiten.DrawTrianglesOptions{})
			continue
		}
		screen.DrawTrianglesShader(b.Vertices, b.Indices, eyeShader, &ebiten.DrawTrianglesShaderOptions{
			Uniforms: EyeUniforms(b.Material),
		})
	}
}

func faceVertex(face *Face, k int, eye bool) ebiten.Vertex {
	v := ebiten.Vertex{
		DstX:   float32(face.Screen[k].X()),
		DstY:   float32(face.Screen[k].Y()),
		ColorA: 1,
	}
	if eye {
		v.SrcX = float32(face.Local[k].X())
		v.SrcY = float32(face.Local[k].Y())
		v.ColorR = float32(face.Shade)
		v.ColorG = float32(face.Shade)
		v.ColorB = float32(face.Shade)
		return v
	}
	v.SrcX, v.SrcY = 0.5, 0.5
	v.ColorR = float32(face.Color.X())
	v.ColorG = float32(face.Color.Y())
	v.ColorB = float32(face.Color.Z())
	return v
}

func eyeFallbackVertices(b *Batch) []ebiten.Vertex {
	out := make([]ebiten.Vertex, len(b.Vertices))
	mat := b.Material
	blink := 0.0
	tracking := 0.0
	if mat.Eye != nil {
		if mat.Eye.Blink != nil {
			blink = mat.Eye.Blink.Value()
		}
		tracking = mat.Eye.TrackingIntensity
	}
	emissive := mat.Emissive.Mul(mat.EmissiveIntensity)
	for i := 0; i+2 < len(b.Vertices); i += 3 {
		tri := b.Vertices[i : i+3]
		centroid := mgl64.Vec2{
			float64(tri[0].SrcX+tri[1].SrcX+tri[2].SrcX) / 3,
			float64(tri[0].SrcY+tri[1].SrcY+tri[2].SrcY) / 3,
		}
		sample := ShadeEye(centroid, mat.Color, blink, tracking)
		c := clampColor(sample.Color.Mul(float64(tri[0].ColorR)).Add(emissive))
		for k := 0; k < 3; k++ {
			v := tri[k]
			v.SrcX, v.SrcY = 0.5, 0.5
			v.ColorR = float32(c.X())
			v.ColorG = float32(c.Y())
			v.ColorB = float32(c.Z())
			v.ColorA = 1
			out[i+k] = v
		}
	}
	return out
}

func litColor(mat *component.Material, shade float64) mgl64.Vec3 {
	return clampColor(mat.Color.Mul(shade).Add(mat.Emissive.Mul(mat.EmissiveIntensity)))
}

func clampColor(c mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{common.Clamp01(c.X()), common.Clamp01(c.Y()), common.Clamp01(c.Z())}
}

// signedArea is positive for counter-clockwise triangles in NDC.
func signedArea(p [3]mgl64.Vec2) float64 {
	return (p[1].X()-p[0].X())*(p[2].Y()-p[0].Y()) - (p[2].X()-p[0].X())*(p[1].Y()-p[0].Y())
}
