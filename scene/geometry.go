package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Geometry is an indexed triangle list in local space. Triangles wind
// counter-clockwise when seen from outside.
type Geometry struct {
	Vertices []mgl64.Vec3
	Indices  []uint16
}

func (g *Geometry) TriangleCount() int {
	if g == nil {
		return 0
	}
	return len(g.Indices) / 3
}

func (g *Geometry) addQuad(a, b, c, d mgl64.Vec3) {
	base := uint16(len(g.Vertices))
	g.Vertices = append(g.Vertices, a, b, c, d)
	g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
}

// Transformed returns a copy with every vertex mapped through m.
func (g *Geometry) Transformed(m mgl64.Mat4) *Geometry {
	out := &Geometry{
		Vertices: make([]mgl64.Vec3, len(g.Vertices)),
		Indices:  append([]uint16(nil), g.Indices...),
	}
	for i, v := range g.Vertices {
		out.Vertices[i] = mgl64.TransformCoordinate(v, m)
	}
	return out
}

// NewBox is an axis aligned box centered on the origin.
func NewBox(w, h, d float64) *Geometry {
	x, y, z := w/2, h/2, d/2
	g := &Geometry{}
	// +Z, -Z
	g.addQuad(mgl64.Vec3{-x, -y, z}, mgl64.Vec3{x, -y, z}, mgl64.Vec3{x, y, z}, mgl64.Vec3{-x, y, z})
	g.addQuad(mgl64.Vec3{x, -y, -z}, mgl64.Vec3{-x, -y, -z}, mgl64.Vec3{-x, y, -z}, mgl64.Vec3{x, y, -z})
	// +X, -X
	g.addQuad(mgl64.Vec3{x, -y, z}, mgl64.Vec3{x, -y, -z}, mgl64.Vec3{x, y, -z}, mgl64.Vec3{x, y, z})
	g.addQuad(mgl64.Vec3{-x, -y, -z}, mgl64.Vec3{-x, -y, z}, mgl64.Vec3{-x, y, z}, mgl64.Vec3{-x, y, -z})
	// +Y, -Y
	g.addQuad(mgl64.Vec3{-x, y, z}, mgl64.Vec3{x, y, z}, mgl64.Vec3{x, y, -z}, mgl64.Vec3{-x, y, -z})
	g.addQuad(mgl64.Vec3{-x, -y, -z}, mgl64.Vec3{x, -y, -z}, mgl64.Vec3{x, -y, z}, mgl64.Vec3{-x, -y, z})
	return g
}

// NewCylinder runs along Y, centered on the origin, capped at both ends.
func NewCylinder(radiusTop, radiusBottom, height float64, segments int) *Geometry {
	if segments < 3 {
		segments = 3
	}
	g := &Geometry{}
	hy := height / 2
	top := mgl64.Vec3{0, hy, 0}
	bottom := mgl64.Vec3{0, -hy, 0}
	for i := 0; i < segments; i++ {
		a0 := 2 * math.Pi * float64(i) / float64(segments)
		a1 := 2 * math.Pi * float64(i+1) / float64(segments)
		s0, c0 := math.Sincos(a0)
		s1, c1 := math.Sincos(a1)

		t0 := mgl64.Vec3{radiusTop * s0, hy, radiusTop * c0}
		t1 := mgl64.Vec3{radiusTop * s1, hy, radiusTop * c1}
		b0 := mgl64.Vec3{radiusBottom * s0, -hy, radiusBottom * c0}
		b1 := mgl64.Vec3{radiusBottom * s1, -hy, radiusBottom * c1}

		g.addQuad(b0, b1, t1, t0)

		base := uint16(len(g.Vertices))
		g.Vertices = append(g.Vertices, top, t0, t1, bottom, b1, b0)
		g.Indices = append(g.Indices, base, base+1, base+2, base+3, base+4, base+5)
	}
	return g
}

// NewDisc is a flat cylinder facing +Z, the shape the eyes use.
func NewDisc(radius, thickness float64, segments int) *Geometry {
	return NewCylinder(radius, radius, thickness, segments).Transformed(mgl64.HomogRotate3DX(math.Pi / 2))
}

func NewSphere(radius float64, widthSegments, heightSegments int) *Geometry {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}
	point := func(u, v float64) mgl64.Vec3 {
		theta := v * math.Pi
		phi := u * 2 * math.Pi
		st, ct := math.Sincos(theta)
		sp, cp := math.Sincos(phi)
		return mgl64.Vec3{radius * st * sp, radius * ct, radius * st * cp}
	}
	g := &Geometry{}
	for y := 0; y < heightSegments; y++ {
		v0 := float64(y) / float64(heightSegments)
		v1 := float64(y+1) / float64(heightSegments)
		for x := 0; x < widthSegments; x++ {
			u0 := float64(x) / float64(widthSegments)
			u1 := float64(x+1) / float64(widthSegments)
			g.addQuad(point(u0, v1), point(u1, v1), point(u1, v0), point(u0, v0))
		}
	}
	return g
}
