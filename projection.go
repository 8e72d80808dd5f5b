package tiltcard

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// tiltSegments is the grid resolution of the projected card mesh. A single
// quad would show the affine texture seam along its diagonal.
const tiltSegments = 8

// projectPoint maps a point of the card plane, given relative to the card
// center, through rotateX, rotateY, a forward translation tz and a
// perspective divide. Z grows toward the viewer.
//
//	RotateX -> RotateY -> Translate(0, 0, tz) -> Perspective(d)
func projectPoint(x, y, rx, ry, tz, d float64) (float64, float64) {
	sinX, cosX := math.Sincos(rx * math.Pi / 180)
	sinY, cosY := math.Sincos(ry * math.Pi / 180)

	// rotateX
	y1 := y * cosX
	z1 := y * sinX

	// rotateY
	x2 := x*cosY + z1*sinY
	z2 := -x*sinY + z1*cosY

	z := z2 + tz
	if z >= d {
		z = d - 1
	}
	s := d / (d - z)
	return x2 * s, y1 * s
}

// ProjectQuad returns the corners of a w x h card, top-left first and
// clockwise, in the card's local space after the tilt is applied. The card
// rotates about its center.
func ProjectQuad(w, h float64, tilt TiltVector, tz float64) [4]Vec2 {
	hw, hh := w/2, h/2
	corners := [4]Vec2{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	var out [4]Vec2
	for i, c := range corners {
		x, y := projectPoint(c.X, c.Y, tilt.RotateX, tilt.RotateY, tz, TiltPerspective)
		out[i] = Vec2{x + hw, y + hh}
	}
	return out
}

// tiltMesh is a preallocated grid mesh that draws a card texture through the
// tilt projection.
type tiltMesh struct {
	verts   []ebiten.Vertex
	indices []uint16
}

func newTiltMesh() *tiltMesh {
	n := tiltSegments + 1
	m := &tiltMesh{
		verts:   make([]ebiten.Vertex, n*n),
		indices: make([]uint16, 0, tiltSegments*tiltSegments*6),
	}
	for row := 0; row < tiltSegments; row++ {
		for col := 0; col < tiltSegments; col++ {
			i0 := uint16(row*n + col)
			i1 := i0 + 1
			i2 := i0 + uint16(n) + 1
			i3 := i0 + uint16(n)
			m.indices = append(m.indices, i0, i1, i2, i0, i2, i3)
		}
	}
	return m
}

// update projects the grid for a w x h texture placed with its top-left at
// (ox, oy) and tints every vertex with alpha.
func (m *tiltMesh) update(w, h, ox, oy float64, tilt TiltVector, tz, alpha float64) {
	n := tiltSegments + 1
	hw, hh := w/2, h/2
	a := float32(alpha)
	for row := 0; row < n; row++ {
		v := float64(row) / tiltSegments
		for col := 0; col < n; col++ {
			u := float64(col) / tiltSegments
			x, y := projectPoint(u*w-hw, v*h-hh, tilt.RotateX, tilt.RotateY, tz, TiltPerspective)
			m.verts[row*n+col] = ebiten.Vertex{
				DstX:   float32(ox + hw + x),
				DstY:   float32(oy + hh + y),
				SrcX:   float32(u * w),
				SrcY:   float32(v * h),
				ColorR: a,
				ColorG: a,
				ColorB: a,
				ColorA: a,
			}
		}
	}
}

// draw renders src through the mesh onto dst.
func (m *tiltMesh) draw(dst, src *ebiten.Image) {
	var op ebiten.DrawTrianglesOptions
	op.Filter = ebiten.FilterLinear
	dst.DrawTriangles(m.verts, m.indices, src, &op)
}
