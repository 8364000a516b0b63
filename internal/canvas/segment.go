package canvas

import (
	"math"

	"golang.org/x/image/vector"

	"github.com/example/glyphpad/internal/pointer"
)

// kappa places cubic control points so four curves approximate a circle.
const kappa = 0.5522847498

type vec struct{ x, y float32 }

func (v vec) add(o vec) vec { return vec{v.x + o.x, v.y + o.y} }
func (v vec) mul(k float32) vec { return vec{v.x * k, v.y * k} }
func (v vec) neg() vec { return vec{-v.x, -v.y} }
func fromPoint(p pointer.Point) vec { return vec{p.X, p.Y} }
func (v vec) moveTo(z *vector.Rasterizer) { z.MoveTo(v.x, v.y) }
func (v vec) lineTo(z *vector.Rasterizer) { z.LineTo(v.x, v.y) }

// direction returns the unit vector from a to b and the left normal. For a
// zero-length segment it returns an arbitrary orthonormal pair.
func direction(a, b vec) (d, n vec, length float32) {
	dx, dy := b.x-a.x, b.y-a.y
	length = float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return vec{1, 0}, vec{0, 1}, 0
	}
	d = vec{dx / length, dy / length}
	return d, vec{-d.y, d.x}, length
}

// quarter adds a quarter arc around c from c+r*u to c+r*v.
func quarter(z *vector.Rasterizer, c, u, v vec, r float32) {
	b := c.add(u.mul(r))
	e := c.add(v.mul(r))
	c1 := b.add(v.mul(kappa * r))
	c2 := e.add(u.mul(kappa * r))
	z.CubeTo(c1.x, c1.y, c2.x, c2.y, e.x, e.y)
}

// capsule adds the outline of a segment with round caps. Consecutive
// capsules overlap in a full disc at the shared point, which gives round
// joins for free.
func capsule(z *vector.Rasterizer, pa, pb pointer.Point, r float32) {
	a, b := fromPoint(pa), fromPoint(pb)
	d, n, _ := direction(a, b)

	a.add(n.mul(r)).moveTo(z)
	b.add(n.mul(r)).lineTo(z)
	quarter(z, b, n, d, r)
	quarter(z, b, d, n.neg(), r)
	a.add(n.neg().mul(r)).lineTo(z)
	quarter(z, a, n.neg(), d.neg(), r)
	quarter(z, a, d.neg(), n, r)
	z.ClosePath()
}

// squareSegment adds a segment whose ends extend half the pen width past
// each endpoint.
func squareSegment(z *vector.Rasterizer, pa, pb pointer.Point, r float32) {
	a, b := fromPoint(pa), fromPoint(pb)
	d, n, _ := direction(a, b)
	a = a.add(d.neg().mul(r))
	b = b.add(d.mul(r))

	a.add(n.mul(r)).moveTo(z)
	b.add(n.mul(r)).lineTo(z)
	b.add(n.neg().mul(r)).lineTo(z)
	a.add(n.neg().mul(r)).lineTo(z)
	z.ClosePath()
}
