// Package hypersphere implements kinematics and view projection for entities
// that live on the surface of a 3-sphere embedded in 4D space.
//
// Positions are unit 4-vectors. Every motion is a rotation inside a 2-plane of
// R⁴, so the basic building blocks here are planes and the rotations they
// generate.
package hypersphere

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// planeTolerance bounds |a·b| for the two vectors spanning a Plane.
const planeTolerance = 1e-6

// ErrNotOrthogonal is returned by NewPlane when the spanning vectors are not
// orthogonal.
var ErrNotOrthogonal = errors.New("plane vectors are not orthogonal")

// Plane is a 2-plane in R⁴ spanned by two orthogonal vectors.
type Plane struct {
	v [2]mgl64.Vec4
}

// NewPlane builds a plane from two orthogonal vectors.
func NewPlane(a, b mgl64.Vec4) (Plane, error) {
	if d := a.Dot(b); math.Abs(d) > planeTolerance {
		return Plane{}, fmt.Errorf("%w: dot = %g", ErrNotOrthogonal, d)
	}
	return Plane{v: [2]mgl64.Vec4{a, b}}, nil
}

// mustPlane is NewPlane for vectors that are orthogonal by construction.
// A failure here means a broken builder, not bad input.
func mustPlane(a, b mgl64.Vec4) Plane {
	p, err := NewPlane(a, b)
	if err != nil {
		panic(fmt.Sprintf("hypersphere: %v", err))
	}
	return p
}

// Vectors returns the two spanning vectors.
func (p Plane) Vectors() (mgl64.Vec4, mgl64.Vec4) {
	return p.v[0], p.v[1]
}

// Cross4 returns the unit vector orthogonal to a, b and c.
// The result is NaN when the three vectors are linearly dependent.
func Cross4(a, b, c mgl64.Vec4) mgl64.Vec4 {
	r := mgl64.Vec4{
		det3(a[1], a[2], a[3], b[1], b[2], b[3], c[1], c[2], c[3]),
		-det3(a[0], a[2], a[3], b[0], b[2], b[3], c[0], c[2], c[3]),
		det3(a[0], a[1], a[3], b[0], b[1], b[3], c[0], c[1], c[3]),
		-det3(a[0], a[1], a[2], b[0], b[1], b[2], c[0], c[1], c[2]),
	}
	return r.Normalize()
}

// det3 is the determinant of the row-major 3×3 matrix [a; b; c].
func det3(a0, a1, a2, b0, b1, b2, c0, c1, c2 float64) float64 {
	return a0*(b1*c2-b2*c1) - a1*(b0*c2-b2*c0) + a2*(b0*c1-b1*c0)
}

// reject removes from u its components along the orthonormal vectors in basis.
func reject(u mgl64.Vec4, basis []mgl64.Vec4) mgl64.Vec4 {
	for _, b := range basis {
		u = u.Sub(b.Mul(u.Dot(b)))
	}
	return u
}

// OrthogonalPlane returns a plane orthogonal to both t and v.
//
// span{t, v} is completed to an orthonormal basis of R⁴ with the coordinate
// axes, largest residual first; the first two completing vectors span the
// result. When t and v are parallel the complement is 3-dimensional and an
// arbitrary but deterministic 2-plane of it is returned.
func OrthogonalPlane(t, v mgl64.Vec4) Plane {
	basis := make([]mgl64.Vec4, 0, 4)
	for _, u := range [2]mgl64.Vec4{t, v} {
		if r := reject(u, basis); r.Len() > 1e-12 {
			basis = append(basis, r.Normalize())
		}
	}
	n := len(basis)
	for len(basis) < 4 {
		var best mgl64.Vec4
		bestLen := 0.0
		for i := 0; i < 4; i++ {
			var e mgl64.Vec4
			e[i] = 1
			r := reject(e, basis)
			if l := r.Len(); l > bestLen {
				best, bestLen = r, l
			}
		}
		basis = append(basis, best.Mul(1/bestLen))
	}
	return mustPlane(basis[n], basis[n+1])
}

// SpanPlane returns the plane containing t and v, as {v̂, t orthogonalised
// against v̂}. Rotating by a positive angle in it moves v towards t along
// their great circle. Undefined when t and v are parallel.
func SpanPlane(t, v mgl64.Vec4) Plane {
	vn := v.Normalize()
	r := t.Sub(vn.Mul(t.Dot(vn)))
	return mustPlane(vn, r.Normalize())
}

// Rotate builds the rotation by angle radians inside p:
//
//	R = I + (cos a − 1)V − sin a·W,  V = p0⊗p0 + p1⊗p1,  W = p0⊗p1 − p1⊗p0
//
// It maps p0 to cos a·p0 + sin a·p1 and leaves the orthogonal complement fixed.
func Rotate(p Plane, angle float64) mgl64.Mat4 {
	p0, p1 := p.v[0].Normalize(), p.v[1].Normalize()
	v := p0.OuterProd4(p0).Add(p1.OuterProd4(p1))
	w := p0.OuterProd4(p1).Sub(p1.OuterProd4(p0))
	return mgl64.Ident4().Add(v.Mul(math.Cos(angle) - 1)).Sub(w.Mul(math.Sin(angle)))
}
