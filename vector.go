package orbitcore

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Vec3 is a 3-component vector. It is a value type: arithmetic never
// allocates, matching the hot-path requirement of the propagator.
type Vec3 struct {
	X, Y, Z float64
}

// ZeroVec3 is the additive identity.
var ZeroVec3 = Vec3{}

// UnitX, UnitY and UnitZ are the canonical basis vectors.
var (
	UnitX = Vec3{1, 0, 0}
	UnitY = Vec3{0, 1, 0}
	UnitZ = Vec3{0, 0, 1}
)

// NewVec3 builds a vector from its three components.
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Add returns v+u.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{v.X + u.X, v.Y + u.Y, v.Z + u.Z}
}

// Sub returns v-u.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{v.X - u.X, v.Y - u.Y, v.Z - u.Z}
}

// Scale returns v*s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Div returns v/s.
func (v Vec3) Div(s float64) Vec3 {
	return Vec3{v.X / s, v.Y / s, v.Z / s}
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the inner product of v and u.
func (v Vec3) Dot(u Vec3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// Cross returns v x u.
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		v.Y*u.Z - v.Z*u.Y,
		v.Z*u.X - v.X*u.Z,
		v.X*u.Y - v.Y*u.X,
	}
}

// Norm returns the Euclidean norm of v.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Unit returns v normalized. The zero vector normalizes to itself.
func (v Vec3) Unit() Vec3 {
	n := v.Norm()
	if floats.EqualWithinAbs(n, 0, 1e-12) {
		return ZeroVec3
	}
	return v.Div(n)
}

// Equal reports whether v and u are equal within an absolute tolerance
// applied componentwise.
func (v Vec3) Equal(u Vec3, tol float64) bool {
	return floats.EqualWithinAbs(v.X, u.X, tol) &&
		floats.EqualWithinAbs(v.Y, u.Y, tol) &&
		floats.EqualWithinAbs(v.Z, u.Z, tol)
}

// Angle returns the unsigned angle between u and v in [0, π], clamping the
// cosine argument to absorb floating-point rounding at the domain edges.
func Angle(u, v Vec3) float64 {
	nu, nv := u.Norm(), v.Norm()
	if floats.EqualWithinAbs(nu, 0, 1e-12) || floats.EqualWithinAbs(nv, 0, 1e-12) {
		return 0
	}
	c := u.Dot(v) / (nu * nv)
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c)
}

// OrientedAngle returns Angle(u, v) negated when n does not point along
// u x v, i.e. when dot(n, cross(u, v)) < 0. n defaults to +Z when the zero
// vector is passed.
func OrientedAngle(u, v, n Vec3) float64 {
	if n == ZeroVec3 {
		n = UnitZ
	}
	a := Angle(u, v)
	if n.Dot(u.Cross(v)) < 0 {
		return -a
	}
	return a
}
