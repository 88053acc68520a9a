package orbitcore

import "math"

// Mat3 is a row-major 3x3 matrix, stored without indirection so that
// building and applying a rotation never allocates.
type Mat3 struct {
	M [3][3]float64
}

// IdentityMat3 is the multiplicative identity.
var IdentityMat3 = Mat3{[3][3]float64{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
}}

// MulVec returns m*v.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m.M[0][0]*v.X + m.M[0][1]*v.Y + m.M[0][2]*v.Z,
		m.M[1][0]*v.X + m.M[1][1]*v.Y + m.M[1][2]*v.Z,
		m.M[2][0]*v.X + m.M[2][1]*v.Y + m.M[2][2]*v.Z,
	}
}

// Mul returns m*n.
func (m Mat3) Mul(n Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += m.M[i][k] * n.M[k][j]
			}
			r.M[i][j] = s
		}
	}
	return r
}

// Transpose returns the transpose of m, which for a rotation matrix is also
// its inverse.
func (m Mat3) Transpose() Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.M[j][i] = m.M[i][j]
		}
	}
	return r
}

// RotationAxisAngle returns the rotation matrix for a right-handed rotation
// of angle radians about the (not necessarily unit) axis, built directly
// from the axis-angle formula (no intermediate quaternion or Euler-angle
// construction).
func RotationAxisAngle(angle float64, axis Vec3) Mat3 {
	u := axis.Unit()
	s, c := math.Sincos(angle)
	t := 1 - c
	x, y, z := u.X, u.Y, u.Z
	return Mat3{[3][3]float64{
		{t*x*x + c, t*x*y - s*z, t*x*z + s*y},
		{t*x*y + s*z, t*y*y + c, t*y*z - s*x},
		{t*x*z - s*y, t*y*z + s*x, t*z*z + c},
	}}
}

// RotationZ returns the elementary rotation matrix about the Z axis.
func RotationZ(angle float64) Mat3 {
	s, c := math.Sincos(angle)
	return Mat3{[3][3]float64{
		{c, -s, 0},
		{s, c, 0},
		{0, 0, 1},
	}}
}

// RotationX returns the elementary rotation matrix about the X axis.
func RotationX(angle float64) Mat3 {
	s, c := math.Sincos(angle)
	return Mat3{[3][3]float64{
		{1, 0, 0},
		{0, c, -s},
		{0, s, c},
	}}
}

// FromEulerZXZ returns the composite Z(Ω)-X(i)-Z(ω) rotation matrix by its
// closed-form analytic expression. This is deliberately *not* computed as
// RotationZ(Ω).Mul(RotationX(i)).Mul(RotationZ(ω)): chaining three matrix
// multiplications lets rounding in the X(i) term leak into Ω and ω even
// when i is exactly zero, which silently corrupts the degenerate equatorial
// case.
func FromEulerZXZ(Ω, i, ω float64) Mat3 {
	sΩ, cΩ := math.Sincos(Ω)
	si, ci := math.Sincos(i)
	sω, cω := math.Sincos(ω)
	return Mat3{[3][3]float64{
		{cΩ*cω - sΩ*ci*sω, -cΩ*sω - sΩ*ci*cω, sΩ * si},
		{sΩ*cω + cΩ*ci*sω, -sΩ*sω + cΩ*ci*cω, -cΩ * si},
		{si * sω, si * cω, ci},
	}}
}
