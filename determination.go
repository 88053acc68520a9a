package orbitcore

import "math"

// degenerateMomentumEps is the norm below which r x v is treated as zero,
// i.e. r and v are collinear and no orbital plane is defined.
const degenerateMomentumEps = 1e-6

// OrbitFromStateVector determines the Orbit passing through position r and
// velocity v (both in the primary's reference frame) at time t, around the
// given primary. Rather than reading each classical element off with raw
// math.Acos calls and after-the-fact quadrant fixes, every angle here is
// read off with OrientedAngle against the normal that makes it
// geometrically meaningful, except the inclination, which is the unsigned
// Angle between h and +Z, and Ω, whose sign is fixed up from h.X directly.
func OrbitFromStateVector(primary *CelestialBody, r, v Vec3, t float64) (*Orbit, error) {
	μ := primary.GM()

	h := r.Cross(v)
	if h.Norm() < degenerateMomentumEps {
		return nil, ErrDegenerateState
	}

	eVec := r.Scale(v.Dot(v) - μ/r.Norm()).Sub(v.Scale(r.Dot(v))).Div(μ)
	e := eVec.Norm()
	i := Angle(h, UnitZ)

	var nodeDir Vec3
	if i < angleEps || i > math.Pi-angleEps {
		nodeDir = UnitX
	} else {
		nodeDir = UnitZ.Cross(h)
	}

	raan := Angle(UnitX, nodeDir)
	if h.X < 0 {
		raan = -raan
	}

	periapsisDir := eVec
	if e < eccentricityEps {
		periapsisDir = UnitX
	}

	argp := OrientedAngle(nodeDir, periapsisDir, h)
	ν := OrientedAngle(periapsisDir, r, h)

	semiLatus := h.Dot(h) / μ
	periapsis := semiLatus / (1 + e)
	m0 := meanAnomalyFromEccentric(e, eccentricFromTrue(e, ν))

	return NewOrbit(primary, periapsis, e, i, raan, argp, t, m0)
}
