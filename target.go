package orbitcore

import "math"

// Positioner is satisfied by anything whose position in a shared reference
// frame is a function of time: an Orbit, a CelestialBody, or a Rocket.
type Positioner interface {
	PositionAtTime(t float64) Vec3
}

// Mover additionally reports velocity, needed for relative-velocity queries.
type Mover interface {
	Positioner
	VelocityAtTime(t float64) Vec3
}

// PositionToTarget returns the position of b relative to a at time t.
func PositionToTarget(a, b Positioner, t float64) Vec3 {
	return b.PositionAtTime(t).Sub(a.PositionAtTime(t))
}

// VelocityToTarget returns the velocity of b relative to a at time t.
func VelocityToTarget(a, b Mover, t float64) Vec3 {
	return b.VelocityAtTime(t).Sub(a.VelocityAtTime(t))
}

// DistanceToTarget returns |PositionToTarget(a, b, t)|.
func DistanceToTarget(a, b Positioner, t float64) float64 {
	return PositionToTarget(a, b, t).Norm()
}

// TimeAtNextApproach locates the time of closest approach between orbits a
// and b after t. If a is open (e>=1) and b is closed, the two are swapped so
// the search window can be built from a finite period; if both are closed
// and their radial shells are disjoint (neither can reach the other at
// all), it short-circuits to "no approach"; otherwise it golden-section
// searches the scalar distance over [t, t+a.Period()/2] and accepts the
// result only if it comes within tol.
func TimeAtNextApproach(a, b *Orbit, t, tol float64) (tClosest, distClosest float64, ok bool) {
	if a.ecc >= 1 && b.ecc < 1 {
		a, b = b, a
	}
	if a.ecc >= 1 && b.ecc >= 1 {
		// Both open: no periodic window to bound the search by.
		return 0, 0, false
	}
	if b.ecc < 1 {
		disjoint := b.Periapsis()-a.Apoapsis() > tol || a.Periapsis()-b.Apoapsis() > tol
		if disjoint {
			return 0, 0, false
		}
	}

	f := func(τ float64) float64 {
		d := PositionToTarget(a, b, τ)
		return d.Dot(d)
	}
	t1 := t + a.Period()/2
	x, found := GoldenSectionSearch(f, t, t1, tol*tol)
	if !found {
		return 0, 0, false
	}
	dist := DistanceToTarget(a, b, x)
	if dist > tol {
		return 0, 0, false
	}
	return x, dist, true
}

// TimeAtNextEncounter locates the first time after t at which orbits a and b
// come within R of each other: TimeAtNextApproach with tol=R bounds the
// window, then Bisection solves ‖rB(τ)-rA(τ)‖-R=0 on [t, approach]. Reports
// +Inf if no approach within R is found.
func TimeAtNextEncounter(a, b *Orbit, t, R float64) float64 {
	approach, _, ok := TimeAtNextApproach(a, b, t, R)
	if !ok {
		return math.Inf(1)
	}
	f := func(τ float64) float64 { return DistanceToTarget(a, b, τ) - R }
	if f(t) <= 0 {
		return t
	}
	if sameSign(f(t), f(approach)) {
		return math.Inf(1)
	}
	return Bisection(f, t, approach)
}
