package orbitcore

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Epsilons used for equality checks and degenerate-geometry detection.
const (
	eccentricityEps = 1e-9
	angleEps        = 1e-9
	distanceEps     = 1e-6 // metres
)

// Orbit is an immutable set of classical (Keplerian) orbital elements
// around a primary body, plus the epoch at which the mean anomaly was
// sampled. Every derived quantity (semi-major axis, apoapsis, ...) is
// computed once at construction time and cached: since an Orbit is never
// mutated after NewOrbit returns, there is nothing for the cache to ever
// invalidate against.
type Orbit struct {
	Primary *CelestialBody

	periapsis float64 // m
	ecc       float64
	inc       float64 // rad, [0, π]
	raan      float64 // Ω, rad, [0, 2π)
	argp      float64 // ω, rad, [0, 2π)
	epoch     float64 // seconds since J2000
	m0        float64 // mean anomaly at epoch, rad

	sma, apoapsis, semiLatus, semiMinor, focal, meanMotion, period float64
	plane                                                          Mat3
}

// NewOrbit constructs an Orbit from its six classical elements. Angles are
// in radians. Inclination is normalized: a value found in (π, 2π) is folded
// into [0, π] by subtracting π from inclination, raan and argp together,
// after which raan and argp are wrapped to [0, 2π).
// Periapsis must be positive; eccentricity must be non-negative.
func NewOrbit(primary *CelestialBody, periapsis, ecc, inc, raan, argp, epoch, m0 float64) (*Orbit, error) {
	if ecc < 0 {
		return nil, newInvalidElements("eccentricity must be non-negative, got %g", ecc)
	}
	if periapsis <= 0 {
		return nil, newInvalidElements("periapsis must be positive, got %g", periapsis)
	}
	inc, raan, argp = normalizeInclination(inc, raan, argp)

	o := &Orbit{
		Primary:   primary,
		periapsis: periapsis,
		ecc:       ecc,
		inc:       inc,
		raan:      raan,
		argp:      argp,
		epoch:     epoch,
		m0:        m0,
	}
	o.computeDerived(primary.GM())
	return o, nil
}

func normalizeInclination(i, raan, argp float64) (float64, float64, float64) {
	i = math.Mod(i, 2*math.Pi)
	if i < 0 {
		i += 2 * math.Pi
	}
	if i > math.Pi {
		i -= math.Pi
		raan -= math.Pi
		argp -= math.Pi
	}
	raan = wrap2Pi(raan)
	argp = wrap2Pi(argp)
	return i, raan, argp
}

func wrap2Pi(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func (o *Orbit) computeDerived(μ float64) {
	e := o.ecc
	switch classify(e) {
	case classParabolic:
		o.sma = math.Inf(1)
		o.semiLatus = o.periapsis * (1 + e)
		o.apoapsis = math.Inf(1)
		o.semiMinor = math.Inf(1)
		o.focal = math.Inf(1)
		o.meanMotion = 3 * math.Sqrt(μ/math.Pow(2*o.semiLatus, 3))
		o.period = math.Inf(1)
	case classHyperbolic:
		o.sma = o.periapsis / (1 - e)
		o.semiLatus = o.periapsis * (1 + e)
		o.apoapsis = o.sma * (1 + e)
		o.semiMinor = math.Sqrt(math.Abs(o.sma * o.semiLatus))
		o.focal = math.Abs(o.sma) * e
		o.meanMotion = math.Sqrt(μ / math.Pow(-o.sma, 3))
		o.period = math.Inf(1)
	default:
		o.sma = o.periapsis / (1 - e)
		o.semiLatus = o.periapsis * (1 + e)
		o.apoapsis = o.sma * (1 + e)
		o.semiMinor = math.Sqrt(o.sma * o.semiLatus)
		o.focal = o.sma * e
		o.meanMotion = math.Sqrt(μ / math.Pow(o.sma, 3))
		o.period = 2 * math.Pi / o.meanMotion
	}
	o.plane = FromEulerZXZ(o.raan, o.inc, o.argp)
}

// Periapsis returns the periapsis distance.
func (o *Orbit) Periapsis() float64 { return o.periapsis }

// Eccentricity returns e.
func (o *Orbit) Eccentricity() float64 { return o.ecc }

// Inclination returns i, in [0, π].
func (o *Orbit) Inclination() float64 { return o.inc }

// RAAN returns Ω, the longitude of the ascending node, in [0, 2π).
func (o *Orbit) RAAN() float64 { return o.raan }

// ArgPeriapsis returns ω, in [0, 2π).
func (o *Orbit) ArgPeriapsis() float64 { return o.argp }

// Epoch returns the epoch, in seconds since J2000.
func (o *Orbit) Epoch() float64 { return o.epoch }

// MeanAnomalyAtEpoch returns M0.
func (o *Orbit) MeanAnomalyAtEpoch() float64 { return o.m0 }

// SemiMajorAxis returns a: positive for bound orbits, negative for
// hyperbolic, +Inf for parabolic.
func (o *Orbit) SemiMajorAxis() float64 { return o.sma }

// Apoapsis returns the apoapsis distance, negative for hyperbolic orbits
// (a non-physical marker, since a hyperbolic orbit never reaches an
// apoapsis) and +Inf for parabolic.
func (o *Orbit) Apoapsis() float64 { return o.apoapsis }

// SemiLatusRectum returns p = periapsis*(1+e).
func (o *Orbit) SemiLatusRectum() float64 { return o.semiLatus }

// SemiMinorAxis returns b.
func (o *Orbit) SemiMinorAxis() float64 { return o.semiMinor }

// FocalDistance returns c, the distance between the orbit's center and its
// focus.
func (o *Orbit) FocalDistance() float64 { return o.focal }

// MeanMotion returns n.
func (o *Orbit) MeanMotion() float64 { return o.meanMotion }

// Period returns the orbital period, +Inf for open orbits.
func (o *Orbit) Period() float64 { return o.period }

// PlaneTransform returns Rz(Ω)*Rx(i)*Rz(ω), mapping perifocal (PQW)
// coordinates to the primary's reference frame.
func (o *Orbit) PlaneTransform() Mat3 { return o.plane }

// EjectionAngle returns acos(-1/e) for open trajectories, +Inf for bound
// orbits.
func (o *Orbit) EjectionAngle() float64 { return ejectionAngle(o.ecc) }

/* Anomaly conversions. */

// TrueAnomalyFromEccentric converts an eccentric anomaly to a true anomaly
// for this orbit's eccentricity.
func (o *Orbit) TrueAnomalyFromEccentric(E float64) float64 {
	return trueAnomalyFromEccentric(o.ecc, E)
}

// EccentricFromTrueAnomaly converts a true anomaly to an eccentric anomaly.
func (o *Orbit) EccentricFromTrueAnomaly(ν float64) float64 {
	return eccentricFromTrue(o.ecc, ν)
}

// MeanAnomalyFromEccentric converts an eccentric anomaly to a mean anomaly.
func (o *Orbit) MeanAnomalyFromEccentric(E float64) float64 {
	return meanAnomalyFromEccentric(o.ecc, E)
}

// EccentricFromMeanAnomaly solves Kepler's equation for E given M.
func (o *Orbit) EccentricFromMeanAnomaly(M float64) float64 {
	return eccentricFromMean(o.ecc, M)
}

// MeanAnomalyFromTrueAnomaly converts a true anomaly directly to a mean
// anomaly.
func (o *Orbit) MeanAnomalyFromTrueAnomaly(ν float64) float64 {
	return o.MeanAnomalyFromEccentric(o.EccentricFromTrueAnomaly(ν))
}

// TrueAnomalyFromMeanAnomaly converts a mean anomaly directly to a true
// anomaly.
func (o *Orbit) TrueAnomalyFromMeanAnomaly(M float64) float64 {
	return o.TrueAnomalyFromEccentric(o.EccentricFromMeanAnomaly(M))
}

// MeanAnomalyAtTime returns M0 + n*(t - epoch).
func (o *Orbit) MeanAnomalyAtTime(t float64) float64 {
	return o.m0 + o.meanMotion*(t-o.epoch)
}

// TimeAtMeanAnomaly inverts MeanAnomalyAtTime linearly: the t such that
// MeanAnomalyAtTime(t) == M, for the specific (possibly un-wrapped) value
// of M supplied.
func (o *Orbit) TimeAtMeanAnomaly(M float64) float64 {
	return o.epoch + (M-o.m0)/o.meanMotion
}

// TrueAnomalyAtTime returns the true anomaly at time t.
func (o *Orbit) TrueAnomalyAtTime(t float64) float64 {
	return o.TrueAnomalyFromMeanAnomaly(o.MeanAnomalyAtTime(t))
}

// TimeAtTrueAnomaly returns a time at which the orbit reaches true anomaly
// ν.
func (o *Orbit) TimeAtTrueAnomaly(ν float64) float64 {
	return o.TimeAtMeanAnomaly(o.MeanAnomalyFromTrueAnomaly(ν))
}

// TimeAtPeriapsis returns the time at which the mean anomaly, extrapolated
// linearly from M0 at epoch, is zero: epoch - M0/n. It precedes the epoch
// when M0 is positive.
func (o *Orbit) TimeAtPeriapsis() float64 {
	return o.TimeAtMeanAnomaly(0)
}

/* Geometry at a true anomaly. */

// Distance returns the radial distance at true anomaly ν.
func (o *Orbit) Distance(ν float64) float64 {
	return conicDistance(o.ecc, o.semiLatus, ν)
}

// Speed returns the vis-viva speed at radial distance r.
func (o *Orbit) Speed(r float64) float64 {
	return visVivaSpeed(o.Primary.GM(), r, o.sma)
}

// PositionAtTrueAnomaly returns the position vector, in the primary's
// reference frame, at true anomaly ν.
func (o *Orbit) PositionAtTrueAnomaly(ν float64) Vec3 {
	r := o.Distance(ν)
	sν, cν := math.Sincos(ν)
	perifocal := Vec3{r * cν, r * sν, 0}
	return o.plane.MulVec(perifocal)
}

// VelocityAtTrueAnomaly returns the velocity vector, in the primary's
// reference frame, at true anomaly ν. The perifocal velocity is the closed
// form derivative of the same (r, ν) parametrization; its magnitude equals
// the vis-viva speed without any separate rescaling step.
func (o *Orbit) VelocityAtTrueAnomaly(ν float64) Vec3 {
	e := o.ecc
	p := o.semiLatus
	μ := o.Primary.GM()
	sν, cν := math.Sincos(ν)
	// perifocal velocity from d/dt of r(ν)*(cos ν, sin ν, 0), using
	// dν/dt = h/r² and h = sqrt(μ p).
	h := math.Sqrt(μ * p)
	vPerifocal := Vec3{
		-(μ / h) * sν,
		(μ / h) * (e + cν),
		0,
	}
	return o.plane.MulVec(vPerifocal)
}

// PositionAtTime returns the position at time t.
func (o *Orbit) PositionAtTime(t float64) Vec3 {
	return o.PositionAtTrueAnomaly(o.TrueAnomalyAtTime(t))
}

// VelocityAtTime returns the velocity at time t.
func (o *Orbit) VelocityAtTime(t float64) Vec3 {
	return o.VelocityAtTrueAnomaly(o.TrueAnomalyAtTime(t))
}

// TrueAnomalyAtDistance returns the positive true anomaly ν such that
// Distance(ν) == d, when one exists: d must be at least the periapsis and,
// for closed orbits, at most the apoapsis. Circular orbits (e below
// eccentricityEps) never have a unique ν for a given distance and always
// report ok=false.
func (o *Orbit) TrueAnomalyAtDistance(d float64) (ν float64, ok bool) {
	if o.ecc < eccentricityEps {
		return 0, false
	}
	if d < o.periapsis-distanceEps {
		return 0, false
	}
	if o.ecc < 1 && d > o.apoapsis+distanceEps {
		return 0, false
	}
	cν := (o.semiLatus/d - 1) / o.ecc
	if cν > 1 {
		cν = 1
	} else if cν < -1 {
		cν = -1
	}
	return math.Acos(cν), true
}

// TrueAnomalyAtEscape returns the true anomaly at which this orbit crosses
// the primary's sphere of influence.
func (o *Orbit) TrueAnomalyAtEscape() (float64, bool) {
	if o.Primary == nil {
		return 0, false
	}
	return o.TrueAnomalyAtDistance(o.Primary.SphereOfInfluence())
}

// TimeAtEscape returns the next time at or after t0 at which this orbit
// reaches the primary's sphere of influence, or false if the orbit never
// escapes (bound and the SOI is beyond the apoapsis, or the primary has no
// finite SOI).
func (o *Orbit) TimeAtEscape(t0 float64) (float64, bool) {
	if o.Primary == nil || math.IsInf(o.Primary.SphereOfInfluence(), 1) {
		return 0, false
	}
	ν, ok := o.TrueAnomalyAtEscape()
	if !ok {
		return 0, false
	}
	tEsc := o.TimeAtTrueAnomaly(ν)
	if o.ecc < 1 {
		// Bound orbit: advance by whole periods until tEsc is at or after t0.
		if o.period == math.Inf(1) {
			return 0, false
		}
		for tEsc < t0 {
			tEsc += o.period
		}
		return tEsc, true
	}
	if tEsc < t0 {
		return 0, false
	}
	return tEsc, true
}

/* Equivalence. */

// Equal reports whether o and o2 describe the same orbit within the given
// tolerances. Circular orbits are compared by node longitude instead of
// argument of periapsis, which is undefined for e≈0.
func (o *Orbit) Equal(o2 *Orbit, distTol, eccTol, angleTol float64) bool {
	if !floats.EqualWithinAbs(o.sma, o2.sma, distTol) && !(math.IsInf(o.sma, 1) && math.IsInf(o2.sma, 1)) {
		return false
	}
	if !floats.EqualWithinAbs(o.ecc, o2.ecc, eccTol) {
		return false
	}
	if !floats.EqualWithinAbs(o.inc, o2.inc, angleTol) {
		return false
	}
	if o.ecc < eccentricityEps {
		// Circular: ω is undefined; compare node/latitude framing instead.
		if o.inc > angleEps {
			return angleEqual(o.raan, o2.raan, angleTol)
		}
		return true
	}
	if !angleEqual(o.raan, o2.raan, angleTol) {
		return false
	}
	return angleEqual(o.argp, o2.argp, angleTol)
}

func angleEqual(a, b, tol float64) bool {
	d := math.Mod(a-b+math.Pi, 2*math.Pi) - math.Pi
	return math.Abs(d) <= tol
}

/* Alternative constructors. */

// FromSemiMajorAxis constructs an Orbit from (a, e) instead of (periapsis,
// e). Rejects combinations inconsistent with the kind of orbit: e<1 with
// a<=0, e>1 with a>=0, or e==1 (parabolic orbits have no finite semi-major
// axis and must be built with FromApses or OrbitFromStateVector).
func FromSemiMajorAxis(primary *CelestialBody, a, e, inc, raan, argp, epoch, m0 float64) (*Orbit, error) {
	switch classify(e) {
	case classParabolic:
		return nil, newInvalidElements("cannot construct a parabolic orbit from a semi-major axis")
	case classHyperbolic:
		if a >= 0 {
			return nil, newInvalidElements("hyperbolic orbit (e=%g) requires a negative semi-major axis, got %g", e, a)
		}
	default:
		if a <= 0 {
			return nil, newInvalidElements("elliptic orbit (e=%g) requires a positive semi-major axis, got %g", e, a)
		}
	}
	periapsis := a * (1 - e)
	return NewOrbit(primary, periapsis, e, inc, raan, argp, epoch, m0)
}

// FromApses constructs an Orbit from two apsis distances r1, r2 (in either
// order). If either is infinite the orbit is parabolic; otherwise
// periapsis is the smaller of the two and e is derived from both.
func FromApses(primary *CelestialBody, r1, r2, inc, raan, argp, epoch, m0 float64) (*Orbit, error) {
	periapsis := math.Min(math.Abs(r1), math.Abs(r2))
	var e float64
	if math.IsInf(r1, 1) || math.IsInf(r2, 1) {
		e = 1
	} else {
		e = math.Abs(r1-r2) / (r1 + r2)
	}
	return NewOrbit(primary, periapsis, e, inc, raan, argp, epoch, m0)
}

// FromPeriod constructs an Orbit from its period T (seconds) and
// eccentricity e. Rejects e >= 1, for which the period is infinite.
func FromPeriod(primary *CelestialBody, T, e, inc, raan, argp, epoch, m0 float64) (*Orbit, error) {
	if e >= 1 {
		return nil, newInvalidElements("period is only finite for e<1, got e=%g", e)
	}
	a := math.Cbrt(primary.GM() * math.Pow(T/(2*math.Pi), 2))
	return FromSemiMajorAxis(primary, a, e, inc, raan, argp, epoch, m0)
}

// FromPeriodApsis constructs an Orbit from its period T (seconds) and a
// single apsis distance (periapsis or apoapsis — either works, since
// |apsis/a - 1| recovers e regardless of which apsis was given). Rejects an
// infinite period.
func FromPeriodApsis(primary *CelestialBody, T, apsis, inc, raan, argp, epoch, m0 float64) (*Orbit, error) {
	if math.IsInf(T, 0) {
		return nil, newInvalidElements("cannot construct an orbit from an infinite period")
	}
	a := math.Cbrt(primary.GM() * math.Pow(T/(2*math.Pi), 2))
	e := math.Abs(apsis/a - 1)
	return FromSemiMajorAxis(primary, a, e, inc, raan, argp, epoch, m0)
}
