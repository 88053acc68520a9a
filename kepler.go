package orbitcore

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// conicEps is the tolerance used to classify an eccentricity as parabolic.
const conicEps = 1e-9

// smallMeanAnomaly is the |M| threshold below which the Kepler solver uses
// the first-order Taylor shortcut instead of Newton-Raphson.
const smallMeanAnomaly = 1.0 / (1 << 26) // 2^-26

// conicClass tags which closed-form family of anomaly formulas applies,
// replacing scattered if e<1 / e==1 / e>1 branches with a single dispatch
// point for every anomaly conversion below.
type conicClass uint8

const (
	classElliptic conicClass = iota
	classParabolic
	classHyperbolic
)

func classify(e float64) conicClass {
	switch {
	case floats.EqualWithinAbs(e, 1, conicEps):
		return classParabolic
	case e > 1:
		return classHyperbolic
	default:
		return classElliptic
	}
}

// conicDistance returns the radial distance at true anomaly ν for a conic
// of eccentricity e and semi-latus rectum p.
func conicDistance(e, p, ν float64) float64 {
	return p / (1 + e*math.Cos(ν))
}

// visVivaSpeed returns the speed from the vis-viva equation v² = μ(2/r - 1/a).
// a may be +Inf (parabolic) or negative (hyperbolic); both make the formula
// well-defined because 1/a is then 0 or negative respectively.
func visVivaSpeed(μ, r, a float64) float64 {
	return math.Sqrt(μ * (2/r - 1/a))
}

// ejectionAngle returns acos(-1/e) for open trajectories (e >= 1), or +Inf
// for bound orbits where no true anomaly ever reaches infinity.
func ejectionAngle(e float64) float64 {
	if e < 1 {
		return math.Inf(1)
	}
	return math.Acos(-1 / e)
}

// meanAnomalyFromEccentric converts an eccentric anomaly to a mean anomaly,
// dispatching on the conic class.
func meanAnomalyFromEccentric(e, E float64) float64 {
	switch classify(e) {
	case classParabolic:
		return (math.Pow(E, 3) + 3*E) / 2
	case classHyperbolic:
		return e*math.Sinh(E) - E
	default:
		return E - e*math.Sin(E)
	}
}

// trueAnomalyFromEccentric converts an eccentric anomaly to a true anomaly.
func trueAnomalyFromEccentric(e, E float64) float64 {
	switch classify(e) {
	case classParabolic:
		return 2 * math.Atan(E)
	case classHyperbolic:
		return 2 * math.Atan2(math.Sqrt(e+1)*math.Sinh(E/2), math.Sqrt(e-1)*math.Cosh(E/2))
	default:
		return 2 * math.Atan2(math.Sqrt(1+e)*math.Sin(E/2), math.Sqrt(1-e)*math.Cos(E/2))
	}
}

// eccentricFromTrue converts a true anomaly to an eccentric anomaly by the
// inverse closed forms. In the hyperbolic case the argument of atanh may
// fall outside [-1, 1] for a ν beyond the asymptote; this returns a signed
// infinity in that case rather than NaN.
func eccentricFromTrue(e, ν float64) float64 {
	switch classify(e) {
	case classParabolic:
		return math.Tan(ν / 2)
	case classHyperbolic:
		arg := math.Sqrt(e-1) * math.Sin(ν/2) / (math.Sqrt(e+1) * math.Cos(ν/2))
		if arg <= -1 || arg >= 1 {
			return math.Inf(sign1(arg))
		}
		return 2 * atanh(arg)
	default:
		return 2 * math.Atan2(math.Sqrt(1-e)*math.Sin(ν/2), math.Sqrt(1+e)*math.Cos(ν/2))
	}
}

func atanh(x float64) float64 {
	return 0.5 * math.Log((1+x)/(1-x))
}

func sign1(x float64) int {
	if x < 0 {
		return -1
	}
	return 1
}

// eccentricFromMean solves Kepler's equation E from M:
//   - elliptic and hyperbolic |M| below 2^-26 use the first order Taylor
//     shortcut (avoids the zero-slope Newton start near periapsis);
//   - parabolic uses the closed form E = z - 1/z;
//   - otherwise Newton-Raphson from E0 = π (elliptic) or E0 = 1 (hyperbolic).
//
// M is normalized modulo 2π first, but only in the elliptic case: mean
// anomaly is not periodic for open trajectories.
func eccentricFromMean(e, M float64) float64 {
	class := classify(e)
	if class == classElliptic {
		M = math.Mod(M, 2*math.Pi)
	}
	if class != classParabolic && math.Abs(M) < smallMeanAnomaly {
		switch class {
		case classHyperbolic:
			return M / (e - 1)
		default:
			return M / (1 - e)
		}
	}
	switch class {
	case classParabolic:
		z := math.Cbrt(M + math.Sqrt(M*M+1))
		return z - 1/z
	case classHyperbolic:
		return keplerNewtonWithFallback(e, M, 1, class)
	default:
		return keplerNewtonWithFallback(e, M, math.Pi, class)
	}
}

// keplerNewtonWithFallback solves Kepler's equation by Newton-Raphson from
// E0, then falls back to bisection over a bracket around E0 if the Newton
// residual exceeds tolerance (absolute residual < 2^-45 for |M|<=1, relative
// residual < 2^-45 otherwise). Newton-Raphson alone converges slowly near
// e=1, so the bisection safety net covers the near-parabolic band the
// dedicated parabolic formula doesn't already handle.
func keplerNewtonWithFallback(e, M, E0 float64, class conicClass) float64 {
	f := func(E float64) float64 { return meanAnomalyFromEccentric(e, E) - M }
	fPrime := func(E float64) float64 {
		if class == classHyperbolic {
			return e*math.Cosh(E) - 1
		}
		return 1 - e*math.Cos(E)
	}
	E := NewtonRaphson(E0, f, fPrime)

	var tol float64
	if math.Abs(M) <= 1 {
		tol = math.Pow(2, -45)
	} else {
		tol = math.Pow(2, -45) * math.Abs(M)
	}
	if math.Abs(f(E)) <= tol {
		return E
	}
	// Bracket E0 outward until the residual changes sign, then bisect.
	span := 1.0
	lo, hi := E0-span, E0+span
	for i := 0; i < 64 && sameSign(f(lo), f(hi)); i++ {
		span *= 2
		lo, hi = E0-span, E0+span
	}
	return Bisection(f, lo, hi)
}
