package orbitcore

import "math"

// newtonMaxIter is the hard iteration cap for NewtonRaphson.
const newtonMaxIter = 30

// bisectionMaxIter is the hard iteration cap for Bisection and
// GoldenSectionSearch.
const bisectionMaxIter = 54

// NewtonRaphson iterates x ← x − f(x)/f'(x) starting from x0, for at most
// 30 iterations, stopping as soon as x equals either of the two most
// recently produced iterates (two-step stagnation). It returns the last
// iterate and never reports non-convergence; callers that need a residual
// check perform it themselves.
func NewtonRaphson(x0 float64, f, fPrime func(float64) float64) float64 {
	x := x0
	prev1 := math.NaN()
	prev2 := math.NaN()
	for i := 0; i < newtonMaxIter; i++ {
		if x == prev1 || x == prev2 {
			return x
		}
		prev2 = prev1
		prev1 = x
		x = x - f(x)/fPrime(x)
	}
	return x
}

// Bisection performs 54 halvings of [a, b], always retaining the half on
// which f changes sign, and returns the final midpoint. f(a) and f(b) must
// have opposite signs.
func Bisection(f func(float64) float64, a, b float64) float64 {
	fa := f(a)
	for i := 0; i < bisectionMaxIter; i++ {
		c := (a + b) / 2
		fc := f(c)
		if sameSign(fa, fc) {
			a = c
			fa = fc
		} else {
			b = c
		}
	}
	return (a + b) / 2
}

func sameSign(x, y float64) bool {
	return (x >= 0) == (y >= 0)
}

const goldenφ = 0.6180339887498949 // (sqrt(5)-1)/2

// GoldenSectionSearch locates a local minimum of a unimodal f over [a, b] by
// golden-ratio interval shrinkage over 54 iterations. It reports ok=false if
// the search degenerates to an endpoint, or if the value at the returned
// point exceeds tol, signaling that no minimum was bracketed.
func GoldenSectionSearch(f func(float64) float64, a, b, tol float64) (x float64, ok bool) {
	c := b - goldenφ*(b-a)
	d := a + goldenφ*(b-a)
	fc := f(c)
	fd := f(d)
	for i := 0; i < bisectionMaxIter; i++ {
		if fc < fd {
			b = d
			d = c
			fd = fc
			c = b - goldenφ*(b-a)
			fc = f(c)
		} else {
			a = c
			c = d
			fc = fd
			d = a + goldenφ*(b-a)
			fd = f(d)
		}
	}
	x = (a + b) / 2
	if x == a || x == b {
		return x, false
	}
	if f(x) > tol {
		return x, false
	}
	return x, true
}

// RK4Step performs one classical four-stage Runge-Kutta integration step of
// y' = f(t, y), of size h, starting at (t, y), and returns the new state.
func RK4Step(f func(t float64, y []float64) []float64, t float64, y []float64, h float64) []float64 {
	n := len(y)
	k1 := f(t, y)
	y2 := addScaled(y, k1, h/2)
	k2 := f(t+h/2, y2)
	y3 := addScaled(y, k2, h/2)
	k3 := f(t+h/2, y3)
	y4 := addScaled(y, k3, h)
	k4 := f(t+h, y4)

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = y[i] + (h/6)*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return out
}

func addScaled(y, k []float64, s float64) []float64 {
	out := make([]float64, len(y))
	for i := range y {
		out[i] = y[i] + s*k[i]
	}
	return out
}
