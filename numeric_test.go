package orbitcore

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestNewtonRaphsonSqrt(t *testing.T) {
	f := func(x float64) float64 { return x*x - 2 }
	fp := func(x float64) float64 { return 2 * x }
	got := NewtonRaphson(1, f, fp)
	if !floats.EqualWithinAbs(got, math.Sqrt2, 1e-12) {
		t.Errorf("NewtonRaphson(x^2-2) = %v, want √2", got)
	}
}

func TestBisectionSqrt(t *testing.T) {
	f := func(x float64) float64 { return x*x - 2 }
	got := Bisection(f, 0, 2)
	if !floats.EqualWithinAbs(got, math.Sqrt2, 1e-12) {
		t.Errorf("Bisection(x^2-2) = %v, want √2", got)
	}
}

func TestGoldenSectionSearchFindsMinimum(t *testing.T) {
	f := func(x float64) float64 { return (x - 1.5) * (x - 1.5) }
	x, ok := GoldenSectionSearch(f, -5, 5, 1e-6)
	if !ok {
		t.Fatal("GoldenSectionSearch reported no minimum")
	}
	if !floats.EqualWithinAbs(x, 1.5, 1e-4) {
		t.Errorf("GoldenSectionSearch minimum at %v, want 1.5", x)
	}
}

func TestGoldenSectionSearchRejectsFlatRegion(t *testing.T) {
	f := func(x float64) float64 { return 100 } // never below tol
	_, ok := GoldenSectionSearch(f, 0, 1, 1)
	if ok {
		t.Error("expected GoldenSectionSearch to fail when f exceeds tol everywhere")
	}
}

func TestRK4StepConstantVelocity(t *testing.T) {
	f := func(t float64, y []float64) []float64 { return []float64{y[2], y[3], 0, 0} }
	y0 := []float64{0, 0, 1, 2}
	y1 := RK4Step(f, 0, y0, 1)
	want := []float64{1, 2, 1, 2}
	for i := range want {
		if !floats.EqualWithinAbs(y1[i], want[i], 1e-9) {
			t.Errorf("RK4Step[%d] = %v, want %v", i, y1[i], want[i])
		}
	}
}

func TestRK4StepHarmonicOscillator(t *testing.T) {
	// y'' = -y, exact solution over one step is cos/sin; RK4 should match
	// to several digits over a small step.
	f := func(t float64, y []float64) []float64 { return []float64{y[1], -y[0]} }
	y0 := []float64{1, 0}
	y1 := RK4Step(f, 0, y0, 0.1)
	want := []float64{math.Cos(0.1), -math.Sin(0.1)}
	for i := range want {
		if !floats.EqualWithinAbs(y1[i], want[i], 1e-6) {
			t.Errorf("RK4Step harmonic[%d] = %v, want %v", i, y1[i], want[i])
		}
	}
}
