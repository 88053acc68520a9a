package orbitcore

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestPositionVelocityToTarget(t *testing.T) {
	earth := testEarth()
	a, _ := NewOrbit(earth, 7e6, 0, 0, 0, 0, 0, 0)
	b, _ := NewOrbit(earth, 9e6, 0, 0, 0, 0, 0, 0)

	d := PositionToTarget(a, b, 0)
	want := b.PositionAtTime(0).Sub(a.PositionAtTime(0))
	if !d.Equal(want, 1e-6) {
		t.Errorf("PositionToTarget = %+v, want %+v", d, want)
	}

	dv := VelocityToTarget(a, b, 0)
	wantV := b.VelocityAtTime(0).Sub(a.VelocityAtTime(0))
	if !dv.Equal(wantV, 1e-6) {
		t.Errorf("VelocityToTarget = %+v, want %+v", dv, wantV)
	}
}

func TestTimeAtNextApproachCoplanarCircular(t *testing.T) {
	earth := testEarth()
	a, _ := NewOrbit(earth, 7e6, 0, 0, 0, 0, 0, 0)
	b, _ := NewOrbit(earth, 7e6, 0, 0, 0, 0, 0, math.Pi) // half a revolution ahead

	tClosest, dist, ok := TimeAtNextApproach(a, b, 0, 1e3)
	// Same circle, always π apart: never comes within tol, search should fail.
	if ok {
		t.Errorf("expected no approach within tol, got t=%v dist=%v", tClosest, dist)
	}
}

func TestTimeAtNextApproachConverging(t *testing.T) {
	earth := testEarth()
	a, _ := NewOrbit(earth, 7e6, 0, 0, 0, 0, 0, 0)
	c, _ := NewOrbit(earth, 7.001e6, 0, 0, 0, 0, 0, 2e-4) // 1 km higher and slightly ahead: a catches up within the window

	tClosest, dist, ok := TimeAtNextApproach(a, c, 0, 1e4)
	if !ok {
		t.Fatal("TimeAtNextApproach reported no minimum within tol")
	}
	if tClosest < 0 || tClosest > a.Period()/2 {
		t.Errorf("tClosest = %v out of window", tClosest)
	}
	if dist < 0 || dist > 1e4 {
		t.Errorf("distance = %v, want within tol", dist)
	}
}

func TestTimeAtNextApproachDisjointShells(t *testing.T) {
	earth := testEarth()
	a, _ := NewOrbit(earth, 7e6, 0, 0, 0, 0, 0, 0)
	b, _ := NewOrbit(earth, 5e8, 0, 0, 0, 0, 0, 0) // radial shells never overlap

	_, _, ok := TimeAtNextApproach(a, b, 0, 1e3)
	if ok {
		t.Error("expected disjoint-shell short circuit to report no approach")
	}
}

func TestTimeAtNextEncounterAlreadyInside(t *testing.T) {
	earth := testEarth()
	a, _ := NewOrbit(earth, 7e6, 0, 0, 0, 0, 0, 0)
	b, _ := NewOrbit(earth, 7e6, 0, 0, 0, 0, 0, 0) // coincident

	tEnc := TimeAtNextEncounter(a, b, 0, 1e3)
	if math.IsInf(tEnc, 1) {
		t.Fatal("expected an immediate encounter, got +Inf")
	}
	if !floats.EqualWithinAbs(tEnc, 0, 1e-9) {
		t.Errorf("tEnc = %v, want 0 (already inside)", tEnc)
	}
}

func TestTimeAtNextEncounterDisjoint(t *testing.T) {
	earth := testEarth()
	a, _ := NewOrbit(earth, 7e6, 0, 0, 0, 0, 0, 0)
	b, _ := NewOrbit(earth, 5e8, 0, 0, 0, 0, 0, 0) // always far away

	tEnc := TimeAtNextEncounter(a, b, 0, 1e3)
	if !math.IsInf(tEnc, 1) {
		t.Errorf("expected no encounter for orbits that never come close, got %v", tEnc)
	}
}

func TestTimeAtNextApproachSwapsOpenForClosed(t *testing.T) {
	earth := testEarth()
	closedOrbit, _ := NewOrbit(earth, 7e6, 0, 0, 0, 0, 0, 0)
	hyperbolic, _ := NewOrbit(earth, 7e6, 1.5, 0, 0, 0, 0, 0)

	// Passing the open orbit first must not break the internal window
	// derivation, which needs a finite period: TimeAtNextApproach swaps
	// the pair internally to get one.
	_, _, ok := TimeAtNextApproach(hyperbolic, closedOrbit, 0, 1e9)
	if !ok {
		t.Error("expected swap-to-closed-orbit search to succeed in finding some point within tol")
	}
}
