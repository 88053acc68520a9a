package orbitcore

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestSphereOfInfluenceRootBodyInfinite(t *testing.T) {
	sun := NewCelestialBody("Sun", 1.32712440018e20, 6.957e8, 2.2e6, ZeroVec3)
	if !math.IsInf(sun.SphereOfInfluence(), 1) {
		t.Errorf("root body SOI = %v, want +Inf", sun.SphereOfInfluence())
	}
}

func TestSphereOfInfluenceSatellite(t *testing.T) {
	sun := NewCelestialBody("Sun", 1.32712440018e20, 6.957e8, 2.2e6, ZeroVec3)
	earthOrbit, err := NewOrbit(sun, 1.471e11, 0.0167, 0, 0, 0, 0, 0)
	if err != nil {
		t.Fatalf("NewOrbit: %v", err)
	}
	earth := NewCelestialBody("Earth", 3.986004418e14, 6.371e6, 86164, ZeroVec3)
	earth.ParentOrbit = earthOrbit
	if err := sun.AddSatellite(earth); err != nil {
		t.Fatalf("AddSatellite: %v", err)
	}

	soi := earth.SphereOfInfluence()
	if soi <= 0 || soi >= earthOrbit.SemiMajorAxis() {
		t.Errorf("Earth SOI = %v, expected a small fraction of its orbital radius", soi)
	}
}

func TestAddSatelliteRejectsWrongPrimary(t *testing.T) {
	sun := NewCelestialBody("Sun", 1.32712440018e20, 6.957e8, 2.2e6, ZeroVec3)
	other := NewCelestialBody("Other", 1e20, 1e8, 1e6, ZeroVec3)
	orbitAroundOther, _ := NewOrbit(other, 1e10, 0, 0, 0, 0, 0, 0)
	sat := NewCelestialBody("Sat", 1e10, 1e5, 1e5, ZeroVec3)
	sat.ParentOrbit = orbitAroundOther

	if err := sun.AddSatellite(sat); err == nil {
		t.Error("expected error attaching a satellite whose orbit is around a different body")
	}
}

func TestGravityShellTheorem(t *testing.T) {
	earth := testEarth()
	outside := earth.Gravity(NewVec3(2*earth.Radius, 0, 0))
	surface := earth.Gravity(NewVec3(earth.Radius, 0, 0))
	inside := earth.Gravity(NewVec3(earth.Radius/2, 0, 0))

	if outside.Norm() >= surface.Norm() {
		t.Errorf("gravity should decrease with altitude: outside=%v surface=%v", outside.Norm(), surface.Norm())
	}
	if inside.Norm() >= surface.Norm() {
		t.Errorf("gravity inside the shell should be less than at the surface: inside=%v surface=%v", inside.Norm(), surface.Norm())
	}
}

func TestGlobalPositionAtTimeRecursesUpTree(t *testing.T) {
	sun := NewCelestialBody("Sun", 1.32712440018e20, 6.957e8, 2.2e6, ZeroVec3)
	earthOrbit, _ := NewOrbit(sun, 1.471e11, 0.0167, 0, 0, 0, 0, 0)
	earth := NewCelestialBody("Earth", 3.986004418e14, 6.371e6, 86164, ZeroVec3)
	earth.ParentOrbit = earthOrbit
	_ = sun.AddSatellite(earth)

	moonOrbit, _ := NewOrbit(earth, 3.633e8, 0.0549, 0.09, 0, 0, 0, 0)
	moon := NewCelestialBody("Moon", 4.9048695e12, 1.7374e6, 2.36e6, ZeroVec3)
	moon.ParentOrbit = moonOrbit
	_ = earth.AddSatellite(moon)

	got := moon.GlobalPositionAtTime(0)
	want := earth.GlobalPositionAtTime(0).Add(moonOrbit.PositionAtTime(0))
	if !got.Equal(want, 1e-3) {
		t.Errorf("Moon global position = %+v, want %+v", got, want)
	}
}

func TestFormatParseDurationRoundTrip(t *testing.T) {
	earth := testEarth()
	d := 3*86164.0 + 5*3600 + 6*60 + 7.5
	s := earth.FormatDuration(d)
	got, err := earth.ParseDuration(s)
	if err != nil {
		t.Fatalf("ParseDuration(%q): %v", s, err)
	}
	if !floats.EqualWithinAbs(got, d, 1e-6) {
		t.Errorf("round trip duration = %v, want %v (formatted as %q)", got, d, s)
	}
}
