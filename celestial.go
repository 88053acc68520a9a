package orbitcore

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

// CelestialBody is a node in the system tree: a body with its own gravity,
// optionally orbiting a parent body, with zero or more satellites of its
// own.
type CelestialBody struct {
	Name           string
	Mu             float64 // gravitational parameter, m^3/s^2
	Radius         float64 // m
	RotationPeriod float64 // sidereal rotation period, s; 0 if unknown/tidally irrelevant
	NorthPole      Vec3    // unit vector, zero if unspecified (equatorial frame == reference frame)

	ParentOrbit *Orbit // nil for a root body (e.g. a system's star)
	Satellites  []*CelestialBody
}

// NewCelestialBody constructs a root or (once attached via AddSatellite) a
// satellite body.
func NewCelestialBody(name string, mu, radius, rotationPeriod float64, northPole Vec3) *CelestialBody {
	return &CelestialBody{
		Name:           name,
		Mu:             mu,
		Radius:         radius,
		RotationPeriod: rotationPeriod,
		NorthPole:      northPole,
	}
}

// GM returns the gravitational parameter μ = GM.
func (b *CelestialBody) GM() float64 { return b.Mu }

// AddSatellite attaches s as an orbiting satellite of b. s.ParentOrbit must
// already have s.ParentOrbit.Primary == b.
func (b *CelestialBody) AddSatellite(s *CelestialBody) error {
	if s.ParentOrbit == nil {
		return newInvalidElements("satellite %q has no parent orbit", s.Name)
	}
	if s.ParentOrbit.Primary != b {
		return newInvalidElements("satellite %q's orbit is not around %q", s.Name, b.Name)
	}
	b.Satellites = append(b.Satellites, s)
	return nil
}

// SphereOfInfluence returns the radius of b's sphere of influence,
// a*(μ_b/μ_parent)^(2/5). A root body (no parent orbit) has no finite SOI
// boundary.
func (b *CelestialBody) SphereOfInfluence() float64 {
	if b.ParentOrbit == nil {
		return math.Inf(1)
	}
	a := b.ParentOrbit.SemiMajorAxis()
	return a * math.Pow(b.Mu/b.ParentOrbit.Primary.GM(), 0.4)
}

// Gravity returns the gravitational acceleration exerted by b at a
// displacement d from its center, applying the shell theorem below the
// surface (uniform-density approximation: only the mass interior to |d|
// acts, scaling linearly with |d|).
func (b *CelestialBody) Gravity(d Vec3) Vec3 {
	r := d.Norm()
	if r == 0 {
		return ZeroVec3
	}
	if r >= b.Radius {
		return d.Scale(-b.Mu / (r * r * r))
	}
	return d.Scale(-b.Mu / (b.Radius * b.Radius * b.Radius))
}

// GlobalPositionAtTime returns b's position in the root body's reference
// frame at time t, by walking up the parent chain and summing each leg's
// orbital position.
func (b *CelestialBody) GlobalPositionAtTime(t float64) Vec3 {
	if b.ParentOrbit == nil {
		return ZeroVec3
	}
	return b.ParentOrbit.Primary.GlobalPositionAtTime(t).Add(b.ParentOrbit.PositionAtTime(t))
}

// GlobalVelocityAtTime returns b's velocity in the root body's reference
// frame at time t.
func (b *CelestialBody) GlobalVelocityAtTime(t float64) Vec3 {
	if b.ParentOrbit == nil {
		return ZeroVec3
	}
	return b.ParentOrbit.Primary.GlobalVelocityAtTime(t).Add(b.ParentOrbit.VelocityAtTime(t))
}

// PositionAtTime satisfies Positioner.
func (b *CelestialBody) PositionAtTime(t float64) Vec3 { return b.GlobalPositionAtTime(t) }

// VelocityAtTime satisfies Mover.
func (b *CelestialBody) VelocityAtTime(t float64) Vec3 { return b.GlobalVelocityAtTime(t) }

func (b *CelestialBody) String() string {
	return fmt.Sprintf("%s (μ=%.6g, R=%.6g)", b.Name, b.Mu, b.Radius)
}

/* Calendar formatting: a day is b's own rotation period and a year is its
orbital period around its parent, so the same number of seconds formats
differently depending on which body is the calendar reference — exactly as
a UT-to-date conversion depends on the homeworld. */

// FormatDuration renders seconds as "Yy Dd hh:mm:ss.ss", using b's orbital
// period as the year length and its rotation period as the day length. The
// year component is omitted for a root body or one with an infinite
// orbital period.
func (b *CelestialBody) FormatDuration(seconds float64) string {
	neg := seconds < 0
	if neg {
		seconds = -seconds
	}
	day := b.RotationPeriod
	if day <= 0 {
		day = 86400
	}
	var year float64
	if b.ParentOrbit != nil && !math.IsInf(b.ParentOrbit.Period(), 1) {
		year = b.ParentOrbit.Period()
	}

	rem := seconds
	var years int
	if year > 0 {
		years = int(rem / year)
		rem -= float64(years) * year
	}
	days := int(rem / day)
	rem -= float64(days) * day
	hours := int(rem / 3600)
	rem -= float64(hours) * 3600
	minutes := int(rem / 60)
	rem -= float64(minutes) * 60

	sign := ""
	if neg {
		sign = "-"
	}
	if year > 0 {
		return fmt.Sprintf("%s%dy %dd %02d:%02d:%05.2f", sign, years, days, hours, minutes, rem)
	}
	return fmt.Sprintf("%s%dd %02d:%02d:%05.2f", sign, days, hours, minutes, rem)
}

var durationPattern = regexp.MustCompile(`^(-)?(?:(\d+)y\s+)?(\d+)d\s+(\d+):(\d+):(\d+(?:\.\d+)?)$`)

// ParseDuration inverts FormatDuration.
func (b *CelestialBody) ParseDuration(s string) (float64, error) {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, errors.Errorf("malformed duration %q", s)
	}
	day := b.RotationPeriod
	if day <= 0 {
		day = 86400
	}
	var year float64
	if b.ParentOrbit != nil && !math.IsInf(b.ParentOrbit.Period(), 1) {
		year = b.ParentOrbit.Period()
	}

	var years float64
	if m[2] != "" {
		y, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return 0, wrapf(err, "parsing year field of %q", s)
		}
		years = y
	}
	days, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return 0, wrapf(err, "parsing day field of %q", s)
	}
	hours, _ := strconv.ParseFloat(m[4], 64)
	minutes, _ := strconv.ParseFloat(m[5], 64)
	secs, _ := strconv.ParseFloat(m[6], 64)

	total := years*year + days*day + hours*3600 + minutes*60 + secs
	if m[1] == "-" {
		total = -total
	}
	return total, nil
}
