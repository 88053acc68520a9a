package orbitcore

import (
	"math"

	kitlog "github.com/go-kit/log"
)

// Rocket is a powered vehicle propagated under patched-conics: it coasts on
// a closed-form Orbit around whichever CelestialBody currently hosts it,
// switches to an RK4 integration of the two-body-plus-thrust equations of
// motion whenever its Program calls for thrust, and re-parents itself to a
// different CelestialBody whenever it crosses a sphere-of-influence
// boundary in either direction.
type Rocket struct {
	Name string

	Primary  *CelestialBody
	Time     float64
	Position Vec3 // relative to Primary's center
	Velocity Vec3 // relative to Primary

	DryMass         float64
	Propellant      float64
	MaxThrust       float64 // N
	ExhaustVelocity float64 // m/s (specific impulse * standard gravity)

	Program *Program

	// NextEncounterTime is the earliest time, at or after the rocket's
	// current Time, at which it is predicted to enter some sibling
	// satellite's sphere of influence; +Inf if none is converged upon.
	// It is advisory: the actual handoff in handleSOICrossing is still
	// driven by the direct distance check at each step.
	NextEncounterTime float64

	// NextEscapeTime is the earliest time, at or after the rocket's current
	// Time, at which its current osculating orbit is predicted to cross its
	// primary's sphere of influence outward; +Inf if it never does. Also
	// advisory, for the same reason as NextEncounterTime.
	NextEscapeTime float64

	coastOrbit *Orbit // cached Keplerian orbit for the current coast phase
	coasting   bool

	logger kitlog.Logger
}

// NewRocket constructs a Rocket in orbit around primary at the given state.
func NewRocket(name string, primary *CelestialBody, position, velocity Vec3, t, dryMass, propellant, maxThrust, exhaustVelocity float64, program *Program) *Rocket {
	if program == nil {
		program = NewProgram()
	}
	return &Rocket{
		Name:              name,
		Primary:           primary,
		Time:              t,
		Position:          position,
		Velocity:          velocity,
		DryMass:           dryMass,
		Propellant:        propellant,
		MaxThrust:         maxThrust,
		ExhaustVelocity:   exhaustVelocity,
		Program:           program,
		NextEncounterTime: math.Inf(1),
		NextEscapeTime:    math.Inf(1),
		logger:            NewLogger(name),
	}
}

// Mass returns the vehicle's current total mass.
func (r *Rocket) Mass() float64 { return r.DryMass + r.Propellant }

// CurrentOrbit derives the osculating orbit of r's present state around its
// current primary.
func (r *Rocket) CurrentOrbit() (*Orbit, error) {
	return OrbitFromStateVector(r.Primary, r.Position, r.Velocity, r.Time)
}

// PositionAtTime satisfies Positioner. For a rocket this is only meaningful
// at its current Time; callers that need prediction should read
// CurrentOrbit and query that instead.
func (r *Rocket) PositionAtTime(t float64) Vec3 {
	if t == r.Time {
		return r.Primary.GlobalPositionAtTime(t).Add(r.Position)
	}
	if o, err := r.CurrentOrbit(); err == nil {
		return r.Primary.GlobalPositionAtTime(t).Add(o.PositionAtTime(t))
	}
	return r.Primary.GlobalPositionAtTime(t).Add(r.Position)
}

// VelocityAtTime satisfies Mover, with the same current-time caveat as
// PositionAtTime.
func (r *Rocket) VelocityAtTime(t float64) Vec3 {
	if t == r.Time {
		return r.Primary.GlobalVelocityAtTime(t).Add(r.Velocity)
	}
	if o, err := r.CurrentOrbit(); err == nil {
		return r.Primary.GlobalVelocityAtTime(t).Add(o.VelocityAtTime(t))
	}
	return r.Primary.GlobalVelocityAtTime(t).Add(r.Velocity)
}

// Simulate advances the rocket by dt seconds (or LoadConfig().DefaultStepSize
// if dt<=0), running the program, integrating thrust or coasting, and
// patching the conic across any sphere-of-influence crossing.
func (r *Rocket) Simulate(dt float64) {
	if dt <= 0 {
		dt = LoadConfig().DefaultStepSize
	}

	step, active := r.currentStep()
	thrustDir := ZeroVec3
	if active && step.Throttle > 0 && r.Propellant > 0 {
		thrustDir = step.Thrust.Unit()
	}
	r.coasting = thrustDir == ZeroVec3

	if r.coasting {
		r.stepCoast(dt)
	} else {
		r.stepThrust(dt, thrustDir, step.Throttle)
	}

	r.updateNextEncounter()
	r.updateNextEscape()
	r.handleSOICrossing()
}

// updateNextEncounter computes, for each sibling satellite of the primary,
// the time of next encounter using the sibling's sphere-of-influence radius
// as the threshold, and caches the minimum as NextEncounterTime.
func (r *Rocket) updateNextEncounter() {
	r.NextEncounterTime = math.Inf(1)
	self, err := r.CurrentOrbit()
	if err != nil {
		return
	}
	for _, sat := range r.Primary.Satellites {
		tEnc := TimeAtNextEncounter(self, sat.ParentOrbit, r.Time, sat.SphereOfInfluence())
		if tEnc < r.NextEncounterTime {
			r.NextEncounterTime = tEnc
		}
	}
}

// updateNextEscape caches the time at which the rocket's current osculating
// orbit is next predicted to cross its primary's sphere of influence
// outward, using Orbit.TimeAtEscape.
func (r *Rocket) updateNextEscape() {
	r.NextEscapeTime = math.Inf(1)
	self, err := r.CurrentOrbit()
	if err != nil {
		return
	}
	if tEsc, ok := self.TimeAtEscape(r.Time); ok {
		r.NextEscapeTime = tEsc
	}
}

// currentStep advances the program past any step whose condition is
// already met, then returns the step that is now active.
func (r *Rocket) currentStep() (Step, bool) {
	o, err := r.CurrentOrbit()
	for {
		step, ok := r.Program.Current()
		if !ok {
			return Step{}, false
		}
		if o != nil && err == nil && step.Condition != nil && step.Condition.Ready(r.Time, o) {
			r.Program.Advance()
			r.logger.Log("level", "notice", "event", "program-advance", "t", r.Time)
			continue
		}
		return step, true
	}
}

func (r *Rocket) stepCoast(dt float64) {
	if r.coastOrbit == nil {
		o, err := r.CurrentOrbit()
		if err != nil {
			r.stepThrust(dt, ZeroVec3, 0) // degenerate state: fall back to direct integration
			return
		}
		r.coastOrbit = o
	}
	r.Time += dt
	r.Position = r.coastOrbit.PositionAtTime(r.Time)
	r.Velocity = r.coastOrbit.VelocityAtTime(r.Time)
}

// stepThrust integrates one RK4 step under gravity plus thrust along
// thrustDir, prorating the burn to whatever propellant is actually
// available: required propellant is computed for the full dt at the
// requested throttle, and if the tank holds less than that, both the
// consumed mass and the thrust vector are scaled down by the same ratio
// before the mass used in the acceleration is fixed for the step, so the
// rocket never produces more Δv than its remaining propellant allows.
func (r *Rocket) stepThrust(dt float64, thrustDir Vec3, throttle float64) {
	r.coastOrbit = nil
	μ := r.Primary.GM()
	mass := r.Mass()

	ratio := 0.0
	used := 0.0
	if throttle > 0 && r.ExhaustVelocity > 0 {
		required := throttle * r.MaxThrust / r.ExhaustVelocity * dt
		used = math.Min(r.Propellant, required)
		if required > 0 {
			ratio = used / required
		}
	}
	accel := thrustDir.Scale(ratio * throttle * r.MaxThrust / mass)

	f := func(t float64, y []float64) []float64 {
		pos := Vec3{y[0], y[1], y[2]}
		vel := Vec3{y[3], y[4], y[5]}
		grav := pos.Scale(-μ / (pos.Norm() * pos.Norm() * pos.Norm()))
		a := grav.Add(accel)
		return []float64{vel.X, vel.Y, vel.Z, a.X, a.Y, a.Z}
	}
	y0 := []float64{r.Position.X, r.Position.Y, r.Position.Z, r.Velocity.X, r.Velocity.Y, r.Velocity.Z}
	y1 := RK4Step(f, r.Time, y0, dt)

	r.Position = Vec3{y1[0], y1[1], y1[2]}
	r.Velocity = Vec3{y1[3], y1[4], y1[5]}
	r.Time += dt

	wasDry := r.Propellant <= 0
	r.Propellant -= used
	if r.Propellant < 0 {
		r.Propellant = 0
	}
	r.logger.Log("level", "notice", "event", "burn", "t", r.Time, "throttle", throttle, "ratio", ratio, "propellant", r.Propellant)
	if !wasDry && r.Propellant <= 0 && used > 0 {
		r.logger.Log("level", "critical", "event", "propellant-exhausted", "t", r.Time)
	}
}

// handleSOICrossing re-parents the rocket to a different CelestialBody when
// its position crosses a sphere-of-influence boundary: outward, to its
// current primary's own parent; inward, to whichever satellite's SOI now
// contains it. Both directions are patched-conics handoffs: the
// position/velocity are translated into the new primary's local frame and
// the cached coast orbit, if any, is invalidated so it is rederived there.
func (r *Rocket) handleSOICrossing() {
	if soi := r.Primary.SphereOfInfluence(); r.Position.Norm() > soi && r.Primary.ParentOrbit != nil {
		parentPos := r.Primary.ParentOrbit.PositionAtTime(r.Time)
		parentVel := r.Primary.ParentOrbit.VelocityAtTime(r.Time)
		r.logger.Log("level", "notice", "event", "soi-exit", "from", r.Primary.Name, "to", r.Primary.ParentOrbit.Primary.Name, "t", r.Time)
		r.Primary = r.Primary.ParentOrbit.Primary
		r.Position = r.Position.Add(parentPos)
		r.Velocity = r.Velocity.Add(parentVel)
		r.coastOrbit = nil
		return
	}
	for _, sat := range r.Primary.Satellites {
		satPos := sat.ParentOrbit.PositionAtTime(r.Time)
		rel := r.Position.Sub(satPos)
		if rel.Norm() <= sat.SphereOfInfluence() {
			satVel := sat.ParentOrbit.VelocityAtTime(r.Time)
			r.logger.Log("level", "notice", "event", "soi-enter", "from", r.Primary.Name, "to", sat.Name, "t", r.Time)
			r.Primary = sat
			r.Position = rel
			r.Velocity = r.Velocity.Sub(satVel)
			r.coastOrbit = nil
			return
		}
	}
}
